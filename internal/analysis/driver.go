// Package analysis is the Analysis Driver (spec §4.F): it samples
// every model's parameters, evaluates each event's failure probability
// and intensity at every (time, sample) point, and folds the results
// up through each gate's minimal cut-set expression via the
// inclusion-exclusion kernel in internal/compute.
package analysis

import (
	"math"
	"math/rand"
	"strings"

	"github.com/gofta/gofta/internal/boolean"
	"github.com/gofta/gofta/internal/compute"
	"github.com/gofta/gofta/internal/faulttree"
	"github.com/gofta/gofta/internal/fterr"
	"github.com/gofta/gofta/internal/parsing"
	"github.com/gofta/gofta/internal/sampling"
)

// CutSetRow is one minimal cut set of a gate, with its probability
// evaluated at every (time, sample) point alongside the gate's own
// results.
type CutSetRow struct {
	CutSet      string
	Order       int
	Probability [][]float64 // [timeIndex][sampleIndex]
	Intensity   [][]float64
}

// Result holds every computed quantity of a completed run, indexed by
// object id. The analysis driver computes values only; rendering them
// into tables is the output package's job.
type Result struct {
	FaultTree *faulttree.FaultTree

	EventProbability map[string][][]float64 // [eventID][timeIndex][sampleIndex]
	EventIntensity   map[string][][]float64

	GateProbability map[string][][]float64 // [gateID][timeIndex][sampleIndex]
	GateIntensity   map[string][][]float64
	CutSets         map[string][]CutSetRow // gateID -> minimal cut sets
}

// Run samples every model in declaration order from rng, then
// evaluates every event and gate over the Cartesian product of
// ft.Times and [0, ft.SampleSize). The same rng state and declaration
// order reproduce identical results across runs (spec §4.C, §5).
func Run(ft *faulttree.FaultTree, rng *rand.Rand) (*Result, error) {
	modelSamples := make(map[string]paramSamples, len(ft.Models))
	for _, m := range ft.Models {
		ps, err := sampleParams(m.Params, ft.Times, ft.SampleSize, rng)
		if err != nil {
			return nil, err
		}
		modelSamples[m.ID] = ps
	}

	inlineSamples := make(map[string]paramSamples, len(ft.Events))
	for _, e := range ft.Events {
		if !e.HasInlineModel() {
			continue
		}
		ps, err := sampleParams(e.InlineParams, ft.Times, ft.SampleSize, rng)
		if err != nil {
			return nil, err
		}
		inlineSamples[e.ID] = ps
	}

	nTimes, nSamples := len(ft.Times), ft.SampleSize

	eventProbability := make(map[string][][]float64, len(ft.Events))
	eventIntensity := make(map[string][][]float64, len(ft.Events))
	for _, e := range ft.Events {
		eventProbability[e.ID] = newGrid(nTimes, nSamples)
		eventIntensity[e.ID] = newGrid(nTimes, nSamples)
	}

	gateProbability := make(map[string][][]float64, len(ft.Gates))
	gateIntensity := make(map[string][][]float64, len(ft.Gates))
	cutSets := make(map[string][]CutSetRow, len(ft.Gates))
	for _, g := range ft.Gates {
		gateProbability[g.ID] = newGrid(nTimes, nSamples)
		gateIntensity[g.ID] = newGrid(nTimes, nSamples)
		terms := ft.GateExpression(g).Terms()
		rows := make([]CutSetRow, len(terms))
		for i, term := range terms {
			rows[i] = CutSetRow{
				CutSet:      formatCutSet(ft, term),
				Order:       term.Order(),
				Probability: newGrid(nTimes, nSamples),
				Intensity:   newGrid(nTimes, nSamples),
			}
		}
		cutSets[g.ID] = rows
	}

	qAtPoint := make([]float64, len(ft.Events))
	omegaAtPoint := make([]float64, len(ft.Events))
	for ti, t := range ft.Times {
		for si := 0; si < nSamples; si++ {
			for _, e := range ft.Events {
				model := ft.ResolveModel(e)
				samples := inlineSamples[e.ID]
				if !e.HasInlineModel() {
					samples = modelSamples[e.ModelID]
				}
				q, omega, err := evaluateModel(model, samples, t, ti, si)
				if err != nil {
					return nil, err
				}
				eventProbability[e.ID][ti][si] = q
				eventIntensity[e.ID][ti][si] = omega
				qAtPoint[e.Index] = q
				omegaAtPoint[e.Index] = omega
			}

			lookupQ := func(idx int) float64 { return qAtPoint[idx] }
			lookupOmega := func(idx int) float64 { return omegaAtPoint[idx] }
			for _, g := range ft.Gates {
				terms := ft.GateExpression(g).Terms()
				gateProbability[g.ID][ti][si] = compute.GateProbability(terms, lookupQ, ft.ComputationalTolerance)
				gateIntensity[g.ID][ti][si] = compute.GateIntensity(terms, lookupQ, lookupOmega, ft.ComputationalTolerance)
				for i, term := range terms {
					cutSets[g.ID][i].Probability[ti][si] = compute.CutSetProbability(term, lookupQ)
					cutSets[g.ID][i].Intensity[ti][si] = compute.CutSetIntensity(term, lookupQ, lookupOmega)
				}
			}
		}
	}

	return &Result{
		FaultTree:        ft,
		EventProbability: eventProbability,
		EventIntensity:   eventIntensity,
		GateProbability:  gateProbability,
		GateIntensity:    gateIntensity,
		CutSets:          cutSets,
	}, nil
}

// paramSamples holds, per parameter key, a [timeIndex][sampleIndex]
// grid of draws.
type paramSamples map[string][][]float64

// sampleParams draws every declared parameter of a model in the fixed
// order faulttree.ModelParamKeys, independently for each time (spec
// §4.F: "parameter samples are drawn once per time"), and validates
// each draw against the constraint its parameter kind carries.
func sampleParams(params map[string]sampling.Distribution, times []float64, sampleSize int, rng *rand.Rand) (paramSamples, error) {
	out := make(paramSamples, len(params))
	for _, key := range faulttree.ModelParamKeys {
		dist, ok := params[key]
		if !ok {
			continue
		}
		grid := make([][]float64, len(times))
		for ti := range times {
			draws, err := sampling.Sample(dist, sampleSize, rng)
			if err != nil {
				return nil, err
			}
			if err := validateSamples(key, draws, dist.Line); err != nil {
				return nil, err
			}
			grid[ti] = draws
		}
		out[key] = grid
	}
	return out, nil
}

func validateSamples(key string, draws []float64, line int) error {
	if key == "probability" {
		return sampling.ValidateProbabilities(draws, line)
	}
	return sampling.ValidateNonNegative(draws, line)
}

// evaluateModel computes an event's (q, ω) pair at (time, ti, si)
// given its resolved model and that model's sampled parameters.
//
// Fixed and ConstantRate follow directly from spec §3/§4.D. True,
// False and Undeveloped carry no parameters at all (spec §3), and
// neither spec.md nor the original implementation assigns them a
// computed quantity (original_source/pfta/constants.py only declares
// the enum member; original_source/pfta/graphics.py only branches on
// it for diagram rendering) — this is an engineering decision, not a
// grounded one: True and False are treated as degenerate certainties
// (an event that is definitionally always, or never, failed has no
// meaningful rate of change, so ω = 0); Undeveloped is reported as an
// unevaluated quantity (NaN) rather than guessed at, since "not
// developed further" means precisely that no model backs it.
func evaluateModel(m *faulttree.Model, samples paramSamples, t float64, ti, si int) (float64, float64, error) {
	switch m.Type {
	case parsing.Undeveloped:
		return math.NaN(), math.NaN(), nil
	case parsing.ModelTrue:
		return 1, 0, nil
	case parsing.ModelFalse:
		return 0, 0, nil
	case parsing.Fixed:
		return samples["probability"][ti][si], samples["intensity"][ti][si], nil
	case parsing.ConstantRate:
		lambda := rateSample(samples, "failure_rate", "mean_failure_time", ti, si)
		mu := rateSample(samples, "repair_rate", "mean_repair_time", ti, si)
		q := compute.Q(lambda, mu, t)
		return q, compute.Omega(lambda, mu, t, q), nil
	default:
		fterr.Violate("unknown model type %v for model %q", m.Type, m.ID)
		return 0, 0, nil
	}
}

// rateSample resolves a ConstantRate rate parameter, reciprocating the
// paired mean-time sample when the rate itself wasn't supplied (spec
// §6's four valid key combinations guarantee exactly one of the pair
// is present). The reciprocal is taken per draw, not on the
// distribution's parameters, since the reciprocal of a distribution is
// not generally a member of the same family.
func rateSample(samples paramSamples, rateKey, meanKey string, ti, si int) float64 {
	if grid, ok := samples[rateKey]; ok {
		return grid[ti][si]
	}
	return 1 / samples[meanKey][ti][si]
}

func newGrid(nTimes, nSamples int) [][]float64 {
	grid := make([][]float64, nTimes)
	for i := range grid {
		grid[i] = make([]float64, nSamples)
	}
	return grid
}

// formatCutSet renders a term as its member event ids, ascending by
// index and joined with ".", matching spec §6's cut-set table format.
func formatCutSet(ft *faulttree.FaultTree, term boolean.Term) string {
	indices := term.EventIndices()
	ids := make([]string, len(indices))
	for i, idx := range indices {
		ids[i] = ft.Events[idx].ID
	}
	return strings.Join(ids, ".")
}
