package faulttree

import (
	"github.com/gofta/gofta/internal/boolean"
	"github.com/gofta/gofta/internal/fterr"
	"github.com/gofta/gofta/internal/graph"
	"github.com/gofta/gofta/internal/parsing"
	"github.com/gofta/gofta/internal/sampling"
)

const defaultComputationalTolerance = 1e-9
const defaultSampleSize = 1

// Build walks assemblies in declaration order, constructs the domain
// objects, runs the seven-step validation pipeline, and marks
// is_used/is_top_gate (spec §4.E). Assembly order is assumed to have
// come straight from parsing.Type, so the first element — if headerless
// — is the implicit FaultTree.
func Build(assemblies []parsing.Assembly) (*FaultTree, error) {
	ft := &FaultTree{
		ComputationalTolerance: defaultComputationalTolerance,
		SampleSize:             defaultSampleSize,
		ModelByID:              map[string]*Model{},
		EventByID:              map[string]*Event{},
		GateByID:               map[string]*Gate{},
	}

	seenIDs := map[string]int{}
	eventIndex := 0

	for _, a := range assemblies {
		switch a.Class {
		case "FaultTree":
			if err := checkDuplicate(seenIDs, faultTreeKey(a), a.Line); err != nil {
				return nil, err
			}
			if err := absorbFaultTree(ft, a); err != nil {
				return nil, err
			}
		case "Model":
			if err := checkDuplicate(seenIDs, a.ID, a.Line); err != nil {
				return nil, err
			}
			m, err := buildModel(a)
			if err != nil {
				return nil, err
			}
			ft.Models = append(ft.Models, m)
			ft.ModelByID[m.ID] = m
		case "Event":
			if err := checkDuplicate(seenIDs, a.ID, a.Line); err != nil {
				return nil, err
			}
			if eventIndex >= boolean.MaxEvents {
				return nil, fterr.At(a.Line, "TooManyEvents",
					"fault tree declares more than %d events", boolean.MaxEvents)
			}
			e, err := buildEvent(a, eventIndex)
			if err != nil {
				return nil, err
			}
			eventIndex++
			ft.Events = append(ft.Events, e)
			ft.EventByID[e.ID] = e
		case "Gate":
			if err := checkDuplicate(seenIDs, a.ID, a.Line); err != nil {
				return nil, err
			}
			g, err := buildGate(a)
			if err != nil {
				return nil, err
			}
			ft.Gates = append(ft.Gates, g)
			ft.GateByID[g.ID] = g
		default:
			fterr.Violate("assembly with unrecognised class %q reached the builder", a.Class)
		}
	}

	if err := validate(ft); err != nil {
		return nil, err
	}
	mark(ft)

	return ft, nil
}

func faultTreeKey(a parsing.Assembly) string {
	if a.ID == "" {
		return "\x00implicit-fault-tree"
	}
	return a.ID
}

func checkDuplicate(seenIDs map[string]int, id string, line int) error {
	if prev, ok := seenIDs[id]; ok {
		return fterr.At(line, "DuplicateId", "identifier %q already declared at line %d", id, prev)
	}
	seenIDs[id] = line
	return nil
}

func absorbFaultTree(ft *FaultTree, a parsing.Assembly) error {
	if v, ok := a.Props["time_unit"]; ok {
		ft.TimeUnit = v.Data.(string)
	}
	if v, ok := a.Props["times"]; ok {
		ft.Times = v.Data.([]float64)
	}
	if v, ok := a.Props["seed"]; ok {
		seed := int64(v.Data.(int))
		ft.Seed = &seed
	}
	if v, ok := a.Props["sample_size"]; ok {
		ft.SampleSize = v.Data.(int)
	}
	if v, ok := a.Props["computational_tolerance"]; ok {
		ft.ComputationalTolerance = v.Data.(float64)
	}
	return nil
}

func stringProp(a parsing.Assembly, key string) string {
	if v, ok := a.Props[key]; ok {
		return v.Data.(string)
	}
	return ""
}

func buildModel(a parsing.Assembly) (*Model, error) {
	typeVal, ok := a.Props["model_type"]
	if !ok {
		return nil, fterr.At(a.Line, "UnsetProperty", "mandatory property \"model_type\" not set for model %q", a.ID)
	}
	modelType := typeVal.Data.(parsing.ModelType)

	params := modelParams(a)
	if err := validateModelKeyCombo(a.Line, a.ID, modelType, params); err != nil {
		return nil, err
	}

	return &Model{
		ID:      a.ID,
		Line:    a.Line,
		Label:   stringProp(a, "label"),
		Comment: stringProp(a, "comment"),
		Type:    modelType,
		Params:  params,
	}, nil
}

// ModelParamKeys is the canonical, deterministic order in which a
// model's distribution-valued parameters are sampled — map iteration
// order in Go is randomised, so anything consuming model parameters in
// a reproducibility-sensitive way (the sampler) must range over this
// slice rather than the map directly.
var ModelParamKeys = []string{
	"probability", "intensity", "failure_rate", "mean_failure_time", "repair_rate", "mean_repair_time",
}

func modelParams(a parsing.Assembly) map[string]sampling.Distribution {
	params := map[string]sampling.Distribution{}
	for _, key := range ModelParamKeys {
		if v, ok := a.Props[key]; ok {
			params[key] = v.Data.(sampling.Distribution)
		}
	}
	return params
}

// validModelKeyCombos mirrors spec §6's closed enumeration of which
// parameter keys a ModelType accepts.
var validModelKeyCombos = map[parsing.ModelType][][]string{
	parsing.Undeveloped:   {{}},
	parsing.ModelTrue:     {{}},
	parsing.ModelFalse:    {{}},
	parsing.Fixed:         {{"probability", "intensity"}},
	parsing.ConstantRate: {
		{"failure_rate", "repair_rate"},
		{"failure_rate", "mean_repair_time"},
		{"mean_failure_time", "repair_rate"},
		{"mean_failure_time", "mean_repair_time"},
	},
}

func validateModelKeyCombo(line int, id string, modelType parsing.ModelType, params map[string]sampling.Distribution) error {
	combos, ok := validModelKeyCombos[modelType]
	if !ok {
		fterr.Violate("unrecognised model type %v reached key-combo validation", modelType)
	}
	for _, combo := range combos {
		if sameKeySet(combo, params) {
			return nil
		}
	}
	return fterr.At(line, "InvalidModelKeyCombo",
		"parameter keys for model %q do not match any valid combination for model type %v", id, modelType)
}

func sameKeySet(combo []string, params map[string]sampling.Distribution) bool {
	if len(combo) != len(params) {
		return false
	}
	for _, k := range combo {
		if _, ok := params[k]; !ok {
			return false
		}
	}
	return true
}

func buildEvent(a parsing.Assembly, index int) (*Event, error) {
	modelRef, hasRef := a.Props["model"]
	typeVal, hasType := a.Props["model_type"]

	if hasRef && hasType {
		return nil, fterr.At(a.Line, "ModelPropertyClash",
			"both \"model_type\" and \"model\" set for event %q", a.ID)
	}
	if !hasRef && !hasType {
		return nil, fterr.At(a.Line, "UnsetProperty",
			"one of \"model_type\" or \"model\" must be set for event %q", a.ID)
	}

	e := &Event{
		ID:      a.ID,
		Index:   index,
		Line:    a.Line,
		Label:   stringProp(a, "label"),
		Comment: stringProp(a, "comment"),
	}

	if hasRef {
		params := modelParams(a)
		if len(params) > 0 {
			return nil, fterr.At(a.Line, "ModelPropertyClash",
				"event %q sets both \"model\" and inline model parameters", a.ID)
		}
		e.ModelID = modelRef.Data.(string)
		e.ModelIDLine = modelRef.Line
		return e, nil
	}

	modelType := typeVal.Data.(parsing.ModelType)
	params := modelParams(a)
	if err := validateModelKeyCombo(a.Line, a.ID, modelType, params); err != nil {
		return nil, err
	}
	e.InlineType = modelType
	e.InlineParams = params
	return e, nil
}

func buildGate(a parsing.Assembly) (*Gate, error) {
	typeVal, ok := a.Props["type"]
	if !ok {
		return nil, fterr.At(a.Line, "UnsetProperty", "mandatory property \"type\" not set for gate %q", a.ID)
	}
	inputsVal, ok := a.Props["inputs"]
	if !ok {
		return nil, fterr.At(a.Line, "UnsetProperty", "mandatory property \"inputs\" not set for gate %q", a.ID)
	}

	isPaged := false
	if v, ok := a.Props["is_paged"]; ok {
		isPaged = v.Data.(bool)
	}

	return &Gate{
		ID:           a.ID,
		Line:         a.Line,
		Label:        stringProp(a, "label"),
		Comment:      stringProp(a, "comment"),
		IsPaged:      isPaged,
		Type:         typeVal.Data.(parsing.GateType),
		InputIDs:     inputsVal.Data.([]string),
		InputIDsLine: inputsVal.Line,
	}, nil
}

// validate runs the seven-step pipeline of spec §4.E, in order; the
// first violated step's error is returned.
func validate(ft *FaultTree) error {
	if err := validateTimes(ft); err != nil {
		return err
	}
	if ft.SampleSize < 1 {
		return fterr.New("SubUnitValue", "sample size %d is less than 1", ft.SampleSize)
	}
	if ft.ComputationalTolerance < 0 || ft.ComputationalTolerance >= 1 {
		return fterr.New("InvalidComputationalTolerance",
			"computational tolerance %v is not in [0, 1)", ft.ComputationalTolerance)
	}
	if err := validateEventModels(ft); err != nil {
		return err
	}
	if err := validateGateInputs(ft); err != nil {
		return err
	}
	if err := validateInputCounts(ft); err != nil {
		return err
	}
	return validateAcyclic(ft)
}

func validateTimes(ft *FaultTree) error {
	if len(ft.Times) == 0 {
		return fterr.New("UnsetProperty", "mandatory property \"times\" has not been set")
	}
	for _, t := range ft.Times {
		if t < 0 {
			return fterr.New("NegativeValue", "negative time %v", t)
		}
	}
	return nil
}

func validateEventModels(ft *FaultTree) error {
	for _, e := range ft.Events {
		if e.HasInlineModel() {
			continue
		}
		if _, ok := ft.ModelByID[e.ModelID]; !ok {
			ids := make([]string, 0, len(ft.ModelByID))
			for id := range ft.ModelByID {
				ids = append(ids, id)
			}
			return fterr.AtWithSuggestion(e.ModelIDLine, "UnknownModel",
				"no model with identifier \""+e.ModelID+"\"", e.ModelID, ids)
		}
	}
	return nil
}

func validateGateInputs(ft *FaultTree) error {
	for _, g := range ft.Gates {
		for _, id := range g.InputIDs {
			if _, ok := ft.EventByID[id]; ok {
				continue
			}
			if _, ok := ft.GateByID[id]; ok {
				continue
			}
			ids := make([]string, 0, len(ft.EventByID)+len(ft.GateByID))
			for id := range ft.EventByID {
				ids = append(ids, id)
			}
			for id := range ft.GateByID {
				ids = append(ids, id)
			}
			return fterr.AtWithSuggestion(g.InputIDsLine, "UnknownInput",
				"no event or gate with identifier \""+id+"\"", id, ids)
		}
	}
	return nil
}

func validateInputCounts(ft *FaultTree) error {
	for _, g := range ft.Gates {
		n := len(g.InputIDs)
		switch g.Type.Kind {
		case parsing.GateNull:
			if n != 1 {
				return fterr.At(g.InputIDsLine, "InputCount",
					"NULL gate %q requires exactly 1 input, has %d", g.ID, n)
			}
		case parsing.GateVote:
			if g.Type.K < 0 || g.Type.K > n {
				return fterr.At(g.InputIDsLine, "InputCount",
					"VOTE(%d) gate %q requires 0 <= k <= %d inputs", g.Type.K, g.ID, n)
			}
		}
	}
	return nil
}

func validateAcyclic(ft *FaultTree) error {
	adj := make(map[string][]string, len(ft.Gates))
	for _, g := range ft.Gates {
		var gateInputs []string
		for _, id := range g.InputIDs {
			if _, ok := ft.GateByID[id]; ok {
				gateInputs = append(gateInputs, id)
			}
		}
		adj[g.ID] = gateInputs
	}

	cycles := graph.FindCycles(adj)
	if len(cycles) == 0 {
		return nil
	}

	cycle := lexicographicallyMinimal(cycles)
	return fterr.New("CircularInputs", "circular gate inputs detected: %s", formatCycle(cycle))
}

func lexicographicallyMinimal(cycles [][]string) []string {
	best := cycles[0]
	for _, c := range cycles[1:] {
		if lessCycle(c, best) {
			best = c
		}
	}
	return best
}

func lessCycle(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func formatCycle(cycle []string) string {
	out := "("
	for i, id := range cycle {
		if i > 0 {
			out += ", "
		}
		out += id
	}
	out += ",)"
	return out
}

// mark runs the is_used/is_top_gate marking pass of spec §4.E.
func mark(ft *FaultTree) {
	referenced := map[string]bool{}
	for _, g := range ft.Gates {
		for _, id := range g.InputIDs {
			referenced[id] = true
		}
	}
	for _, e := range ft.Events {
		e.IsUsed = referenced[e.ID]
	}
	for _, g := range ft.Gates {
		g.IsTopGate = !referenced[g.ID]
	}
}
