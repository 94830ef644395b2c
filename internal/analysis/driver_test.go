package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gofta/gofta/internal/faulttree"
	"github.com/gofta/gofta/internal/lexing"
	"github.com/gofta/gofta/internal/parsing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSource(t *testing.T, source string) *faulttree.FaultTree {
	t.Helper()
	lines, err := lexing.Classify(source)
	require.NoError(t, err)
	paragraphs, err := parsing.Group(lines)
	require.NoError(t, err)
	assemblies, err := parsing.Type(paragraphs)
	require.NoError(t, err)
	ft, err := faulttree.Build(assemblies)
	require.NoError(t, err)
	return ft
}

func TestRunFixedEventUnderOrGateMatchesItsOwnProbability(t *testing.T) {
	source := "- times: 0, 1\n\n" +
		"Event: A\n- model_type: Fixed\n- probability: 0.3\n- intensity: 0\n\n" +
		"Gate: TOP\n- type: OR\n- inputs: A\n"
	ft := buildSource(t, source)

	result, err := Run(ft, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	for ti := range ft.Times {
		assert.Equal(t, 0.3, result.EventProbability["A"][ti][0])
		assert.Equal(t, 0.3, result.GateProbability["TOP"][ti][0])
		assert.Equal(t, 0.0, result.GateIntensity["TOP"][ti][0])
	}
	require.Len(t, result.CutSets["TOP"], 1)
	assert.Equal(t, "A", result.CutSets["TOP"][0].CutSet)
	assert.Equal(t, 1, result.CutSets["TOP"][0].Order)
	assert.Equal(t, 0.0, result.CutSets["TOP"][0].Intensity[0][0])
}

func TestRunConstantRateModelUsesKernel(t *testing.T) {
	source := "- times: 10\n\n" +
		"Event: A\n- model_type: ConstantRate\n- failure_rate: 0.01\n- repair_rate: 1\n\n" +
		"Gate: TOP\n- type: NULL\n- inputs: A\n"
	ft := buildSource(t, source)

	result, err := Run(ft, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	lambda, mu, time := 0.01, 1.0, 10.0
	wantQ := lambda / (lambda + mu) * -math.Expm1(-(lambda+mu)*time)
	assert.InDelta(t, wantQ, result.EventProbability["A"][0][0], 1e-12)
}

func TestRunMeanFailureTimeReciprocates(t *testing.T) {
	source := "- times: 10\n\n" +
		"Event: A\n- model_type: ConstantRate\n- mean_failure_time: 100\n- repair_rate: 1\n\n" +
		"Gate: TOP\n- type: NULL\n- inputs: A\n"
	ft := buildSource(t, source)

	result, err := Run(ft, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	lambda, mu, time := 0.01, 1.0, 10.0
	wantQ := lambda / (lambda + mu) * -math.Expm1(-(lambda+mu)*time)
	assert.InDelta(t, wantQ, result.EventProbability["A"][0][0], 1e-12)
}

func TestRunTrueModelIsCertain(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: True\n\n" +
		"Gate: TOP\n- type: NULL\n- inputs: A\n"
	ft := buildSource(t, source)

	result, err := Run(ft, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.EventProbability["A"][0][0])
	assert.Equal(t, 0.0, result.EventIntensity["A"][0][0])
}

func TestRunFalseModelNeverOccurs(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: False\n\n" +
		"Gate: TOP\n- type: NULL\n- inputs: A\n"
	ft := buildSource(t, source)

	result, err := Run(ft, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.EventProbability["A"][0][0])
	assert.Equal(t, 0.0, result.EventIntensity["A"][0][0])
}

func TestRunUndevelopedModelIsUnevaluated(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Undeveloped\n\n" +
		"Gate: TOP\n- type: NULL\n- inputs: A\n"
	ft := buildSource(t, source)

	result, err := Run(ft, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(result.EventProbability["A"][0][0]))
}

func TestRunOrGateOfTwoFixedEventsUsesInclusionExclusion(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Fixed\n- probability: 0.5\n- intensity: 0\n\n" +
		"Event: B\n- model_type: Fixed\n- probability: 0.5\n- intensity: 0\n\n" +
		"Gate: TOP\n- type: OR\n- inputs: A, B\n"
	ft := buildSource(t, source)

	result, err := Run(ft, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	want := 0.5 + 0.5 - 0.5*0.5
	assert.InDelta(t, want, result.GateProbability["TOP"][0][0], 1e-12)
	assert.Len(t, result.CutSets["TOP"], 2)
}

func TestRunSharedModelSamplesOncePerTimeAcrossEvents(t *testing.T) {
	source := "- times: 1\n- sample_size: 5\n\n" +
		"Model: M\n- model_type: Fixed\n- probability: uniform(a=0.1, b=0.2)\n- intensity: 0\n\n" +
		"Event: A\n- model: M\n\n" +
		"Event: B\n- model: M\n\n" +
		"Gate: TOP\n- type: OR\n- inputs: A, B\n"
	ft := buildSource(t, source)

	result, err := Run(ft, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	for si := 0; si < ft.SampleSize; si++ {
		assert.Equal(t, result.EventProbability["A"][0][si], result.EventProbability["B"][0][si])
	}
}
