package parsing

import (
	"testing"

	"github.com/gofta/gofta/internal/sampling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeSource(t *testing.T, source string) []Assembly {
	t.Helper()
	paragraphs, err := Group(classify(t, source))
	require.NoError(t, err)
	assemblies, err := Type(paragraphs)
	require.NoError(t, err)
	return assemblies
}

func TestTypeImplicitFaultTree(t *testing.T) {
	assemblies := typeSource(t, "- times: 1\n")
	require.Len(t, assemblies, 1)
	a := assemblies[0]
	assert.Equal(t, "FaultTree", a.Class)
	assert.Equal(t, "", a.ID)
	assert.Equal(t, []float64{1}, a.Props["times"].Data)
}

func TestTypeModelWithFixedParameters(t *testing.T) {
	source := "Model: M1\n- model_type: Fixed\n- probability: 0.1\n- intensity: 0\n"
	assemblies := typeSource(t, source)
	require.Len(t, assemblies, 1)
	a := assemblies[0]
	assert.Equal(t, "Model", a.Class)
	assert.Equal(t, "M1", a.ID)
	assert.Equal(t, Fixed, a.Props["model_type"].Data)

	d := a.Props["probability"].Data.(sampling.Distribution)
	assert.Equal(t, sampling.Degenerate, d.Kind)
	assert.Equal(t, 0.1, d.Value)
}

func TestTypeGateWithInputsAndVote(t *testing.T) {
	source := "Gate: G1\n- type: VOTE(2)\n- inputs: A, B, C\n"
	assemblies := typeSource(t, source)
	a := assemblies[0]
	gt := a.Props["type"].Data.(GateType)
	assert.Equal(t, GateVote, gt.Kind)
	assert.Equal(t, 2, gt.K)
	assert.Equal(t, []string{"A", "B", "C"}, a.Props["inputs"].Data)
}

func TestTypeInvalidClassSuggests(t *testing.T) {
	source := "Evnt: X\n- label: hi\n"
	paragraphs, err := Group(classify(t, source))
	require.NoError(t, err)
	_, err = Type(paragraphs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidClass")
	assert.Contains(t, err.Error(), `did you mean "Event"?`)
}

func TestTypeDuplicateKey(t *testing.T) {
	source := "Gate: G1\n- type: OR\n- type: AND\n"
	paragraphs, err := Group(classify(t, source))
	require.NoError(t, err)
	_, err = Type(paragraphs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DuplicateKey")
}

func TestTypeInvalidKeySuggestsClosest(t *testing.T) {
	source := "Gate: G1\n- typ: OR\n"
	paragraphs, err := Group(classify(t, source))
	require.NoError(t, err)
	_, err = Type(paragraphs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidKey")
	assert.Contains(t, err.Error(), `did you mean "type"?`)
}
