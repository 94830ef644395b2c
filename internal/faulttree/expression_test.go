package faulttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateExpressionAndGate(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Undeveloped\n\n" +
		"Event: B\n- model_type: Undeveloped\n\n" +
		"Gate: G\n- type: AND\n- inputs: A, B\n"
	ft, err := buildSource(t, source)
	require.NoError(t, err)

	expr := ft.GateExpression(ft.GateByID["G"])
	require.Equal(t, 1, expr.Len())
	assert.Equal(t, 2, expr.Terms()[0].Order())
}

func TestGateExpressionNullPassesThrough(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Undeveloped\n\n" +
		"Gate: G\n- type: NULL\n- inputs: A\n"
	ft, err := buildSource(t, source)
	require.NoError(t, err)

	expr := ft.GateExpression(ft.GateByID["G"])
	assert.Equal(t, ft.EventByID["A"].ComputedExpression(), expr)
}

func TestGateExpressionMemoisedAcrossCalls(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Undeveloped\n\n" +
		"Gate: G\n- type: NULL\n- inputs: A\n"
	ft, err := buildSource(t, source)
	require.NoError(t, err)

	first := ft.GateExpression(ft.GateByID["G"])
	second := ft.GateExpression(ft.GateByID["G"])
	assert.Equal(t, first, second)
}

func TestGateExpressionChainsThroughNestedGates(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Undeveloped\n\n" +
		"Event: B\n- model_type: Undeveloped\n\n" +
		"Gate: INNER\n- type: OR\n- inputs: A, B\n\n" +
		"Gate: TOP\n- type: NULL\n- inputs: INNER\n"
	ft, err := buildSource(t, source)
	require.NoError(t, err)

	top := ft.GateExpression(ft.GateByID["TOP"])
	inner := ft.GateExpression(ft.GateByID["INNER"])
	assert.Equal(t, inner, top)
	assert.Equal(t, 2, top.Len())
}

func TestGateExpressionVoteTwoOfThree(t *testing.T) {
	source := "- times: 1\n\n" +
		"Event: A\n- model_type: Undeveloped\n\n" +
		"Event: B\n- model_type: Undeveloped\n\n" +
		"Event: C\n- model_type: Undeveloped\n\n" +
		"Gate: G\n- type: VOTE(2)\n- inputs: A, B, C\n"
	ft, err := buildSource(t, source)
	require.NoError(t, err)

	expr := ft.GateExpression(ft.GateByID["G"])
	assert.Equal(t, 3, expr.Len())
	for _, term := range expr.Terms() {
		assert.Equal(t, 2, term.Order())
	}
}
