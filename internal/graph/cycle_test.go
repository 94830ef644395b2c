package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCyclesAcyclicIsEmpty(t *testing.T) {
	adj := map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {},
	}
	assert.Empty(t, FindCycles(adj))
}

func TestFindCyclesThreeNodeCycle(t *testing.T) {
	adj := map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"A"},
	}
	got := FindCycles(adj)
	assert.Equal(t, [][]string{{"A", "B", "C"}}, got)
}

func TestFindCyclesSelfLoop(t *testing.T) {
	adj := map[string][]string{
		"A": {"A"},
	}
	got := FindCycles(adj)
	assert.Equal(t, [][]string{{"A"}}, got)
}

func TestFindCyclesRotationNormalised(t *testing.T) {
	// The map literal lists B first, but the result does not depend on
	// it: canonical form always starts at the lexicographically
	// smallest node.
	adj := map[string][]string{
		"B": {"C"},
		"C": {"A"},
		"A": {"B"},
	}
	got := FindCycles(adj)
	assert.Equal(t, [][]string{{"A", "B", "C"}}, got)
}

func TestFindCyclesMultipleDisjointCycles(t *testing.T) {
	adj := map[string][]string{
		"A": {"B"},
		"B": {"A"},
		"X": {"Y"},
		"Y": {"X"},
	}
	got := FindCycles(adj)
	assert.Equal(t, [][]string{{"A", "B"}, {"X", "Y"}}, got)
}
