package faulttree

import (
	"github.com/gofta/gofta/internal/boolean"
	"github.com/gofta/gofta/internal/fterr"
	"github.com/gofta/gofta/internal/parsing"
)

// GateExpression returns g's minimal cut-set expression, computing and
// caching it on first request (spec §4.F). Because the gate graph is
// verified acyclic by Build, this recursion always terminates.
func (ft *FaultTree) GateExpression(g *Gate) boolean.Expression {
	if g.computedExpression != nil {
		return *g.computedExpression
	}

	inputs := make([]boolean.Expression, len(g.InputIDs))
	for i, id := range g.InputIDs {
		inputs[i] = ft.inputExpression(id)
	}

	var expr boolean.Expression
	switch g.Type.Kind {
	case parsing.GateAnd:
		expr = boolean.Conjunction(inputs...)
	case parsing.GateOr:
		expr = boolean.Disjunction(inputs...)
	case parsing.GateNull:
		expr = inputs[0]
	case parsing.GateVote:
		expr = boolean.Vote(inputs, g.Type.K)
	default:
		fterr.Violate("unknown gate kind %d for gate %q", int(g.Type.Kind), g.ID)
	}

	g.computedExpression = &expr
	return expr
}

func (ft *FaultTree) inputExpression(id string) boolean.Expression {
	if e, ok := ft.EventByID[id]; ok {
		return e.ComputedExpression()
	}
	if g, ok := ft.GateByID[id]; ok {
		return ft.GateExpression(g)
	}
	fterr.Violate("input %q resolves to neither an event nor a gate after validation", id)
	return boolean.Expression{}
}
