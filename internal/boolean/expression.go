package boolean

import "sort"

// Expression is a minimised disjunction of Terms: the set of Terms is
// understood as their OR. The minimality invariant (no stored term
// implies another) is maintained by every constructor in this file —
// callers never build an Expression by hand.
type Expression struct {
	terms []Term
}

// TrueExpr is the Boolean-true expression: the sole term is the empty
// conjunction.
var TrueExpr = Expression{terms: []Term{True}}

// FalseExpr is the Boolean-false expression: the empty set of terms.
var FalseExpr = Expression{}

// NewExpression builds a minimised Expression from an arbitrary set of
// terms, applying the disjunction-minimisation algorithm of spec §4.B:
// sort ascending by order, then keep a candidate only if no
// already-kept term absorbs it.
func NewExpression(terms []Term) Expression {
	return Expression{terms: minimise(terms)}
}

// Terms returns the expression's minimised term set. The returned
// slice is owned by the caller; Expression itself is treated as
// immutable elsewhere in this package.
func (e Expression) Terms() []Term {
	out := make([]Term, len(e.terms))
	copy(out, e.terms)
	return out
}

// Len reports the number of minimised terms (the minimal cut set
// count for the expression this gate computes).
func (e Expression) Len() int {
	return len(e.terms)
}

// IsFalse reports whether the expression is the empty disjunction.
func (e Expression) IsFalse() bool {
	return len(e.terms) == 0
}

// IsTrue reports whether the expression is exactly {True}.
func (e Expression) IsTrue() bool {
	return len(e.terms) == 1 && e.terms[0] == True
}

func minimise(terms []Term) []Term {
	sorted := make([]Term, len(terms))
	copy(sorted, terms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order() < sorted[j].Order() })

	kept := make([]Term, 0, len(sorted))
	for _, c := range sorted {
		absorbed := false
		for _, k := range kept {
			if c.Implies(k) {
				absorbed = true
				break
			}
		}
		if !absorbed {
			kept = append(kept, c)
		}
	}
	return kept
}

// Conjunction distributes the conjunction of exprs: the Cartesian
// product of their term lists, conjuncted term-wise and minimised. The
// conjunction of zero expressions is {True} (the multiplicative
// identity), per spec §4.B.
func Conjunction(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		return TrueExpr
	}

	products := exprs[0].terms
	for _, e := range exprs[1:] {
		if len(products) == 0 || len(e.terms) == 0 {
			return FalseExpr
		}
		next := make([]Term, 0, len(products)*len(e.terms))
		for _, a := range products {
			for _, b := range e.terms {
				next = append(next, Conjoin(a, b))
			}
		}
		products = next
	}

	return NewExpression(products)
}

// Disjunction unions the term sets of exprs and minimises. The
// disjunction of zero expressions is FalseExpr (the additive
// identity), per spec §4.B.
func Disjunction(exprs ...Expression) Expression {
	all := make([]Term, 0)
	for _, e := range exprs {
		all = append(all, e.terms...)
	}
	return NewExpression(all)
}

// Vote builds the k-of-n vote gate: the OR over every k-subset of
// inputs of the conjunction of that subset. Edge cases per spec §4.B:
// k<=0 yields {True}; k>n yields the empty (False) expression.
func Vote(inputs []Expression, k int) Expression {
	n := len(inputs)
	if k <= 0 {
		return TrueExpr
	}
	if k > n {
		return FalseExpr
	}

	all := make([]Term, 0)
	for _, combo := range combinations(n, k) {
		subset := make([]Expression, len(combo))
		for i, idx := range combo {
			subset[i] = inputs[idx]
		}
		all = append(all, Conjunction(subset...).terms...)
	}
	return NewExpression(all)
}
