// Package boolean implements the bitmask-encoded conjunctive-term
// algebra (spec §4.B): Term, the minimised disjunctive Expression built
// from terms, and the k-of-n Vote operator.
package boolean

import (
	"math/bits"

	"github.com/gofta/gofta/internal/fterr"
)

// MaxEvents bounds the number of primary events a single fault tree
// may declare. Term's encoding is a native uint64 rather than an
// arbitrary-precision bit vector: no fault tree in the reference
// corpus or its staircase generator approaches 64 primary events, and
// a fixed-width encoding keeps every bitwise operation in this package
// a single machine instruction. A tree that needs a 65th event is
// rejected at build time with a FaultTreeTextError, not silently
// truncated.
const MaxEvents = 64

// Term is an unsigned bit vector; bit i set means primary event i is a
// factor of the conjunction this term represents. Term(0) denotes the
// empty conjunction (Boolean True).
type Term uint64

// True is the empty conjunction.
const True Term = 0

// Order returns the population count of the term's encoding: the
// number of primary events conjoined.
func (t Term) Order() int {
	return bits.OnesCount64(uint64(t))
}

// IsVacuous reports whether t is the empty conjunction (True).
func (t Term) IsVacuous() bool {
	return t == True
}

// EventIndices returns the ascending list of event indices (bit
// positions) that are factors of t.
func (t Term) EventIndices() []int {
	indices := make([]int, 0, t.Order())
	for i := 0; i < MaxEvents; i++ {
		if t&(1<<uint(i)) != 0 {
			indices = append(indices, i)
		}
	}
	return indices
}

// Factors returns the ascending list of single-bit terms making up t.
func (t Term) Factors() []Term {
	indices := t.EventIndices()
	factors := make([]Term, len(indices))
	for i, idx := range indices {
		factors[i] = Term(1) << uint(idx)
	}
	return factors
}

// Implies reports whether t implies u: every bit set in u is also set
// in t, equivalently ~t & u == 0. In a disjunction, a term that
// implies another is redundant — whenever t occurs, u occurs too.
func (t Term) Implies(u Term) bool {
	return ^t&u == 0
}

// Div divides t by u, meaningful only in minimal-cut-set context:
// Term(t.encoding &^ u.encoding).
func (t Term) Div(u Term) Term {
	return t &^ u
}

// GCD returns Term(AND of encodings). The empty sequence is undefined
// (callers must not invoke GCD with no terms).
func GCD(terms ...Term) Term {
	fterr.Assert(len(terms) > 0, "GCD called with no terms")
	g := terms[0]
	for _, t := range terms[1:] {
		g &= t
	}
	return g
}

// Conjoin returns Term(OR of encodings): the conjunction (AND) of the
// primary-event sets named by each term.
func Conjoin(terms ...Term) Term {
	var c Term
	for _, t := range terms {
		c |= t
	}
	return c
}
