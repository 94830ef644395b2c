package compute

import (
	"math"

	"github.com/gofta/gofta/internal/boolean"
	"github.com/gofta/gofta/internal/numeric"
)

// EventValue looks up a primary event's quantity (probability or
// intensity) at whatever (time, sample) point the caller is currently
// evaluating. The analysis driver supplies this closure; the
// computation kernel has no notion of models or sampling.
type EventValue func(eventIndex int) float64

// CutSetProbability returns the probability that every primary event
// named by term occurs simultaneously, computed as the descending-
// magnitude product of the individual event probabilities (spec
// §4.D). The vacuous term (True) always occurs, with probability 1.
func CutSetProbability(term boolean.Term, q EventValue) float64 {
	if term.IsVacuous() {
		return 1
	}
	factors := term.EventIndices()
	qs := make([]float64, len(factors))
	for i, idx := range factors {
		qs[i] = q(idx)
	}
	return numeric.DescendingProduct(qs)
}

// CutSetIntensity returns the failure intensity of a cut set C = x·y·z·…,
// ω[C] = Σ_i ω[i] · Π_{j≠i} q[j] (spec §4.D generalises its gate
// inclusion–exclusion to intensity the same way it generalises
// probability: the rate at which the conjunction first becomes true is
// the sum, over each factor, of that factor's own rate times the
// probability every other factor is already true). Both the per-factor
// product and the outer sum use the descending-magnitude reductions.
// The vacuous term (True) never changes state, so its intensity is 0.
func CutSetIntensity(term boolean.Term, q, omega EventValue) float64 {
	if term.IsVacuous() {
		return 0
	}
	factors := term.EventIndices()
	terms := make([]float64, len(factors))
	for i, idx := range factors {
		others := make([]float64, 0, len(factors)-1)
		for j, jdx := range factors {
			if j == i {
				continue
			}
			others = append(others, q(jdx))
		}
		terms[i] = omega(idx) * numeric.DescendingProduct(others)
	}
	return numeric.DescendingSum(terms)
}

// GateProbability computes a gate's failure probability from its
// minimised cut-set expression via truncated inclusion–exclusion (spec
// §4.D): for k = 1..n, sum (-1)^(k+1) * Σ_{|S|=k} q[∩S], halting after
// the first outer step whose contribution is negligible relative to
// the running partial sum.
func GateProbability(terms []boolean.Term, q EventValue, tolerance float64) float64 {
	n := len(terms)
	if n == 0 {
		return 0
	}
	if n == 1 && terms[0].IsVacuous() {
		return 1
	}

	sum := 0.0
	sign := 1.0
	for k := 1; k <= n; k++ {
		combos := combinations(n, k)
		stepTerms := make([]float64, len(combos))
		for i, combo := range combos {
			factors := make([]boolean.Term, len(combo))
			for j, idx := range combo {
				factors[j] = terms[idx]
			}
			combined := boolean.Conjoin(factors...)
			stepTerms[i] = CutSetProbability(combined, q)
		}
		stepSum := numeric.DescendingSum(stepTerms)
		contribution := sign * stepSum
		sum += contribution
		sign = -sign

		if sum != 0 && math.Abs(contribution)/math.Abs(sum) < tolerance {
			break
		}
	}
	return sum
}

// GateIntensity computes a gate's failure intensity by the same
// truncated inclusion–exclusion as GateProbability, substituting each
// combined term's CutSetIntensity for its CutSetProbability (spec §4.D:
// "Gate q/ω at (time, sample) are computed with §4.D's
// inclusion–exclusion").
func GateIntensity(terms []boolean.Term, q, omega EventValue, tolerance float64) float64 {
	n := len(terms)
	if n == 0 {
		return 0
	}
	if n == 1 && terms[0].IsVacuous() {
		return 0
	}

	sum := 0.0
	sign := 1.0
	for k := 1; k <= n; k++ {
		combos := combinations(n, k)
		stepTerms := make([]float64, len(combos))
		for i, combo := range combos {
			factors := make([]boolean.Term, len(combo))
			for j, idx := range combo {
				factors[j] = terms[idx]
			}
			combined := boolean.Conjoin(factors...)
			stepTerms[i] = CutSetIntensity(combined, q, omega)
		}
		stepSum := numeric.DescendingSum(stepTerms)
		contribution := sign * stepSum
		sum += contribution
		sign = -sign

		if sum != 0 && math.Abs(contribution)/math.Abs(sum) < tolerance {
			break
		}
	}
	return sum
}

// combinations returns every k-element subset of {0,...,n-1} as
// ascending index slices, mirroring boolean's unexported combination
// generator (duplicated here rather than exported from boolean, since
// inclusion-exclusion's use is a computation-kernel concern distinct
// from the Boolean-algebra package's own Vote operator).
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}

	result := make([][]int, 0)
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		combo := make([]int, k)
		copy(combo, idx)
		result = append(result, combo)

		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return result
}
