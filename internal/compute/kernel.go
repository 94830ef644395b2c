// Package compute implements the constant-rate reliability kernel and
// the inclusion–exclusion gate-probability evaluator of spec §4.D.
package compute

import "math"

// Q computes the constant-rate failure probability q(t) for failure
// rate lambda and repair rate mu at time t, over the extended reals
// (finite, ±Inf, NaN). This is a total function: every input
// combination in spec §4.D's q(t) table maps to a defined (possibly
// NaN) output, never an error.
func Q(lambda, mu, t float64) float64 {
	switch {
	case math.IsNaN(lambda):
		return math.NaN()

	case lambda == 0 && mu == 0:
		if indeterminateTime(t) {
			return math.NaN()
		}
		return 0

	case lambda == 0 && math.IsInf(mu, 1):
		return 0

	case lambda == 0 && math.IsNaN(mu):
		if indeterminateTime(t) {
			return math.NaN()
		}
		return 0

	case lambda == 0 && finitePositive(mu):
		return 0

	case math.IsInf(lambda, 1) && (math.IsInf(mu, 1) || math.IsNaN(mu)):
		return math.NaN()

	case math.IsInf(lambda, 1) && finiteNonNegative(mu):
		if t == 0 || math.IsNaN(t) {
			return math.NaN()
		}
		return 1

	case finitePositive(lambda) && math.IsInf(mu, 1):
		return 0

	case finitePositive(lambda) && math.IsNaN(mu):
		return math.NaN()

	case finitePositive(lambda) && finiteNonNegative(mu):
		return computeQ(lambda, mu, t)

	default:
		// Unreachable given the domain contract (rates are always
		// >= 0, enforced by sampling.ValidateNonNegative before the
		// kernel ever sees a value).
		return math.NaN()
	}
}

// Omega computes the constant-rate failure intensity ω(t), given the
// already-computed q at the same (lambda, mu, t).
func Omega(lambda, mu, t, q float64) float64 {
	switch {
	case lambda == 0:
		return 0
	case math.IsNaN(lambda) || math.IsNaN(mu):
		return math.NaN()
	case math.IsInf(lambda, 1) && finiteNonNegative(mu) && t != 0 && !math.IsNaN(t):
		return mu
	default:
		return lambda * (1 - q)
	}
}

func computeQ(lambda, mu, t float64) float64 {
	sum := lambda + mu
	return lambda / sum * -math.Expm1(-sum*t)
}

func indeterminateTime(t float64) bool {
	return math.IsInf(t, 0) || math.IsNaN(t)
}

func finitePositive(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x) && x > 0
}

func finiteNonNegative(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x) && x >= 0
}
