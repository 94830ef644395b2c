package sampling

import (
	"math"
	"math/rand"

	"github.com/gofta/gofta/internal/fterr"
)

// Sample draws count values from d using rng, in declaration order.
// The same seed and the same declaration order reproduce identical
// vectors across runs (spec §4.C, §5): rng is supplied by the caller
// (the analysis driver) rather than constructed here, so the draw
// order across every model in a fault tree is fully controlled by the
// driver's single shared *rand.Rand.
func Sample(d Distribution, count int, rng *rand.Rand) ([]float64, error) {
	fterr.Assert(count > 0, "Sample called with non-positive count %d", count)

	samples := make([]float64, count)
	for i := 0; i < count; i++ {
		v, err := drawOne(d, rng)
		if err != nil {
			return nil, err
		}
		samples[i] = v
	}
	return samples, nil
}

func drawOne(d Distribution, rng *rand.Rand) (float64, error) {
	switch d.Kind {
	case Degenerate:
		return d.Value, nil
	case Uniform:
		return d.A + rng.Float64()*(d.B-d.A), nil
	case LogUniform:
		logA, logB := math.Log(d.A), math.Log(d.B)
		return math.Exp(logA + rng.Float64()*(logB-logA)), nil
	case Normal:
		v := d.Mu + rng.NormFloat64()*d.Sigma
		if math.IsInf(v, 0) {
			return 0, samplingError(d.Line, "normal draw overflowed to infinity")
		}
		return v, nil
	case LogNormal:
		exponent := d.Mu + rng.NormFloat64()*d.Sigma
		v := math.Exp(exponent)
		if math.IsInf(v, 0) {
			return 0, samplingError(d.Line, "lognormal draw overflowed to infinity")
		}
		return v, nil
	default:
		fterr.Violate("unknown distribution kind %d", int(d.Kind))
		return 0, nil
	}
}

func samplingError(line int, msg string) error {
	return fterr.At(line, "DistributionSamplingError", msg)
}

// ValidateProbabilities checks that every sample lies in [0,1], as
// required of samples feeding a probability-typed parameter (e.g.
// Fixed.probability). Violations raise InvalidProbabilityValue.
func ValidateProbabilities(samples []float64, line int) error {
	for _, v := range samples {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fterr.At(line, "InvalidProbabilityValue",
				"sampled probability must lie in [0, 1]")
		}
	}
	return nil
}

// ValidateNonNegative checks that every sample is >= 0, as required of
// samples feeding a rate-typed parameter (e.g. ConstantRate.failure_rate).
// Violations raise NegativeValue.
func ValidateNonNegative(samples []float64, line int) error {
	for _, v := range samples {
		if math.IsNaN(v) || v < 0 {
			return fterr.At(line, "NegativeValue", "sampled rate must be >= 0")
		}
	}
	return nil
}
