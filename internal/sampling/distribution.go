// Package sampling implements the Distribution tagged variant (spec
// §3) and the Sampler (spec §4.C): deterministic draws from a
// distribution into a count-sized sample vector.
package sampling

import (
	"math"

	"github.com/gofta/gofta/internal/fterr"
)

// Kind tags which member of the Distribution variant a value holds.
type Kind int

const (
	Degenerate Kind = iota
	Uniform
	LogUniform
	Normal
	LogNormal
)

func (k Kind) String() string {
	switch k {
	case Degenerate:
		return "degenerate"
	case Uniform:
		return "uniform"
	case LogUniform:
		return "loguniform"
	case Normal:
		return "normal"
	case LogNormal:
		return "lognormal"
	default:
		fterr.Violate("unknown distribution kind %d", int(k))
		return ""
	}
}

// Distribution is a tagged variant over the five statistical models
// spec §3 recognises. Line is the source line of the property that
// declared it, preserved for diagnostics.
type Distribution struct {
	Kind Kind
	Line int

	Value float64 // Degenerate
	A, B  float64 // Uniform, LogUniform
	Mu    float64 // Normal, LogNormal
	Sigma float64 // Normal, LogNormal
}

// NewDegenerate builds a Degenerate(value) distribution.
func NewDegenerate(line int, value float64) (Distribution, error) {
	if !finite(value) {
		return Distribution{}, invalidParam(line, "degenerate value must be finite")
	}
	return Distribution{Kind: Degenerate, Line: line, Value: value}, nil
}

// NewUniform builds a Uniform(a,b) distribution; requires a <= b.
func NewUniform(line int, a, b float64) (Distribution, error) {
	if !finite(a) || !finite(b) {
		return Distribution{}, invalidParam(line, "uniform parameters must be finite")
	}
	if a > b {
		return Distribution{}, invalidParam(line, "uniform requires a <= b")
	}
	return Distribution{Kind: Uniform, Line: line, A: a, B: b}, nil
}

// NewLogUniform builds a LogUniform(a,b) distribution; requires
// 0 < a <= b.
func NewLogUniform(line int, a, b float64) (Distribution, error) {
	if !finite(a) || !finite(b) {
		return Distribution{}, invalidParam(line, "loguniform parameters must be finite")
	}
	if a <= 0 {
		return Distribution{}, invalidParam(line, "loguniform requires a > 0")
	}
	if a > b {
		return Distribution{}, invalidParam(line, "loguniform requires a <= b")
	}
	return Distribution{Kind: LogUniform, Line: line, A: a, B: b}, nil
}

// NewNormal builds a Normal(mu,sigma) distribution.
func NewNormal(line int, mu, sigma float64) (Distribution, error) {
	if !finite(mu) || !finite(sigma) {
		return Distribution{}, invalidParam(line, "normal parameters must be finite")
	}
	return Distribution{Kind: Normal, Line: line, Mu: mu, Sigma: sigma}, nil
}

// NewLogNormal builds a LogNormal(mu,sigma) distribution; requires
// sigma > 0.
func NewLogNormal(line int, mu, sigma float64) (Distribution, error) {
	if !finite(mu) || !finite(sigma) {
		return Distribution{}, invalidParam(line, "lognormal parameters must be finite")
	}
	if sigma <= 0 {
		return Distribution{}, invalidParam(line, "lognormal requires sigma > 0")
	}
	return Distribution{Kind: LogNormal, Line: line, Mu: mu, Sigma: sigma}, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func invalidParam(line int, msg string) error {
	return fterr.At(line, "InvalidDistributionParameter", msg)
}
