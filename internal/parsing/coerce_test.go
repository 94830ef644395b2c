package parsing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceFloatAcceptsSpecialValues(t *testing.T) {
	v, err := CoerceFloat(1, "inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = CoerceFloat(1, "NaN")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))
}

func TestCoerceFloatsTrailingComma(t *testing.T) {
	got, err := CoerceFloats(1, "1, 2, 3,")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestCoerceFloatsDoubleTrailingCommaRejected(t *testing.T) {
	_, err := CoerceFloats(1, "1, 2,,")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidFloat")
}

func TestCoerceFloatsEmptyElementRejected(t *testing.T) {
	_, err := CoerceFloats(1, "1,,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidFloat")
}

func TestCoerceIntRejectsFloat(t *testing.T) {
	_, err := CoerceInt(1, "1.0")
	require.Error(t, err)
}

func TestCoerceBoolCaseSensitive(t *testing.T) {
	v, err := CoerceBool(1, "True")
	require.NoError(t, err)
	assert.True(t, v)

	_, err = CoerceBool(1, "true")
	require.Error(t, err)
}

func TestCoerceGateTypeVote(t *testing.T) {
	gt, err := CoerceGateType(1, "VOTE(2)")
	require.NoError(t, err)
	assert.Equal(t, GateVote, gt.Kind)
	assert.Equal(t, 2, gt.K)
}

func TestCoerceGateTypeUnknownSuggests(t *testing.T) {
	_, err := CoerceGateType(1, "NUL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidGateType")
	assert.Contains(t, err.Error(), `did you mean "NULL"?`)
}

func TestCoerceModelTypeAll(t *testing.T) {
	for _, name := range modelTypeNames {
		_, err := CoerceModelType(1, name)
		require.NoError(t, err, name)
	}
}

func TestCoerceDistributionBareFloat(t *testing.T) {
	d, err := CoerceDistribution(1, "0.1")
	require.NoError(t, err)
	assert.Equal(t, 0.1, d.Value)
}

func TestCoerceDistributionUniformCall(t *testing.T) {
	d, err := CoerceDistribution(1, "uniform(a=0.1, b=0.5)")
	require.NoError(t, err)
	assert.Equal(t, 0.1, d.A)
	assert.Equal(t, 0.5, d.B)
}

func TestCoerceDistributionLogNormalCall(t *testing.T) {
	d, err := CoerceDistribution(1, "lognormal(mu=0, sigma=1)")
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Mu)
	assert.Equal(t, 1.0, d.Sigma)
}

func TestCoerceDistributionMissingArgument(t *testing.T) {
	_, err := CoerceDistribution(1, "normal(mu=0)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidDistribution")
}

func TestCoerceDistributionUnknownName(t *testing.T) {
	_, err := CoerceDistribution(1, "poisson(mu=0)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidDistribution")
}

func TestCoerceIDListTrimsAndRejectsEmpty(t *testing.T) {
	got, err := CoerceIDList(1, "A, B,C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, got)

	_, err = CoerceIDList(1, "A,,B")
	require.Error(t, err)
}
