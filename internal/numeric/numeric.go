// Package numeric implements the descending-magnitude reductions and
// number formatting of spec §4.H.
package numeric

import (
	"math"
	"sort"
	"strconv"
)

// DescendingProduct multiplies xs left to right after sorting by
// descending absolute value, giving a reduction that is reproducible
// independent of input order and reduces catastrophic underflow. The
// product of zero operands is the multiplicative identity, 1.
func DescendingProduct(xs []float64) float64 {
	sorted := descendingByMagnitude(xs)
	product := 1.0
	for _, x := range sorted {
		product *= x
	}
	return product
}

// DescendingSum sums xs left to right after sorting by descending
// absolute value. The sum of zero operands is the additive identity, 0.
func DescendingSum(xs []float64) float64 {
	sorted := descendingByMagnitude(xs)
	sum := 0.0
	for _, x := range sorted {
		sum += x
	}
	return sum
}

func descendingByMagnitude(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Slice(sorted, func(i, j int) bool {
		return math.Abs(sorted[i]) > math.Abs(sorted[j])
	})
	return sorted
}

// Style selects how FormatNumber renders a finite value.
type Style int

const (
	// FixedDecimals renders precision digits after the decimal point.
	FixedDecimals Style = iota
	// SignificantFigures renders precision significant digits.
	SignificantFigures
)

// FormatNumber pretty-prints a finite/NaN/±Inf value. NaN and ±Inf are
// rendered as "nan"/"inf"/"-inf" regardless of style. Finite values
// switch to scientific notation when their magnitude is at or above
// sciThreshold, or below 1/sciThreshold (and nonzero); sciThreshold<=0
// disables that threshold switch. SignificantFigures renders with
// strconv's 'g' format, which uses an exponent on its own when the
// decimal exponent is below -4 or at least precision.
func FormatNumber(value float64, style Style, precision int, sciThreshold float64) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}

	abs := math.Abs(value)
	if sciThreshold > 0 && abs != 0 && (abs >= sciThreshold || abs < 1/sciThreshold) {
		return strconv.FormatFloat(value, 'e', precision-1, 64)
	}

	switch style {
	case SignificantFigures:
		return strconv.FormatFloat(value, 'g', precision, 64)
	default:
		return strconv.FormatFloat(value, 'f', precision, 64)
	}
}
