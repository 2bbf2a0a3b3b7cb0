// Package types provides common value types and helpers.
package types

import (
	"math"

	"github.com/shopspring/decimal"
)

func init() {
	// Measures travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Measure is a quantity, weight, rate or amount. Stored as NUMERIC.
type Measure = decimal.Decimal

// SummaryScale is the number of fractional digits in summary output.
const SummaryScale = 2

// Storage limits: measures live in NUMERIC(18,2) or NUMERIC(18,3) columns,
// counts in INT.
var MaxMeasure = decimal.RequireFromString("999999999999999.99")

const MaxCount = math.MaxInt32

// InRange reports whether m is between 0 and MaxMeasure.
func InRange(m Measure) bool {
	return !m.IsNegative() && m.LessThanOrEqual(MaxMeasure)
}

// NewMeasure creates a Measure from a float.
// Use ParseMeasure for values coming from text.
func NewMeasure(f float64) Measure {
	return decimal.NewFromFloat(f)
}

// ParseMeasure parses a decimal string.
func ParseMeasure(s string) (Measure, error) {
	return decimal.NewFromString(s)
}

// MustMeasure parses a decimal string and panics on error.
// Use only for constants and tests.
func MustMeasure(s string) Measure {
	return decimal.RequireFromString(s)
}

// Zero returns a zero Measure.
func Zero() Measure {
	return decimal.Zero
}

// Round2 rounds half away from zero to two decimal places.
func Round2(m Measure) Measure {
	return m.Round(SummaryScale)
}

// Sum adds measures.
func Sum(values ...Measure) Measure {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// AnyNegative reports whether any of the values is below zero.
func AnyNegative(values ...Measure) bool {
	for _, v := range values {
		if v.IsNegative() {
			return true
		}
	}
	return false
}
