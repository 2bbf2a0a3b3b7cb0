package domain

import (
	"fmt"
	"strings"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

// Normalizer is implemented by entries that derive defaults (e.g. net weight)
// before validation.
type Normalizer interface {
	Normalize()
}

// Measure names a decimal field for validation. Max defaults to
// types.MaxMeasure when zero.
type Measure struct {
	Field string
	Value types.Measure
	Max   types.Measure
}

// Count names an integer field for validation.
type Count struct {
	Field string
	Value int
}

// ValidateBase checks the fields shared by every entry.
func ValidateBase(b *entity.BaseEntry) error {
	if id.IsNil(b.MillID) {
		return apperror.NewFieldValidation("millId", "millId is required")
	}
	if b.Date.IsZero() {
		return apperror.NewFieldValidation("date", "date is required")
	}
	return nil
}

// ValidMeasures rejects the first measure that is negative or above its max.
func ValidMeasures(measures ...Measure) error {
	for _, m := range measures {
		if m.Value.IsNegative() {
			return apperror.NewFieldValidation(m.Field, fmt.Sprintf("%s must not be negative", m.Field))
		}
		limit := m.Max
		if limit.IsZero() {
			limit = types.MaxMeasure
		}
		if m.Value.GreaterThan(limit) {
			return apperror.NewFieldValidation(m.Field, fmt.Sprintf("%s must be at most %s", m.Field, limit))
		}
	}
	return nil
}

// ValidCounts rejects the first count that is negative or does not fit INT.
func ValidCounts(counts ...Count) error {
	for _, c := range counts {
		if c.Value < 0 {
			return apperror.NewFieldValidation(c.Field, fmt.Sprintf("%s must not be negative", c.Field))
		}
		if c.Value > types.MaxCount {
			return apperror.NewFieldValidation(c.Field, fmt.Sprintf("%s must be at most %d", c.Field, types.MaxCount))
		}
	}
	return nil
}

// Required rejects a blank string.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.NewFieldValidation(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
