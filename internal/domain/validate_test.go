package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/types"
)

func TestValidMeasures(t *testing.T) {
	require.NoError(t, ValidMeasures(
		Measure{Field: "riceQty", Value: types.Zero()},
		Measure{Field: "rate", Value: types.MaxMeasure},
	))

	err := ValidMeasures(Measure{Field: "riceQty", Value: types.NewMeasure(-0.5)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")

	err = ValidMeasures(Measure{Field: "rate", Value: types.NewMeasure(1e20)})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "rate", appErr.Details["field"])

	hours := Measure{Field: "millingHours", Value: types.NewMeasure(25), Max: types.NewMeasure(24)}
	assert.Error(t, ValidMeasures(hours))
	hours.Value = types.NewMeasure(24)
	assert.NoError(t, ValidMeasures(hours))
}

func TestValidCounts(t *testing.T) {
	assert.NoError(t, ValidCounts(Count{Field: "bags", Value: types.MaxCount}))
	assert.Error(t, ValidCounts(Count{Field: "bags", Value: -1}))
	assert.Error(t, ValidCounts(Count{Field: "gunnyNew", Value: 3000000000}))
}
