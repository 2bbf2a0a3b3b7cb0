package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/03/2024")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", FormatDate(*d))
}

func TestDateRange_Validate(t *testing.T) {
	start, _ := ParseDate("2024-03-02")
	end, _ := ParseDate("2024-03-01")

	assert.Error(t, DateRange{Start: &start, End: &end}.Validate())
	assert.NoError(t, DateRange{Start: &end, End: &start}.Validate())
	assert.NoError(t, DateRange{}.Validate())
	assert.Equal(t, "2024-03-01:-", DateRange{Start: &end}.Key())
}

func TestTruncateDate(t *testing.T) {
	in := time.Date(2024, 3, 1, 23, 15, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01", FormatDate(TruncateDate(in)))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.13", Round2(MustMeasure("10.125")).String())
	assert.Equal(t, "100", Round2(MustMeasure("100")).String())
}

func TestMeasure_JSONNumber(t *testing.T) {
	b, err := json.Marshal(map[string]Measure{"riceQty": MustMeasure("100.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"riceQty":100.5}`, string(b))
}

func TestSumAndAnyNegative(t *testing.T) {
	assert.Equal(t, "6", Sum(NewMeasure(1), NewMeasure(2), NewMeasure(3)).String())
	assert.True(t, AnyNegative(NewMeasure(1), NewMeasure(-1)))
	assert.False(t, AnyNegative(Zero()))
}
