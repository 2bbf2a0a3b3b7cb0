package cache

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

func TestKeys(t *testing.T) {
	millID := id.MustParse("0190a5b0-0000-7000-8000-000000000001")

	assert.Equal(t, "ricemill:summary:gen:0190a5b0-0000-7000-8000-000000000001:rice-purchase",
		generationKey(millID, "rice-purchase"))
	assert.Equal(t, "ricemill:summary:0190a5b0-0000-7000-8000-000000000001:rice-purchase:3:2024-03-01:-",
		valueKey(millID, "rice-purchase", 3, "2024-03-01:-"))
	assert.Equal(t, "ricemill:lock:reconcile:0190a5b0-0000-7000-8000-000000000001", lockKey("reconcile", millID))
	assert.Equal(t, "ricemill:idem:abc", idempotencyKey("abc"))
}

func TestSummaryEncoding(t *testing.T) {
	in := domain.Summary{"totalRiceQty": types.MustMeasure("100.5"), "totalEntries": types.NewMeasure(1)}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalRiceQty":100.5,"totalEntries":1}`, string(raw))

	var out domain.Summary
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out["totalRiceQty"].Equal(in["totalRiceQty"]))
}
