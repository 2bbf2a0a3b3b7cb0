package entries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptors_Unique(t *testing.T) {
	descs := Descriptors()
	require.Len(t, descs, 9)

	samples := Samples()
	seen := map[string]bool{}
	tables := map[string]bool{}
	for _, d := range descs {
		require.NoError(t, d.Validate(), d.Entity)
		assert.False(t, seen[d.Resource], d.Resource)
		assert.False(t, tables[d.Table], d.Table)
		seen[d.Resource] = true
		tables[d.Table] = true
		assert.Contains(t, samples, d.Resource)
	}
}

func TestDescriptors_StockModules(t *testing.T) {
	var withStock []string
	for _, d := range Descriptors() {
		if d.Stock != nil {
			withStock = append(withStock, d.Entity)
		}
	}
	assert.Equal(t, []string{
		"RicePurchase", "SilkyKodhaOutward", "PrivateRiceOutward", "PrivateGunnyOutward", "OtherPurchase",
	}, withStock)
}
