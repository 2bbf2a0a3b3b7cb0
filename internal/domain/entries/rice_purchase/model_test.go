package rice_purchase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

func TestRicePurchase_Validate(t *testing.T) {
	p := &RicePurchase{PartyName: "Acme", RiceQty: types.NewMeasure(100)}
	p.MillID = id.New()
	p.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.Validate(context.Background()))

	p.Rate = types.NewMeasure(-5)
	assert.Error(t, p.Validate(context.Background()))

	// NUMERIC(18,2) cannot hold it
	p.Rate = types.NewMeasure(1e20)
	assert.Error(t, p.Validate(context.Background()))
}

func TestRicePurchase_AmountAndStock(t *testing.T) {
	p := &RicePurchase{RiceQty: types.MustMeasure("12.5"), Rate: types.NewMeasure(40)}

	assert.Equal(t, "500", p.Amount().String())
	assert.True(t, StockQuantity(p).Equal(p.RiceQty))

	p.DealNumber = ""
	*p.DealNumberRef() = "RP-2024-00001"
	assert.Equal(t, "RP-2024-00001", p.DealNumber)
}

func TestDescriptor(t *testing.T) {
	require.NoError(t, Descriptor.Validate())
	require.NotNil(t, Descriptor.Stock)
	assert.Equal(t, entity.CommodityRice, Descriptor.Stock.Commodity)
	assert.Equal(t, entity.Credit, Descriptor.Stock.Type)
	assert.Equal(t, []string{"totalRiceQty", "totalAmount", "totalBrokerage", "totalEntries"}, Descriptor.SummaryKeys())
}
