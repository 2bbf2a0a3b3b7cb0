package other_purchase

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

func TestOtherPurchase_NormalizeAmount(t *testing.T) {
	p := &OtherPurchase{ItemName: "Diesel", Quantity: types.MustMeasure("20.5"), Rate: types.MustMeasure("92.35")}
	p.Normalize()
	assert.Equal(t, "1893.18", p.Amount.String())

	p.Amount = types.NewMeasure(1900)
	p.Normalize()
	assert.Equal(t, "1900", p.Amount.String())
}

func TestOtherPurchase_Validate(t *testing.T) {
	p := &OtherPurchase{ItemName: "Diesel", Quantity: types.NewMeasure(1)}
	p.MillID = id.New()
	p.Date = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.Validate(context.Background()))

	p.ItemName = ""
	assert.Error(t, p.Validate(context.Background()))
}

func TestDescriptor(t *testing.T) {
	require.NoError(t, Descriptor.Validate())
	assert.Equal(t, entity.CommodityOther, Descriptor.Stock.Commodity)
	assert.Equal(t, entity.Credit, Descriptor.Stock.Type)
	assert.Equal(t, "OP", Descriptor.NumberPrefix)
}
