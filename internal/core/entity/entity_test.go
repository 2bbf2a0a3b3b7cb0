package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

func TestBaseEntry_Init(t *testing.T) {
	millID := id.New()
	var b BaseEntry
	b.Init(millID)

	assert.False(t, id.IsNil(b.ID))
	assert.Equal(t, millID, b.MillID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
	assert.Same(t, &b, b.Base())
}

func TestStockTransaction_SignedQuantity(t *testing.T) {
	credit := StockTransaction{Type: Credit, Quantity: types.NewMeasure(10)}
	debit := StockTransaction{Type: Debit, Quantity: types.NewMeasure(4)}

	assert.Equal(t, "10", credit.SignedQuantity().String())
	assert.Equal(t, "-4", debit.SignedQuantity().String())
}

func TestCommodityAndTypeValid(t *testing.T) {
	assert.True(t, CommodityGunny.Valid())
	assert.False(t, Commodity("PADDY").Valid())
	assert.True(t, Debit.Valid())
	assert.False(t, TransactionType("IN").Valid())
}

func TestStockMovement_ToTransaction(t *testing.T) {
	ref := id.New()
	m := StockMovement{MillID: id.New(), Commodity: CommodityRice, Type: Credit, Quantity: types.NewMeasure(5), RefModel: "RicePurchase", RefID: ref}
	tx := m.ToTransaction()

	assert.Equal(t, ref, tx.RefID)
	assert.Equal(t, "RicePurchase", tx.RefModel)
	assert.False(t, id.IsNil(tx.ID))
}
