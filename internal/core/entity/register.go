package entity

import (
	"time"

	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

// TransactionType is the direction of a stock ledger row.
type TransactionType string

const (
	// Credit increases the balance (purchases).
	Credit TransactionType = "CREDIT"
	// Debit decreases the balance (outwards).
	Debit TransactionType = "DEBIT"
)

// Valid reports whether t is a known direction.
func (t TransactionType) Valid() bool {
	return t == Credit || t == Debit
}

// Commodity is what a stock ledger row counts.
type Commodity string

const (
	CommodityRice       Commodity = "RICE"
	CommoditySilkyKodha Commodity = "SILKY_KODHA"
	CommodityGunny      Commodity = "GUNNY"
	CommodityOther      Commodity = "OTHER"
)

// Commodities lists all commodities in report order.
var Commodities = []Commodity{CommodityRice, CommoditySilkyKodha, CommodityGunny, CommodityOther}

// Valid reports whether c is a known commodity.
func (c Commodity) Valid() bool {
	for _, known := range Commodities {
		if c == known {
			return true
		}
	}
	return false
}

// RefModelManual marks ledger rows entered by hand rather than derived from an entry.
const RefModelManual = "Manual"

// StockTransaction is one row of the per-mill stock ledger.
// Derived rows are keyed by (RefModel, RefID) and follow their source entry.
type StockTransaction struct {
	ID        id.ID           `db:"id" json:"id"`
	MillID    id.ID           `db:"mill_id" json:"millId"`
	Date      time.Time       `db:"date" json:"date"`
	Commodity Commodity       `db:"commodity" json:"commodity"`
	Type      TransactionType `db:"type" json:"type"`
	Quantity  types.Measure   `db:"quantity" json:"quantity"`
	RefModel  string          `db:"ref_model" json:"refModel"`
	RefID     id.ID           `db:"ref_id" json:"refId"`
	Remarks   string          `db:"remarks" json:"remarks"`
	CreatedBy *id.ID          `db:"created_by" json:"createdBy"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// SignedQuantity returns quantity with sign based on the direction.
func (t *StockTransaction) SignedQuantity() types.Measure {
	if t.Type == Debit {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// StockMovement is what an entry asks the ledger to hold for it.
type StockMovement struct {
	MillID    id.ID
	Date      time.Time
	Commodity Commodity
	Type      TransactionType
	Quantity  types.Measure
	RefModel  string
	RefID     id.ID
	Remarks   string
	CreatedBy *id.ID
}

// ToTransaction builds a new ledger row for the movement.
func (m StockMovement) ToTransaction() *StockTransaction {
	now := time.Now().UTC()
	return &StockTransaction{
		ID:        id.New(),
		MillID:    m.MillID,
		Date:      m.Date,
		Commodity: m.Commodity,
		Type:      m.Type,
		Quantity:  m.Quantity,
		RefModel:  m.RefModel,
		RefID:     m.RefID,
		Remarks:   m.Remarks,
		CreatedBy: m.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StockBalance is the ledger position of one commodity.
type StockBalance struct {
	Commodity Commodity     `db:"commodity" json:"commodity"`
	Credit    types.Measure `db:"credit" json:"credit"`
	Debit     types.Measure `db:"debit" json:"debit"`
	Balance   types.Measure `db:"balance" json:"balance"`
}
