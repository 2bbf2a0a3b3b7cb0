// Package other_purchase provides the OtherPurchase entry: stores and
// consumables bought by the mill.
package other_purchase

import (
	"context"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// OtherPurchase credits OTHER stock by Quantity.
type OtherPurchase struct {
	entity.BaseEntry

	ItemName   string `db:"item_name" json:"itemName"`
	PartyName  string `db:"party_name" json:"partyName"`
	BrokerName string `db:"broker_name" json:"brokerName"`
	DealNumber string `db:"deal_number" json:"dealNumber"`

	Quantity types.Measure `db:"quantity" json:"quantity"`
	Unit     string        `db:"unit" json:"unit"`
	Rate     types.Measure `db:"rate" json:"rate"`
	Amount   types.Measure `db:"amount" json:"amount"`

	Remarks string `db:"remarks" json:"remarks"`
}

// Normalize fills Amount from quantity and rate when it was not given.
func (p *OtherPurchase) Normalize() {
	if p.Amount.IsZero() {
		p.Amount = p.Quantity.Mul(p.Rate).Round(2)
	}
}

// Validate implements entity.Validatable.
func (p *OtherPurchase) Validate(_ context.Context) error {
	return domain.FirstError(
		domain.ValidateBase(&p.BaseEntry),
		domain.Required("itemName", p.ItemName),
		domain.ValidMeasures(
			domain.Measure{Field: "quantity", Value: p.Quantity},
			domain.Measure{Field: "rate", Value: p.Rate},
			domain.Measure{Field: "amount", Value: p.Amount},
		),
	)
}

func (p *OtherPurchase) DealNumberRef() *string {
	return &p.DealNumber
}

func StockQuantity(p *OtherPurchase) types.Measure {
	return p.Quantity
}
