// Package rice_purchase provides the RicePurchase entry (rice bought under a deal).
package rice_purchase

import (
	"context"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// RicePurchase is a purchase deal for rice. It credits RICE stock by RiceQty.
type RicePurchase struct {
	entity.BaseEntry

	PartyName  string `db:"party_name" json:"partyName"`
	BrokerName string `db:"broker_name" json:"brokerName"`
	DealNumber string `db:"deal_number" json:"dealNumber"`
	RiceType   string `db:"rice_type" json:"riceType"`
	LotType    string `db:"lot_type" json:"lotType"`

	RiceQty   types.Measure `db:"rice_qty" json:"riceQty"`
	Rate      types.Measure `db:"rate" json:"rate"`
	Brokerage types.Measure `db:"brokerage" json:"brokerage"`

	Remarks string `db:"remarks" json:"remarks"`
}

// Validate implements entity.Validatable.
func (p *RicePurchase) Validate(_ context.Context) error {
	return domain.FirstError(
		domain.ValidateBase(&p.BaseEntry),
		domain.ValidMeasures(
			domain.Measure{Field: "riceQty", Value: p.RiceQty},
			domain.Measure{Field: "rate", Value: p.Rate},
			domain.Measure{Field: "brokerage", Value: p.Brokerage},
		),
	)
}

// DealNumberRef lets the service auto-assign the deal number.
func (p *RicePurchase) DealNumberRef() *string {
	return &p.DealNumber
}

// Amount is the deal value, quantity times rate.
func (p *RicePurchase) Amount() types.Measure {
	return p.RiceQty.Mul(p.Rate)
}

// StockQuantity is the RICE credited by the purchase.
func StockQuantity(p *RicePurchase) types.Measure {
	return p.RiceQty
}
