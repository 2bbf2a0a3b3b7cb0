// Package silky_kodha_outward provides the SilkyKodhaOutward entry:
// silky kodha (rice bran by-product) dispatched to a buyer.
package silky_kodha_outward

import (
	"context"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

var hundred = types.NewMeasure(100)

// SilkyKodhaOutward debits SILKY_KODHA stock by KodhaQty.
type SilkyKodhaOutward struct {
	entity.BaseEntry

	DealNumber  string `db:"deal_number" json:"dealNumber"`
	PartyName   string `db:"party_name" json:"partyName"`
	BrokerName  string `db:"broker_name" json:"brokerName"`
	TruckNumber string `db:"truck_number" json:"truckNumber"`
	RSTNumber   string `db:"rst_number" json:"rstNumber"`

	KodhaQty      types.Measure `db:"kodha_qty" json:"kodhaQty"`
	Rate          types.Measure `db:"rate" json:"rate"`
	OilPercentage types.Measure `db:"oil_percentage" json:"oilPercentage"`
	NetWeight     types.Measure `db:"net_weight" json:"netWeight"`

	Remarks string `db:"remarks" json:"remarks"`
}

// Validate implements entity.Validatable.
func (o *SilkyKodhaOutward) Validate(_ context.Context) error {
	err := domain.FirstError(
		domain.ValidateBase(&o.BaseEntry),
		domain.ValidMeasures(
			domain.Measure{Field: "kodhaQty", Value: o.KodhaQty},
			domain.Measure{Field: "rate", Value: o.Rate},
			domain.Measure{Field: "oilPercentage", Value: o.OilPercentage},
			domain.Measure{Field: "netWeight", Value: o.NetWeight},
		),
	)
	if err != nil {
		return err
	}
	if o.OilPercentage.GreaterThan(hundred) {
		return apperror.NewFieldValidation("oilPercentage", "oilPercentage must be between 0 and 100")
	}
	return nil
}

// Amount is quantity times rate.
func (o *SilkyKodhaOutward) Amount() types.Measure {
	return o.KodhaQty.Mul(o.Rate)
}

// StockQuantity is the SILKY_KODHA debited by the outward.
func StockQuantity(o *SilkyKodhaOutward) types.Measure {
	return o.KodhaQty
}
