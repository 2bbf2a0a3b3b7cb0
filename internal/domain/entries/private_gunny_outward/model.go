// Package private_gunny_outward provides the PrivateGunnyOutward entry:
// empty gunny bags sold against a gunny purchase deal.
package private_gunny_outward

import (
	"context"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// PrivateGunnyOutward debits GUNNY stock by the total of all bag kinds.
type PrivateGunnyOutward struct {
	entity.BaseEntry

	GunnyPurchaseDealNumber string `db:"gunny_purchase_deal_number" json:"gunnyPurchaseDealNumber"`
	PartyName               string `db:"party_name" json:"partyName"`
	TruckNumber             string `db:"truck_number" json:"truckNumber"`

	NewGunnyQty     int `db:"new_gunny_qty" json:"newGunnyQty"`
	OldGunnyQty     int `db:"old_gunny_qty" json:"oldGunnyQty"`
	PlasticGunnyQty int `db:"plastic_gunny_qty" json:"plasticGunnyQty"`

	Remarks string `db:"remarks" json:"remarks"`
}

// Validate implements entity.Validatable.
func (o *PrivateGunnyOutward) Validate(_ context.Context) error {
	return domain.FirstError(
		domain.ValidateBase(&o.BaseEntry),
		domain.ValidCounts(
			domain.Count{Field: "newGunnyQty", Value: o.NewGunnyQty},
			domain.Count{Field: "oldGunnyQty", Value: o.OldGunnyQty},
			domain.Count{Field: "plasticGunnyQty", Value: o.PlasticGunnyQty},
		),
	)
}

// TotalQty is the number of bags of all kinds.
func (o *PrivateGunnyOutward) TotalQty() int {
	return o.NewGunnyQty + o.OldGunnyQty + o.PlasticGunnyQty
}

func StockQuantity(o *PrivateGunnyOutward) types.Measure {
	return types.NewMeasure(float64(o.TotalQty()))
}
