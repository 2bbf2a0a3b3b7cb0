// Package rice_inward provides the RiceInward entry: rice arriving at the mill
// against a deal, weighed at the gate.
package rice_inward

import (
	"context"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// RiceInward is one truck of rice received at the mill.
type RiceInward struct {
	entity.BaseEntry

	RSTNumber   string `db:"rst_number" json:"rstNumber"`
	TruckNumber string `db:"truck_number" json:"truckNumber"`
	PartyName   string `db:"party_name" json:"partyName"`
	BrokerName  string `db:"broker_name" json:"brokerName"`
	DealNumber  string `db:"deal_number" json:"dealNumber"`
	LotNumber   string `db:"lot_number" json:"lotNumber"`
	RiceType    string `db:"rice_type" json:"riceType"`

	// Bags by kind
	GunnyNew     int `db:"gunny_new" json:"gunnyNew"`
	GunnyOld     int `db:"gunny_old" json:"gunnyOld"`
	GunnyPlastic int `db:"gunny_plastic" json:"gunnyPlastic"`

	GrossWeight types.Measure `db:"gross_weight" json:"grossWeight"`
	TareWeight  types.Measure `db:"tare_weight" json:"tareWeight"`
	NetWeight   types.Measure `db:"net_weight" json:"netWeight"`

	Remarks string `db:"remarks" json:"remarks"`
}

// Normalize derives the net weight from gross and tare when it was not given.
func (r *RiceInward) Normalize() {
	if r.NetWeight.IsZero() && r.GrossWeight.GreaterThanOrEqual(r.TareWeight) {
		r.NetWeight = r.GrossWeight.Sub(r.TareWeight)
	}
}

// Validate implements entity.Validatable.
func (r *RiceInward) Validate(_ context.Context) error {
	err := domain.FirstError(
		domain.ValidateBase(&r.BaseEntry),
		domain.ValidMeasures(
			domain.Measure{Field: "grossWeight", Value: r.GrossWeight},
			domain.Measure{Field: "tareWeight", Value: r.TareWeight},
			domain.Measure{Field: "netWeight", Value: r.NetWeight},
		),
		domain.ValidCounts(
			domain.Count{Field: "gunnyNew", Value: r.GunnyNew},
			domain.Count{Field: "gunnyOld", Value: r.GunnyOld},
			domain.Count{Field: "gunnyPlastic", Value: r.GunnyPlastic},
		),
	)
	if err != nil {
		return err
	}

	if r.GrossWeight.LessThan(r.TareWeight) {
		return apperror.NewValidation("grossWeight must not be less than tareWeight").
			WithDetail("field", "grossWeight")
	}
	return nil
}

// TotalGunny returns the number of bags of all kinds.
func (r *RiceInward) TotalGunny() int {
	return r.GunnyNew + r.GunnyOld + r.GunnyPlastic
}
