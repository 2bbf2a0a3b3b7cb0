// Package private_rice_outward provides the PrivateRiceOutward entry:
// rice sold and dispatched to private parties.
package private_rice_outward

import (
	"context"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// PrivateRiceOutward debits RICE stock by RiceQty.
type PrivateRiceOutward struct {
	entity.BaseEntry

	DealNumber  string `db:"deal_number" json:"dealNumber"`
	PartyName   string `db:"party_name" json:"partyName"`
	BrokerName  string `db:"broker_name" json:"brokerName"`
	LotNumber   string `db:"lot_number" json:"lotNumber"`
	RiceType    string `db:"rice_type" json:"riceType"`
	TruckNumber string `db:"truck_number" json:"truckNumber"`
	RSTNumber   string `db:"rst_number" json:"rstNumber"`

	RiceQty types.Measure `db:"rice_qty" json:"riceQty"`

	GunnyNew     int `db:"gunny_new" json:"gunnyNew"`
	GunnyOld     int `db:"gunny_old" json:"gunnyOld"`
	GunnyPlastic int `db:"gunny_plastic" json:"gunnyPlastic"`

	NetWeight types.Measure `db:"net_weight" json:"netWeight"`
	Remarks   string        `db:"remarks" json:"remarks"`
}

// Validate implements entity.Validatable.
func (o *PrivateRiceOutward) Validate(_ context.Context) error {
	return domain.FirstError(
		domain.ValidateBase(&o.BaseEntry),
		domain.ValidMeasures(
			domain.Measure{Field: "riceQty", Value: o.RiceQty},
			domain.Measure{Field: "netWeight", Value: o.NetWeight},
		),
		domain.ValidCounts(
			domain.Count{Field: "gunnyNew", Value: o.GunnyNew},
			domain.Count{Field: "gunnyOld", Value: o.GunnyOld},
			domain.Count{Field: "gunnyPlastic", Value: o.GunnyPlastic},
		),
	)
}

func StockQuantity(o *PrivateRiceOutward) types.Measure {
	return o.RiceQty
}
