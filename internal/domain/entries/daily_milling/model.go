// Package daily_milling provides the DailyMilling entry: one day's paddy
// milled and the rice and by-products it yielded.
package daily_milling

import (
	"context"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// A milling day has at most 24 hours.
var maxMillingHours = types.NewMeasure(24)

type DailyMilling struct {
	entity.BaseEntry

	PaddyType string `db:"paddy_type" json:"paddyType"`

	PaddyQty     types.Measure `db:"paddy_qty" json:"paddyQty"`
	RiceQty      types.Measure `db:"rice_qty" json:"riceQty"`
	BrokenQty    types.Measure `db:"broken_qty" json:"brokenQty"`
	BranQty      types.Measure `db:"bran_qty" json:"branQty"`
	HuskQty      types.Measure `db:"husk_qty" json:"huskQty"`
	MillingHours types.Measure `db:"milling_hours" json:"millingHours"`

	Remarks string `db:"remarks" json:"remarks"`
}

// Validate implements entity.Validatable.
func (m *DailyMilling) Validate(_ context.Context) error {
	return domain.FirstError(
		domain.ValidateBase(&m.BaseEntry),
		domain.ValidMeasures(
			domain.Measure{Field: "paddyQty", Value: m.PaddyQty},
			domain.Measure{Field: "riceQty", Value: m.RiceQty},
			domain.Measure{Field: "brokenQty", Value: m.BrokenQty},
			domain.Measure{Field: "branQty", Value: m.BranQty},
			domain.Measure{Field: "huskQty", Value: m.HuskQty},
			domain.Measure{Field: "millingHours", Value: m.MillingHours, Max: maxMillingHours},
		),
	)
}

// OutturnPercent is rice yield as a share of paddy milled, rounded to 2 decimals.
// Zero when no paddy was milled.
func (m *DailyMilling) OutturnPercent() types.Measure {
	if m.PaddyQty.IsZero() {
		return types.Zero()
	}
	return types.Round2(m.RiceQty.Div(m.PaddyQty).Mul(types.NewMeasure(100)))
}
