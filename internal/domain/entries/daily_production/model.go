// Package daily_production provides the DailyProduction entry: finished
// product bagged into a warehouse on a day.
package daily_production

import (
	"context"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

type DailyProduction struct {
	entity.BaseEntry

	ProductType string        `db:"product_type" json:"productType"`
	Quantity    types.Measure `db:"quantity" json:"quantity"`
	Bags        int           `db:"bags" json:"bags"`
	Warehouse   string        `db:"warehouse" json:"warehouse"`
	Remarks     string        `db:"remarks" json:"remarks"`
}

// Validate implements entity.Validatable.
func (p *DailyProduction) Validate(_ context.Context) error {
	return domain.FirstError(
		domain.ValidateBase(&p.BaseEntry),
		domain.Required("productType", p.ProductType),
		domain.ValidMeasures(domain.Measure{Field: "quantity", Value: p.Quantity}),
		domain.ValidCounts(domain.Count{Field: "bags", Value: p.Bags}),
	)
}
