package dto

import (
	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/daily_production"
)

// CreateDailyProductionRequest records a production entry.
type CreateDailyProductionRequest struct {
	Date        string        `json:"date" binding:"required,isodate"`
	ProductType string        `json:"productType" binding:"required,notblank,max=200"`
	Quantity    types.Measure `json:"quantity" binding:"omitempty,measure"`
	Bags        int           `json:"bags" binding:"count"`
	Warehouse   string        `json:"warehouse" binding:"max=100"`
	Remarks     string        `json:"remarks" binding:"max=1000"`
}

func (r CreateDailyProductionRequest) ToEntity() (*daily_production.DailyProduction, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	e := &daily_production.DailyProduction{
		ProductType: r.ProductType,
		Quantity:    r.Quantity,
		Bags:        r.Bags,
		Warehouse:   r.Warehouse,
		Remarks:     r.Remarks,
	}
	e.Date = date
	return e, nil
}

// UpdateDailyProductionRequest is a partial update; nil fields are left unchanged.
type UpdateDailyProductionRequest struct {
	Date        *string        `json:"date" binding:"omitempty,isodate"`
	ProductType *string        `json:"productType" binding:"omitempty,notblank,max=200"`
	Quantity    *types.Measure `json:"quantity" binding:"omitempty,measure"`
	Bags        *int           `json:"bags" binding:"omitempty,count"`
	Warehouse   *string        `json:"warehouse" binding:"omitempty,max=100"`
	Remarks     *string        `json:"remarks" binding:"omitempty,max=1000"`
}

func (r UpdateDailyProductionRequest) ApplyTo(d *daily_production.DailyProduction) error {
	if err := applyDate(&d.Date, r.Date); err != nil {
		return err
	}
	applyString(&d.ProductType, r.ProductType)
	applyMeasure(&d.Quantity, r.Quantity)
	applyInt(&d.Bags, r.Bags)
	applyString(&d.Warehouse, r.Warehouse)
	applyString(&d.Remarks, r.Remarks)
	return nil
}
