package dto

import (
	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/daily_milling"
)

// CreateDailyMillingRequest records one day of milling output.
type CreateDailyMillingRequest struct {
	Date         string        `json:"date" binding:"required,isodate"`
	PaddyType    string        `json:"paddyType" binding:"max=100"`
	PaddyQty     types.Measure `json:"paddyQty" binding:"omitempty,measure"`
	RiceQty      types.Measure `json:"riceQty" binding:"omitempty,measure"`
	BrokenQty    types.Measure `json:"brokenQty" binding:"omitempty,measure"`
	BranQty      types.Measure `json:"branQty" binding:"omitempty,measure"`
	HuskQty      types.Measure `json:"huskQty" binding:"omitempty,measure"`
	MillingHours types.Measure `json:"millingHours" binding:"omitempty,measure,lte=24"`
	Remarks      string        `json:"remarks" binding:"max=1000"`
}

func (r CreateDailyMillingRequest) ToEntity() (*daily_milling.DailyMilling, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	e := &daily_milling.DailyMilling{
		PaddyType:    r.PaddyType,
		PaddyQty:     r.PaddyQty,
		RiceQty:      r.RiceQty,
		BrokenQty:    r.BrokenQty,
		BranQty:      r.BranQty,
		HuskQty:      r.HuskQty,
		MillingHours: r.MillingHours,
		Remarks:      r.Remarks,
	}
	e.Date = date
	return e, nil
}

// UpdateDailyMillingRequest is a partial update; nil fields are left unchanged.
type UpdateDailyMillingRequest struct {
	Date         *string        `json:"date" binding:"omitempty,isodate"`
	PaddyType    *string        `json:"paddyType" binding:"omitempty,max=100"`
	PaddyQty     *types.Measure `json:"paddyQty" binding:"omitempty,measure"`
	RiceQty      *types.Measure `json:"riceQty" binding:"omitempty,measure"`
	BrokenQty    *types.Measure `json:"brokenQty" binding:"omitempty,measure"`
	BranQty      *types.Measure `json:"branQty" binding:"omitempty,measure"`
	HuskQty      *types.Measure `json:"huskQty" binding:"omitempty,measure"`
	MillingHours *types.Measure `json:"millingHours" binding:"omitempty,measure,lte=24"`
	Remarks      *string        `json:"remarks" binding:"omitempty,max=1000"`
}

func (r UpdateDailyMillingRequest) ApplyTo(d *daily_milling.DailyMilling) error {
	if err := applyDate(&d.Date, r.Date); err != nil {
		return err
	}
	applyString(&d.PaddyType, r.PaddyType)
	applyMeasure(&d.PaddyQty, r.PaddyQty)
	applyMeasure(&d.RiceQty, r.RiceQty)
	applyMeasure(&d.BrokenQty, r.BrokenQty)
	applyMeasure(&d.BranQty, r.BranQty)
	applyMeasure(&d.HuskQty, r.HuskQty)
	applyMeasure(&d.MillingHours, r.MillingHours)
	applyString(&d.Remarks, r.Remarks)
	return nil
}
