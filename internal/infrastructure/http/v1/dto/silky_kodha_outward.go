package dto

import (
	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/silky_kodha_outward"
)

// CreateSilkyKodhaOutwardRequest records a silky kodha dispatch.
type CreateSilkyKodhaOutwardRequest struct {
	Date          string        `json:"date" binding:"required,isodate"`
	DealNumber    string        `json:"dealNumber" binding:"max=50"`
	PartyName     string        `json:"partyName" binding:"max=200"`
	BrokerName    string        `json:"brokerName" binding:"max=200"`
	TruckNumber   string        `json:"truckNumber" binding:"max=50"`
	RSTNumber     string        `json:"rstNumber" binding:"max=50"`
	KodhaQty      types.Measure `json:"kodhaQty" binding:"omitempty,measure"`
	Rate          types.Measure `json:"rate" binding:"omitempty,measure"`
	OilPercentage types.Measure `json:"oilPercentage" binding:"omitempty,measure,lte=100"`
	NetWeight     types.Measure `json:"netWeight" binding:"omitempty,measure"`
	Remarks       string        `json:"remarks" binding:"max=1000"`
}

func (r CreateSilkyKodhaOutwardRequest) ToEntity() (*silky_kodha_outward.SilkyKodhaOutward, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	e := &silky_kodha_outward.SilkyKodhaOutward{
		DealNumber:    r.DealNumber,
		PartyName:     r.PartyName,
		BrokerName:    r.BrokerName,
		TruckNumber:   r.TruckNumber,
		RSTNumber:     r.RSTNumber,
		KodhaQty:      r.KodhaQty,
		Rate:          r.Rate,
		OilPercentage: r.OilPercentage,
		NetWeight:     r.NetWeight,
		Remarks:       r.Remarks,
	}
	e.Date = date
	return e, nil
}

// UpdateSilkyKodhaOutwardRequest is a partial update; nil fields are left unchanged.
type UpdateSilkyKodhaOutwardRequest struct {
	Date          *string        `json:"date" binding:"omitempty,isodate"`
	DealNumber    *string        `json:"dealNumber" binding:"omitempty,max=50"`
	PartyName     *string        `json:"partyName" binding:"omitempty,max=200"`
	BrokerName    *string        `json:"brokerName" binding:"omitempty,max=200"`
	TruckNumber   *string        `json:"truckNumber" binding:"omitempty,max=50"`
	RSTNumber     *string        `json:"rstNumber" binding:"omitempty,max=50"`
	KodhaQty      *types.Measure `json:"kodhaQty" binding:"omitempty,measure"`
	Rate          *types.Measure `json:"rate" binding:"omitempty,measure"`
	OilPercentage *types.Measure `json:"oilPercentage" binding:"omitempty,measure,lte=100"`
	NetWeight     *types.Measure `json:"netWeight" binding:"omitempty,measure"`
	Remarks       *string        `json:"remarks" binding:"omitempty,max=1000"`
}

func (r UpdateSilkyKodhaOutwardRequest) ApplyTo(s *silky_kodha_outward.SilkyKodhaOutward) error {
	if err := applyDate(&s.Date, r.Date); err != nil {
		return err
	}
	applyString(&s.DealNumber, r.DealNumber)
	applyString(&s.PartyName, r.PartyName)
	applyString(&s.BrokerName, r.BrokerName)
	applyString(&s.TruckNumber, r.TruckNumber)
	applyString(&s.RSTNumber, r.RSTNumber)
	applyMeasure(&s.KodhaQty, r.KodhaQty)
	applyMeasure(&s.Rate, r.Rate)
	applyMeasure(&s.OilPercentage, r.OilPercentage)
	applyMeasure(&s.NetWeight, r.NetWeight)
	applyString(&s.Remarks, r.Remarks)
	return nil
}
