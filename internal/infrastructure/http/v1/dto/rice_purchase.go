package dto

import (
	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/rice_purchase"
)

// CreateRicePurchaseRequest records a rice purchase deal.
type CreateRicePurchaseRequest struct {
	Date       string        `json:"date" binding:"required,isodate"`
	PartyName  string        `json:"partyName" binding:"max=200"`
	BrokerName string        `json:"brokerName" binding:"max=200"`
	DealNumber string        `json:"dealNumber" binding:"max=50"`
	RiceType   string        `json:"riceType" binding:"max=100"`
	LotType    string        `json:"lotType" binding:"max=50"`
	RiceQty    types.Measure `json:"riceQty" binding:"omitempty,measure"`
	Rate       types.Measure `json:"rate" binding:"omitempty,measure"`
	Brokerage  types.Measure `json:"brokerage" binding:"omitempty,measure"`
	Remarks    string        `json:"remarks" binding:"max=1000"`
}

func (r CreateRicePurchaseRequest) ToEntity() (*rice_purchase.RicePurchase, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	e := &rice_purchase.RicePurchase{
		PartyName:  r.PartyName,
		BrokerName: r.BrokerName,
		DealNumber: r.DealNumber,
		RiceType:   r.RiceType,
		LotType:    r.LotType,
		RiceQty:    r.RiceQty,
		Rate:       r.Rate,
		Brokerage:  r.Brokerage,
		Remarks:    r.Remarks,
	}
	e.Date = date
	return e, nil
}

// UpdateRicePurchaseRequest is a partial update; nil fields are left unchanged.
type UpdateRicePurchaseRequest struct {
	Date       *string        `json:"date" binding:"omitempty,isodate"`
	PartyName  *string        `json:"partyName" binding:"omitempty,max=200"`
	BrokerName *string        `json:"brokerName" binding:"omitempty,max=200"`
	DealNumber *string        `json:"dealNumber" binding:"omitempty,max=50"`
	RiceType   *string        `json:"riceType" binding:"omitempty,max=100"`
	LotType    *string        `json:"lotType" binding:"omitempty,max=50"`
	RiceQty    *types.Measure `json:"riceQty" binding:"omitempty,measure"`
	Rate       *types.Measure `json:"rate" binding:"omitempty,measure"`
	Brokerage  *types.Measure `json:"brokerage" binding:"omitempty,measure"`
	Remarks    *string        `json:"remarks" binding:"omitempty,max=1000"`
}

func (r UpdateRicePurchaseRequest) ApplyTo(p *rice_purchase.RicePurchase) error {
	if err := applyDate(&p.Date, r.Date); err != nil {
		return err
	}
	applyString(&p.PartyName, r.PartyName)
	applyString(&p.BrokerName, r.BrokerName)
	applyString(&p.DealNumber, r.DealNumber)
	applyString(&p.RiceType, r.RiceType)
	applyString(&p.LotType, r.LotType)
	applyMeasure(&p.RiceQty, r.RiceQty)
	applyMeasure(&p.Rate, r.Rate)
	applyMeasure(&p.Brokerage, r.Brokerage)
	applyString(&p.Remarks, r.Remarks)
	return nil
}
