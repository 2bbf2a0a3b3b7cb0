package dto

import (
	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/other_purchase"
)

// CreateOtherPurchaseRequest records a miscellaneous purchase.
type CreateOtherPurchaseRequest struct {
	Date       string        `json:"date" binding:"required,isodate"`
	ItemName   string        `json:"itemName" binding:"required,notblank,max=200"`
	PartyName  string        `json:"partyName" binding:"max=200"`
	BrokerName string        `json:"brokerName" binding:"max=200"`
	DealNumber string        `json:"dealNumber" binding:"max=50"`
	Quantity   types.Measure `json:"quantity" binding:"omitempty,measure"`
	Unit       string        `json:"unit" binding:"max=20"`
	Rate       types.Measure `json:"rate" binding:"omitempty,measure"`
	Amount     types.Measure `json:"amount" binding:"omitempty,measure"`
	Remarks    string        `json:"remarks" binding:"max=1000"`
}

func (r CreateOtherPurchaseRequest) ToEntity() (*other_purchase.OtherPurchase, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	e := &other_purchase.OtherPurchase{
		ItemName:   r.ItemName,
		PartyName:  r.PartyName,
		BrokerName: r.BrokerName,
		DealNumber: r.DealNumber,
		Quantity:   r.Quantity,
		Unit:       r.Unit,
		Rate:       r.Rate,
		Amount:     r.Amount,
		Remarks:    r.Remarks,
	}
	e.Date = date
	return e, nil
}

// UpdateOtherPurchaseRequest is a partial update; nil fields are left unchanged.
type UpdateOtherPurchaseRequest struct {
	Date       *string        `json:"date" binding:"omitempty,isodate"`
	ItemName   *string        `json:"itemName" binding:"omitempty,notblank,max=200"`
	PartyName  *string        `json:"partyName" binding:"omitempty,max=200"`
	BrokerName *string        `json:"brokerName" binding:"omitempty,max=200"`
	DealNumber *string        `json:"dealNumber" binding:"omitempty,max=50"`
	Quantity   *types.Measure `json:"quantity" binding:"omitempty,measure"`
	Unit       *string        `json:"unit" binding:"omitempty,max=20"`
	Rate       *types.Measure `json:"rate" binding:"omitempty,measure"`
	Amount     *types.Measure `json:"amount" binding:"omitempty,measure"`
	Remarks    *string        `json:"remarks" binding:"omitempty,max=1000"`
}

func (r UpdateOtherPurchaseRequest) ApplyTo(o *other_purchase.OtherPurchase) error {
	if err := applyDate(&o.Date, r.Date); err != nil {
		return err
	}
	applyString(&o.ItemName, r.ItemName)
	applyString(&o.PartyName, r.PartyName)
	applyString(&o.BrokerName, r.BrokerName)
	applyString(&o.DealNumber, r.DealNumber)
	applyMeasure(&o.Quantity, r.Quantity)
	applyString(&o.Unit, r.Unit)
	applyMeasure(&o.Rate, r.Rate)
	if (r.Quantity != nil || r.Rate != nil) && r.Amount == nil {
		o.Amount = types.Zero()
	}
	applyMeasure(&o.Amount, r.Amount)
	applyString(&o.Remarks, r.Remarks)
	return nil
}
