package dto

import (
	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/financial_payment"
)

// CreateFinancialPaymentRequest records a payment made or received.
type CreateFinancialPaymentRequest struct {
	Date              string        `json:"date" binding:"required,isodate"`
	PartyName         string        `json:"partyName" binding:"max=200"`
	BrokerName        string        `json:"brokerName" binding:"max=200"`
	PaymentMode       string        `json:"paymentMode" binding:"required,oneof=cash bank upi cheque CASH BANK UPI CHEQUE"`
	Amount            types.Measure `json:"amount" binding:"omitempty,measure"`
	TransactionNumber string        `json:"transactionNumber" binding:"max=100"`
	Purpose           string        `json:"purpose" binding:"max=200"`
	Remarks           string        `json:"remarks" binding:"max=1000"`
}

func (r CreateFinancialPaymentRequest) ToEntity() (*financial_payment.FinancialPayment, error) {
	date, err := parseDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	p := &financial_payment.FinancialPayment{
		PartyName:         r.PartyName,
		BrokerName:        r.BrokerName,
		PaymentMode:       financial_payment.PaymentMode(r.PaymentMode),
		Amount:            r.Amount,
		TransactionNumber: r.TransactionNumber,
		Purpose:           r.Purpose,
		Remarks:           r.Remarks,
	}
	p.Date = date
	return p, nil
}

// UpdateFinancialPaymentRequest is a partial update; nil fields are left unchanged.
type UpdateFinancialPaymentRequest struct {
	Date              *string        `json:"date" binding:"omitempty,isodate"`
	PartyName         *string        `json:"partyName" binding:"omitempty,max=200"`
	BrokerName        *string        `json:"brokerName" binding:"omitempty,max=200"`
	PaymentMode       *string        `json:"paymentMode" binding:"omitempty,oneof=cash bank upi cheque CASH BANK UPI CHEQUE"`
	Amount            *types.Measure `json:"amount" binding:"omitempty,measure"`
	TransactionNumber *string        `json:"transactionNumber" binding:"omitempty,max=100"`
	Purpose           *string        `json:"purpose" binding:"omitempty,max=200"`
	Remarks           *string        `json:"remarks" binding:"omitempty,max=1000"`
}

func (r UpdateFinancialPaymentRequest) ApplyTo(p *financial_payment.FinancialPayment) error {
	if err := applyDate(&p.Date, r.Date); err != nil {
		return err
	}
	applyString(&p.PartyName, r.PartyName)
	applyString(&p.BrokerName, r.BrokerName)
	if r.PaymentMode != nil {
		p.PaymentMode = financial_payment.PaymentMode(*r.PaymentMode)
	}
	applyMeasure(&p.Amount, r.Amount)
	applyString(&p.TransactionNumber, r.TransactionNumber)
	applyString(&p.Purpose, r.Purpose)
	applyString(&p.Remarks, r.Remarks)
	return nil
}
