// Package financial_payment provides the FinancialPayment entry: money paid
// to a party or broker.
package financial_payment

import (
	"context"
	"strings"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// PaymentMode is how a payment was made.
type PaymentMode string

const (
	ModeCash   PaymentMode = "cash"
	ModeBank   PaymentMode = "bank"
	ModeUPI    PaymentMode = "upi"
	ModeCheque PaymentMode = "cheque"
)

// PaymentModes lists accepted modes.
var PaymentModes = []PaymentMode{ModeCash, ModeBank, ModeUPI, ModeCheque}

// Valid reports whether m is a known mode.
func (m PaymentMode) Valid() bool {
	for _, known := range PaymentModes {
		if m == known {
			return true
		}
	}
	return false
}

type FinancialPayment struct {
	entity.BaseEntry

	PartyName         string        `db:"party_name" json:"partyName"`
	BrokerName        string        `db:"broker_name" json:"brokerName"`
	PaymentMode       PaymentMode   `db:"payment_mode" json:"paymentMode"`
	Amount            types.Measure `db:"amount" json:"amount"`
	TransactionNumber string        `db:"transaction_number" json:"transactionNumber"`
	Purpose           string        `db:"purpose" json:"purpose"`
	Remarks           string        `db:"remarks" json:"remarks"`
}

// Normalize lower-cases the payment mode.
func (p *FinancialPayment) Normalize() {
	p.PaymentMode = PaymentMode(strings.ToLower(strings.TrimSpace(string(p.PaymentMode))))
}

// Validate implements entity.Validatable.
func (p *FinancialPayment) Validate(_ context.Context) error {
	if err := domain.ValidateBase(&p.BaseEntry); err != nil {
		return err
	}
	if !p.PaymentMode.Valid() {
		return apperror.NewFieldValidation("paymentMode", "paymentMode must be one of cash, bank, upi, cheque")
	}
	if !p.Amount.IsPositive() {
		return apperror.NewFieldValidation("amount", "amount must be greater than 0")
	}
	return domain.ValidMeasures(domain.Measure{Field: "amount", Value: p.Amount})
}
