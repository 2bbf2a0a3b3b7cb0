package financial_payment

import (
	"ricemill/internal/domain"
)

var Descriptor = &domain.Descriptor{
	Entity:        "FinancialPayment",
	DisplayName:   "Financial payment",
	Resource:      "financial-payment",
	Table:         "financial_payments",
	SearchColumns: []string{"party_name", "broker_name", "transaction_number", "purpose"},
	Filters: []domain.FilterField{
		{Param: "partyName", Column: "party_name"},
		{Param: "brokerName", Column: "broker_name"},
		{Param: "paymentMode", Column: "payment_mode"},
		{Param: "transactionNumber", Column: "transaction_number"},
	},
	SortFields: map[string]string{
		"date":        "date",
		"partyName":   "party_name",
		"paymentMode": "payment_mode",
		"amount":      "amount",
		"createdAt":   "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalAmount", Column: "amount"},
	},
}

func NewService(repo domain.EntryRepository[*FinancialPayment], deps domain.EntryDeps) *domain.EntryService[*FinancialPayment] {
	return domain.NewModuleService(Descriptor, repo, nil, deps)
}
