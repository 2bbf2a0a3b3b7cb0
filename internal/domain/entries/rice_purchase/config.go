package rice_purchase

import (
	"ricemill/internal/core/entity"
	"ricemill/internal/domain"
)

// NumberPrefix is used for auto-assigned deal numbers, e.g. RP-2024-00001.
const NumberPrefix = "RP"

// Descriptor describes storage, listing and summary of rice purchases.
var Descriptor = &domain.Descriptor{
	Entity:        "RicePurchase",
	DisplayName:   "Rice purchase",
	Resource:      "rice-purchase",
	Table:         "rice_purchases",
	SearchColumns: []string{"party_name", "broker_name", "deal_number", "rice_type"},
	Filters: []domain.FilterField{
		{Param: "partyName", Column: "party_name"},
		{Param: "brokerName", Column: "broker_name"},
		{Param: "dealNumber", Column: "deal_number"},
		{Param: "riceType", Column: "rice_type"},
		{Param: "lotType", Column: "lot_type"},
	},
	SortFields: map[string]string{
		"date":       "date",
		"partyName":  "party_name",
		"brokerName": "broker_name",
		"dealNumber": "deal_number",
		"riceQty":    "rice_qty",
		"rate":       "rate",
		"createdAt":  "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalRiceQty", Column: "rice_qty"},
		{Key: "totalAmount", Column: "rice_qty", Times: "rate"},
		{Key: "totalBrokerage", Column: "brokerage"},
	},
	Stock:        &domain.StockRule{Commodity: entity.CommodityRice, Type: entity.Credit, Quantity: "rice_qty"},
	NumberPrefix: NumberPrefix,
}

// NewService wires the rice purchase service.
func NewService(repo domain.EntryRepository[*RicePurchase], deps domain.EntryDeps) *domain.EntryService[*RicePurchase] {
	return domain.NewModuleService(Descriptor, repo, StockQuantity, deps)
}
