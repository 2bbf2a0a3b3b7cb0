package other_purchase

import (
	"ricemill/internal/core/entity"
	"ricemill/internal/domain"
)

const NumberPrefix = "OP"

var Descriptor = &domain.Descriptor{
	Entity:        "OtherPurchase",
	DisplayName:   "Other purchase",
	Resource:      "other-purchase",
	Table:         "other_purchases",
	SearchColumns: []string{"item_name", "party_name", "broker_name", "deal_number"},
	Filters: []domain.FilterField{
		{Param: "itemName", Column: "item_name"},
		{Param: "partyName", Column: "party_name"},
		{Param: "brokerName", Column: "broker_name"},
		{Param: "dealNumber", Column: "deal_number"},
	},
	SortFields: map[string]string{
		"date":      "date",
		"itemName":  "item_name",
		"partyName": "party_name",
		"quantity":  "quantity",
		"amount":    "amount",
		"createdAt": "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalQuantity", Column: "quantity"},
		{Key: "totalAmount", Column: "amount"},
	},
	Stock:        &domain.StockRule{Commodity: entity.CommodityOther, Type: entity.Credit, Quantity: "quantity"},
	NumberPrefix: NumberPrefix,
}

func NewService(repo domain.EntryRepository[*OtherPurchase], deps domain.EntryDeps) *domain.EntryService[*OtherPurchase] {
	return domain.NewModuleService(Descriptor, repo, StockQuantity, deps)
}
