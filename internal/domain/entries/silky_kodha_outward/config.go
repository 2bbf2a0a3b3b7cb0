package silky_kodha_outward

import (
	"ricemill/internal/core/entity"
	"ricemill/internal/domain"
)

var Descriptor = &domain.Descriptor{
	Entity:        "SilkyKodhaOutward",
	DisplayName:   "Silky kodha outward",
	Resource:      "silky-kodha-outward",
	Table:         "silky_kodha_outwards",
	SearchColumns: []string{"party_name", "broker_name", "deal_number", "truck_number", "rst_number"},
	Filters: []domain.FilterField{
		{Param: "partyName", Column: "party_name"},
		{Param: "brokerName", Column: "broker_name"},
		{Param: "dealNumber", Column: "deal_number"},
		{Param: "truckNumber", Column: "truck_number"},
		{Param: "rstNumber", Column: "rst_number"},
	},
	SortFields: map[string]string{
		"date":          "date",
		"partyName":     "party_name",
		"dealNumber":    "deal_number",
		"kodhaQty":      "kodha_qty",
		"rate":          "rate",
		"oilPercentage": "oil_percentage",
		"createdAt":     "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalKodhaQty", Column: "kodha_qty"},
		{Key: "totalNetWeight", Column: "net_weight"},
		{Key: "totalAmount", Column: "kodha_qty", Times: "rate"},
	},
	Stock: &domain.StockRule{Commodity: entity.CommoditySilkyKodha, Type: entity.Debit, Quantity: "kodha_qty"},
}

func NewService(repo domain.EntryRepository[*SilkyKodhaOutward], deps domain.EntryDeps) *domain.EntryService[*SilkyKodhaOutward] {
	return domain.NewModuleService(Descriptor, repo, StockQuantity, deps)
}
