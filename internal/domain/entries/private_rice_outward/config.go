package private_rice_outward

import (
	"ricemill/internal/core/entity"
	"ricemill/internal/domain"
)

var Descriptor = &domain.Descriptor{
	Entity:        "PrivateRiceOutward",
	DisplayName:   "Private rice outward",
	Resource:      "private-rice-outward",
	Table:         "private_rice_outwards",
	SearchColumns: []string{"party_name", "broker_name", "deal_number", "lot_number", "truck_number", "rst_number"},
	Filters: []domain.FilterField{
		{Param: "partyName", Column: "party_name"},
		{Param: "brokerName", Column: "broker_name"},
		{Param: "dealNumber", Column: "deal_number"},
		{Param: "lotNumber", Column: "lot_number"},
		{Param: "riceType", Column: "rice_type"},
		{Param: "truckNumber", Column: "truck_number"},
	},
	SortFields: map[string]string{
		"date":       "date",
		"partyName":  "party_name",
		"dealNumber": "deal_number",
		"lotNumber":  "lot_number",
		"riceQty":    "rice_qty",
		"netWeight":  "net_weight",
		"createdAt":  "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalRiceQty", Column: "rice_qty"},
		{Key: "totalNetWeight", Column: "net_weight"},
		{Key: "totalGunnyNew", Column: "gunny_new"},
		{Key: "totalGunnyOld", Column: "gunny_old"},
		{Key: "totalGunnyPlastic", Column: "gunny_plastic"},
	},
	Stock: &domain.StockRule{Commodity: entity.CommodityRice, Type: entity.Debit, Quantity: "rice_qty"},
}

func NewService(repo domain.EntryRepository[*PrivateRiceOutward], deps domain.EntryDeps) *domain.EntryService[*PrivateRiceOutward] {
	return domain.NewModuleService(Descriptor, repo, StockQuantity, deps)
}
