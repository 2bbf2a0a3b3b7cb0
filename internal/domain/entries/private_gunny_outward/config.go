package private_gunny_outward

import (
	"ricemill/internal/core/entity"
	"ricemill/internal/domain"
)

var Descriptor = &domain.Descriptor{
	Entity:        "PrivateGunnyOutward",
	DisplayName:   "Private gunny outward",
	Resource:      "private-gunny-outward",
	Table:         "private_gunny_outwards",
	SearchColumns: []string{"party_name", "truck_number", "gunny_purchase_deal_number"},
	Filters: []domain.FilterField{
		{Param: "partyName", Column: "party_name"},
		{Param: "truckNumber", Column: "truck_number"},
		{Param: "gunnyPurchaseDealNumber", Column: "gunny_purchase_deal_number"},
	},
	SortFields: map[string]string{
		"date":            "date",
		"partyName":       "party_name",
		"newGunnyQty":     "new_gunny_qty",
		"oldGunnyQty":     "old_gunny_qty",
		"plasticGunnyQty": "plastic_gunny_qty",
		"createdAt":       "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalNewGunnyQty", Column: "new_gunny_qty"},
		{Key: "totalOldGunnyQty", Column: "old_gunny_qty"},
		{Key: "totalPlasticGunnyQty", Column: "plastic_gunny_qty"},
	},
	Stock: &domain.StockRule{Commodity: entity.CommodityGunny, Type: entity.Debit, Quantity: "new_gunny_qty + old_gunny_qty + plastic_gunny_qty"},
}

func NewService(repo domain.EntryRepository[*PrivateGunnyOutward], deps domain.EntryDeps) *domain.EntryService[*PrivateGunnyOutward] {
	return domain.NewModuleService(Descriptor, repo, StockQuantity, deps)
}
