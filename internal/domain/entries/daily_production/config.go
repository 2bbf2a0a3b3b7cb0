package daily_production

import (
	"ricemill/internal/domain"
)

var Descriptor = &domain.Descriptor{
	Entity:        "DailyProduction",
	DisplayName:   "Daily production",
	Resource:      "daily-production",
	Table:         "daily_productions",
	SearchColumns: []string{"product_type", "warehouse"},
	Filters: []domain.FilterField{
		{Param: "productType", Column: "product_type"},
		{Param: "warehouse", Column: "warehouse"},
	},
	SortFields: map[string]string{
		"date":        "date",
		"productType": "product_type",
		"quantity":    "quantity",
		"bags":        "bags",
		"createdAt":   "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalQuantity", Column: "quantity"},
		{Key: "totalBags", Column: "bags"},
	},
}

func NewService(repo domain.EntryRepository[*DailyProduction], deps domain.EntryDeps) *domain.EntryService[*DailyProduction] {
	return domain.NewModuleService(Descriptor, repo, nil, deps)
}
