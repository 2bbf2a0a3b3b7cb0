package daily_milling

import (
	"ricemill/internal/domain"
)

var Descriptor = &domain.Descriptor{
	Entity:        "DailyMilling",
	DisplayName:   "Daily milling",
	Resource:      "daily-milling",
	Table:         "daily_millings",
	SearchColumns: []string{"paddy_type", "remarks"},
	Filters: []domain.FilterField{
		{Param: "paddyType", Column: "paddy_type"},
	},
	SortFields: map[string]string{
		"date":         "date",
		"paddyType":    "paddy_type",
		"paddyQty":     "paddy_qty",
		"riceQty":      "rice_qty",
		"millingHours": "milling_hours",
		"createdAt":    "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalPaddyQty", Column: "paddy_qty"},
		{Key: "totalRiceQty", Column: "rice_qty"},
		{Key: "totalBrokenQty", Column: "broken_qty"},
		{Key: "totalBranQty", Column: "bran_qty"},
		{Key: "totalHuskQty", Column: "husk_qty"},
		{Key: "totalMillingHours", Column: "milling_hours"},
	},
}

func NewService(repo domain.EntryRepository[*DailyMilling], deps domain.EntryDeps) *domain.EntryService[*DailyMilling] {
	return domain.NewModuleService(Descriptor, repo, nil, deps)
}
