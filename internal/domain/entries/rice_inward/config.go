package rice_inward

import (
	"ricemill/internal/domain"
)

// Descriptor describes storage, listing and summary of rice inward entries.
var Descriptor = &domain.Descriptor{
	Entity:        "RiceInward",
	DisplayName:   "Rice inward",
	Resource:      "rice-inward",
	Table:         "rice_inwards",
	SearchColumns: []string{"party_name", "broker_name", "truck_number", "rst_number", "deal_number", "lot_number"},
	Filters: []domain.FilterField{
		{Param: "partyName", Column: "party_name"},
		{Param: "brokerName", Column: "broker_name"},
		{Param: "truckNumber", Column: "truck_number"},
		{Param: "rstNumber", Column: "rst_number"},
		{Param: "dealNumber", Column: "deal_number"},
		{Param: "lotNumber", Column: "lot_number"},
		{Param: "riceType", Column: "rice_type"},
	},
	SortFields: map[string]string{
		"date":        "date",
		"partyName":   "party_name",
		"truckNumber": "truck_number",
		"rstNumber":   "rst_number",
		"grossWeight": "gross_weight",
		"netWeight":   "net_weight",
		"createdAt":   "created_at",
	},
	DefaultSort: "date",
	Summary: []domain.SummaryField{
		{Key: "totalGrossWeight", Column: "gross_weight"},
		{Key: "totalTareWeight", Column: "tare_weight"},
		{Key: "totalNetWeight", Column: "net_weight"},
		{Key: "totalGunnyNew", Column: "gunny_new"},
		{Key: "totalGunnyOld", Column: "gunny_old"},
		{Key: "totalGunnyPlastic", Column: "gunny_plastic"},
	},
}

// NewService wires the rice inward service. Rice inward has no stock effect.
func NewService(repo domain.EntryRepository[*RiceInward], deps domain.EntryDeps) *domain.EntryService[*RiceInward] {
	return domain.NewModuleService(Descriptor, repo, nil, deps)
}
