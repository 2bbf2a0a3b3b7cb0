package domain

import (
	"fmt"
	"sort"
	"strings"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

// List limits shared by every module.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxExportRows caps spreadsheet exports.
	MaxExportRows = 10_000

	// MaxBulkDelete caps the number of ids accepted by bulk delete.
	MaxBulkDelete = 500
)

// SortOrder values accepted by list queries.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// FilterField maps a query parameter to a column matched case-insensitively.
type FilterField struct {
	Param  string
	Column string
}

// SummaryField is one aggregated value of a module summary.
// When Times is set the summed expression is Column * Times.
type SummaryField struct {
	Key    string
	Column string
	Times  string
}

// StockRule describes the ledger row a module derives from each entry.
// Quantity is the SQL expression over the module table used by reconciliation;
// it must agree with the module's StockQuantity func.
type StockRule struct {
	Commodity entity.Commodity
	Type      entity.TransactionType
	Quantity  string
}

// Descriptor is the static description of an entry module: storage,
// list contract (search, filters, sort enum) and summary.
type Descriptor struct {
	// Entity is the model name, also used as the stock ledger refModel.
	Entity string
	// DisplayName is used in messages, e.g. "Rice purchase not found".
	DisplayName string
	// Resource is the URL segment under /mills/:millId.
	Resource string
	Table    string

	SearchColumns []string
	Filters       []FilterField

	// SortFields maps accepted sortBy values to columns.
	SortFields  map[string]string
	DefaultSort string

	Summary []SummaryField

	// Stock is nil for modules without a ledger side effect.
	Stock *StockRule

	// NumberPrefix enables deal number auto-assignment when non-empty.
	NumberPrefix string
}

// SortKeys returns the accepted sortBy values in stable order.
func (d *Descriptor) SortKeys() []string {
	keys := make([]string, 0, len(d.SortFields))
	for k := range d.SortFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilterParams returns the module-specific query parameter names.
func (d *Descriptor) FilterParams() []string {
	params := make([]string, len(d.Filters))
	for i, f := range d.Filters {
		params[i] = f.Param
	}
	return params
}

// SummaryKeys returns summary keys including totalEntries.
func (d *Descriptor) SummaryKeys() []string {
	keys := make([]string, 0, len(d.Summary)+1)
	for _, f := range d.Summary {
		keys = append(keys, f.Key)
	}
	return append(keys, TotalEntriesKey)
}

// Validate checks the descriptor is internally consistent. Called at wiring time.
func (d *Descriptor) Validate() error {
	if d.Entity == "" || d.Resource == "" || d.Table == "" {
		return fmt.Errorf("descriptor: entity, resource and table are required")
	}
	if _, ok := d.SortFields[d.DefaultSort]; !ok {
		return fmt.Errorf("descriptor %s: default sort %q is not a sort field", d.Entity, d.DefaultSort)
	}
	seen := map[string]bool{}
	for _, f := range d.Filters {
		if reservedParams[f.Param] || seen[f.Param] {
			return fmt.Errorf("descriptor %s: filter param %q is reserved or duplicated", d.Entity, f.Param)
		}
		seen[f.Param] = true
	}
	return nil
}

var reservedParams = map[string]bool{
	"page": true, "limit": true, "search": true, "startDate": true,
	"endDate": true, "sortBy": true, "sortOrder": true,
}

// ListQuery is the raw list input as received from a client.
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	Filters   map[string]string // param -> value
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
}

// BuildFilter validates q against the module contract and produces a ListFilter.
func (d *Descriptor) BuildFilter(millID id.ID, q ListQuery) (ListFilter, error) {
	return d.buildFilter(millID, q, MaxLimit)
}

// BuildExportFilter is BuildFilter with the export row cap instead of the page limit.
func (d *Descriptor) BuildExportFilter(millID id.ID, q ListQuery) (ListFilter, error) {
	q.Page = 1
	q.Limit = MaxExportRows
	return d.buildFilter(millID, q, MaxExportRows)
}

func (d *Descriptor) buildFilter(millID id.ID, q ListQuery, maxLimit int) (ListFilter, error) {
	f := ListFilter{
		MillID: millID,
		Page:   q.Page,
		Limit:  q.Limit,
		Search: strings.TrimSpace(q.Search),
	}

	if f.Page == 0 {
		f.Page = DefaultPage
	}
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Page < 1 {
		return f, apperror.NewFieldValidation("page", "page must be at least 1")
	}
	if f.Limit < 1 || f.Limit > maxLimit {
		return f, apperror.NewFieldValidation("limit", fmt.Sprintf("limit must be between 1 and %d", maxLimit))
	}

	rng, err := ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return f, err
	}
	f.DateRange = rng

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = d.DefaultSort
	}
	column, ok := d.SortFields[sortBy]
	if !ok {
		return f, apperror.NewFieldValidation("sortBy", "invalid sortBy").
			WithDetail("allowed", d.SortKeys())
	}
	f.SortColumn = column

	switch strings.ToLower(q.SortOrder) {
	case "", SortDesc:
		f.SortDesc = true
	case SortAsc:
		f.SortDesc = false
	default:
		return f, apperror.NewFieldValidation("sortOrder", "sortOrder must be asc or desc")
	}

	for _, ff := range d.Filters {
		v := strings.TrimSpace(q.Filters[ff.Param])
		if v == "" {
			continue
		}
		if f.Fields == nil {
			f.Fields = make(map[string]string)
		}
		f.Fields[ff.Column] = v
	}
	f.SearchColumns = d.SearchColumns

	return f, nil
}

// ParseDateRange parses optional YYYY-MM-DD bounds.
func ParseDateRange(start, end string) (types.DateRange, error) {
	var rng types.DateRange
	s, err := types.ParseOptionalDate(start)
	if err != nil {
		return rng, apperror.NewFieldValidation("startDate", err.Error())
	}
	e, err := types.ParseOptionalDate(end)
	if err != nil {
		return rng, apperror.NewFieldValidation("endDate", err.Error())
	}
	rng = types.DateRange{Start: s, End: e}
	if err := rng.Validate(); err != nil {
		return rng, apperror.NewFieldValidation("startDate", err.Error())
	}
	return rng, nil
}

// TotalEntriesKey is the count key present in every summary.
const TotalEntriesKey = "totalEntries"

// Summary holds aggregated values keyed by summary key.
type Summary map[string]types.Measure

// ZeroSummary returns the default summary with every key set to zero.
func (d *Descriptor) ZeroSummary() Summary {
	s := make(Summary, len(d.Summary)+1)
	for _, k := range d.SummaryKeys() {
		s[k] = types.Zero()
	}
	return s
}

// Normalize zero-fills missing keys and rounds values to two decimals.
func (d *Descriptor) Normalize(raw Summary) Summary {
	out := d.ZeroSummary()
	for k := range out {
		if v, ok := raw[k]; ok {
			out[k] = types.Round2(v)
		}
	}
	return out
}
