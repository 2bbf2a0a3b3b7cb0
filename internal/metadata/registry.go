// Package metadata describes entry modules for clients: fields, filters,
// sort keys, summary keys and stock effect.
package metadata

import (
	"sort"

	"ricemill/internal/domain"
)

// FieldType defines the data type of a field.
type FieldType string

const (
	TypeString    FieldType = "string"
	TypeInteger   FieldType = "integer"
	TypeNumber    FieldType = "number" // decimal measure
	TypeDate      FieldType = "date"
	TypeDateTime  FieldType = "datetime"
	TypeReference FieldType = "reference"
	TypeBoolean   FieldType = "boolean"
)

// FieldDef describes a field.
type FieldDef struct {
	Name     string    `json:"name"`
	Label    string    `json:"label,omitempty"`
	Type     FieldType `json:"type"`
	ReadOnly bool      `json:"readOnly,omitempty"`
	Scale    int       `json:"scale,omitempty"`

	// Index is the reflect path of the field inside the entry struct.
	Index []int `json:"-"`
}

// StockDef describes the ledger row an entry produces.
type StockDef struct {
	Commodity string `json:"commodity"`
	Type      string `json:"type"`
}

// ModuleDef describes an entry module.
type ModuleDef struct {
	Name        string     `json:"name"`
	Label       string     `json:"label"`
	Resource    string     `json:"resource"`
	Fields      []FieldDef `json:"fields"`
	Filters     []string   `json:"filters"`
	SortFields  []string   `json:"sortFields"`
	DefaultSort string     `json:"defaultSort"`
	SummaryKeys []string   `json:"summaryKeys"`
	Stock       *StockDef  `json:"stock"`
}

// Describe builds a ModuleDef from the descriptor and a sample entry value.
func Describe(desc *domain.Descriptor, sample any) ModuleDef {
	def := ModuleDef{
		Name:        desc.Entity,
		Label:       desc.DisplayName,
		Resource:    desc.Resource,
		Fields:      Inspect(sample),
		Filters:     desc.FilterParams(),
		SortFields:  desc.SortKeys(),
		DefaultSort: desc.DefaultSort,
		SummaryKeys: desc.SummaryKeys(),
	}
	if desc.Stock != nil {
		def.Stock = &StockDef{
			Commodity: string(desc.Stock.Commodity),
			Type:      string(desc.Stock.Type),
		}
	}
	return def
}

// Registry stores module definitions.
type Registry struct {
	modules map[string]ModuleDef
}

func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]ModuleDef),
	}
}

func (r *Registry) Register(def ModuleDef) {
	r.modules[def.Resource] = def
}

// Get returns the module served under resource.
func (r *Registry) Get(resource string) (ModuleDef, bool) {
	d, ok := r.modules[resource]
	return d, ok
}

// List returns modules ordered by resource path.
func (r *Registry) List() []ModuleDef {
	list := make([]ModuleDef, 0, len(r.modules))
	for _, def := range r.modules {
		list = append(list, def)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Resource < list[j].Resource })
	return list
}
