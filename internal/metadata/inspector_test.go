package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/types"
	"ricemill/internal/domain/entries/rice_inward"
	"ricemill/internal/domain/entries/rice_purchase"
)

func findField(t *testing.T, fields []FieldDef, name string) FieldDef {
	t.Helper()
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not found", name)
	return FieldDef{}
}

func TestInspect_RicePurchase(t *testing.T) {
	fields := Inspect(&rice_purchase.RicePurchase{})

	assert.Equal(t, "id", fields[0].Name)
	assert.True(t, fields[0].ReadOnly)

	assert.Equal(t, TypeDate, findField(t, fields, "date").Type)
	assert.Equal(t, TypeDateTime, findField(t, fields, "createdAt").Type)
	assert.Equal(t, TypeString, findField(t, fields, "partyName").Type)

	qty := findField(t, fields, "riceQty")
	assert.Equal(t, TypeNumber, qty.Type)
	assert.Equal(t, 3, qty.Scale)
	assert.Equal(t, 2, findField(t, fields, "rate").Scale)

	for _, f := range fields {
		assert.NotEqual(t, "createdByUser", f.Name)
	}
}

func TestInspect_Integers(t *testing.T) {
	fields := Inspect(rice_inward.RiceInward{})
	assert.Equal(t, TypeInteger, findField(t, fields, "gunnyNew").Type)
	assert.Equal(t, "RST Number", findField(t, fields, "rstNumber").Label)
}

func TestValue(t *testing.T) {
	p := &rice_purchase.RicePurchase{PartyName: "Acme", RiceQty: types.NewMeasure(100)}
	p.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	fields := Inspect(p)

	assert.Equal(t, "Acme", Value(p, findField(t, fields, "partyName")))
	assert.Equal(t, p.Date, Value(p, findField(t, fields, "date")))
	assert.Nil(t, Value(p, findField(t, fields, "createdBy")))
}

func TestDescribe(t *testing.T) {
	def := Describe(rice_purchase.Descriptor, rice_purchase.RicePurchase{})
	assert.Equal(t, "rice-purchase", def.Resource)
	assert.Equal(t, "RicePurchase", def.Name)
	require.NotNil(t, def.Stock)
	assert.Equal(t, "CREDIT", def.Stock.Type)
	assert.Contains(t, def.SummaryKeys, "totalEntries")

	reg := NewRegistry()
	reg.Register(def)
	reg.Register(Describe(rice_inward.Descriptor, rice_inward.RiceInward{}))
	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "rice-inward", list[0].Resource)
	assert.Nil(t, list[0].Stock)
}
