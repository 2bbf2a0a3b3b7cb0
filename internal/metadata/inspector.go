package metadata

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

var (
	idType      = reflect.TypeOf(id.ID{})
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// Inspect returns the scalar fields of an entry struct in declaration order.
// Embedded structs are flattened; nested structs (joined relations) are skipped.
func Inspect(entity any) []FieldDef {
	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	fields := make([]FieldDef, 0, t.NumField())
	inspectStruct(t, nil, &fields)
	return fields
}

func inspectStruct(t reflect.Type, parent []int, out *[]FieldDef) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}

		index := append(append([]int{}, parent...), i)

		if field.Anonymous {
			inspectStruct(field.Type, index, out)
			continue
		}

		name := jsonName(field)
		if name == "-" {
			continue
		}

		fDef := FieldDef{
			Name:     name,
			Label:    guessLabel(field.Name),
			ReadOnly: isReadOnly(field),
			Index:    index,
		}
		if !mapFieldType(&fDef, field) {
			continue
		}
		*out = append(*out, fDef)
	}
}

func mapFieldType(def *FieldDef, field reflect.StructField) bool {
	t := field.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch {
	case t == idType:
		def.Type = TypeReference
		return true
	case t == timeType:
		def.Type = TypeDateTime
		if field.Name == "Date" {
			def.Type = TypeDate
		}
		return true
	case t == decimalType:
		def.Type = TypeNumber
		def.Scale = 3
		if strings.Contains(field.Name, "Rate") || strings.Contains(field.Name, "Amount") {
			def.Scale = types.SummaryScale
		}
		return true
	}

	switch t.Kind() {
	case reflect.String:
		def.Type = TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		def.Type = TypeInteger
	case reflect.Bool:
		def.Type = TypeBoolean
	default:
		return false
	}
	return true
}

func jsonName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			return parts[0]
		}
	}
	runes := []rune(field.Name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func isReadOnly(field reflect.StructField) bool {
	switch field.Name {
	case "ID", "MillID", "CreatedBy", "UpdatedBy", "CreatedAt", "UpdatedAt":
		return true
	}
	return false
}

// guessLabel splits a Go field name into words: "RSTNumber" -> "RST Number".
func guessLabel(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Value reads the field described by def from an entry.
func Value(entry any, def FieldDef) any {
	v := reflect.ValueOf(entry)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	f := v.FieldByIndex(def.Index)
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return nil
		}
		f = f.Elem()
	}
	return f.Interface()
}
