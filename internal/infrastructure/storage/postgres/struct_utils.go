package postgres

import (
	"reflect"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
)

// ExtractDBColumns returns the "db" tagged columns of T in declaration order.
// Embedded structs are flattened; untagged fields (joined relations) are skipped.
//
//	cols := ExtractDBColumns[*rice_purchase.RicePurchase]()
//	// ["id", "mill_id", "date", ..., "party_name", ...]
func ExtractDBColumns[T any]() []string {
	var zero T
	fields := typeFields(reflect.TypeOf(zero))
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.column
	}
	return cols
}

type dbField struct {
	column string
	index  []int
}

// fieldCache holds []dbField per struct type.
var fieldCache sync.Map

func typeFields(t reflect.Type) []dbField {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]dbField)
	}

	var fields []dbField
	if t.Kind() == reflect.Struct {
		collectFields(t, nil, &fields)
	}
	fieldCache.Store(t, fields)
	return fields
}

func collectFields(t reflect.Type, parent []int, out *[]dbField) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		index := append(append([]int{}, parent...), i)

		if field.Anonymous {
			ft := field.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectFields(ft, index, out)
			}
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		*out = append(*out, dbField{column: tag, index: index})
	}
}

// StructToMap converts a struct to column -> value using "db" tags.
// Reflection metadata is computed once per type.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	fields := typeFields(rv.Type())
	res := make(map[string]any, len(fields))
	for _, f := range fields {
		res[f.column] = rv.FieldByIndex(f.index).Interface()
	}
	return res
}

// PickColumns returns the subset of data whose keys are in cols, minus skip.
func PickColumns(data map[string]any, cols []string, skip ...string) map[string]any {
	out := make(map[string]any, len(cols))
	for _, col := range cols {
		if containsString(skip, col) {
			continue
		}
		if val, ok := data[col]; ok {
			out[col] = val
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Contains builds a case-insensitive substring match on column.
func Contains(column, value string) squirrel.Sqlizer {
	return squirrel.ILike{column: "%" + EscapeLike(value) + "%"}
}

// Builder returns a squirrel builder with Postgres placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
