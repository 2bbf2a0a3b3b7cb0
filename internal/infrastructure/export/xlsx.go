// Package export renders entry lists as spreadsheets.
package export

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"ricemill/internal/core/types"
	"ricemill/internal/metadata"
)

// ContentTypeXLSX is the MIME type of the workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxSheetName is the Excel limit on sheet names.
const maxSheetName = 31

// Columns drops fields that do not belong in a spreadsheet.
func Columns(fields []metadata.FieldDef) []metadata.FieldDef {
	out := make([]metadata.FieldDef, 0, len(fields))
	for _, f := range fields {
		switch f.Name {
		case "millId", "updatedBy":
			continue
		}
		out = append(out, f)
	}
	return out
}

// Workbook writes a header row of field labels and one row per entry.
func Workbook(sheet string, fields []metadata.FieldDef, rows []any) (*excelize.File, error) {
	if len(sheet) > maxSheetName {
		sheet = sheet[:maxSheetName]
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(fields))
	for i, fd := range fields {
		header[i] = fd.Label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for r, entry := range rows {
		values := make([]any, len(fields))
		for i, fd := range fields {
			values[i] = CellValue(metadata.Value(entry, fd), fd)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", r+2, err)
		}
	}

	if len(fields) > 0 {
		last, _ := excelize.ColumnNumberToName(len(fields))
		if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

// CellValue converts a field value into something excelize writes natively.
func CellValue(v any, fd metadata.FieldDef) any {
	switch val := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return val.Round(int32(fd.Scale)).InexactFloat64()
	case time.Time:
		if fd.Type == metadata.TypeDate {
			return types.FormatDate(val)
		}
		return val.UTC().Format(time.RFC3339)
	case uuid.UUID:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return val
	}
}

// Filename builds the attachment name, e.g. rice-purchase-20240301.xlsx.
func Filename(resource string, now time.Time) string {
	return fmt.Sprintf("%s-%s.xlsx", resource, now.Format("20060102"))
}
