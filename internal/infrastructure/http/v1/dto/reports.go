package dto

import (
	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
	"ricemill/internal/domain/reports"
)

// --- Stock Balance Report ---

// StockBalanceReportResponse represents stock balance report response.
type StockBalanceReportResponse struct {
	AsOfDate string                `json:"asOfDate"`
	Items    []entity.StockBalance `json:"items"`
}

// FromStockBalanceReport formats the report date.
func FromStockBalanceReport(r *reports.StockBalanceReport) StockBalanceReportResponse {
	return StockBalanceReportResponse{
		AsOfDate: types.FormatDate(r.AsOfDate),
		Items:    r.Items,
	}
}

// --- Stock Turnover Report ---

// StockTurnoverReportRequest requires both bounds.
type StockTurnoverReportRequest struct {
	StartDate string `form:"startDate" binding:"required,isodate"`
	EndDate   string `form:"endDate" binding:"required,isodate"`
}

// ToDateRange parses the bounds.
func (r StockTurnoverReportRequest) ToDateRange() (types.DateRange, error) {
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return types.DateRange{}, err
	}
	end, err := parseDate("endDate", r.EndDate)
	if err != nil {
		return types.DateRange{}, err
	}
	return types.DateRange{Start: &start, End: &end}, nil
}

// StockTurnoverReportResponse represents stock turnover report response.
type StockTurnoverReportResponse struct {
	FromDate string                      `json:"fromDate"`
	ToDate   string                      `json:"toDate"`
	Items    []reports.StockTurnoverItem `json:"items"`
}

// FromStockTurnoverReport formats the report dates.
func FromStockTurnoverReport(r *reports.StockTurnoverReport) StockTurnoverReportResponse {
	return StockTurnoverReportResponse{
		FromDate: types.FormatDate(r.FromDate),
		ToDate:   types.FormatDate(r.ToDate),
		Items:    r.Items,
	}
}
