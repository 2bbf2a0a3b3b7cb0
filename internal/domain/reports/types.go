// Package reports provides stock report generation.
package reports

import (
	"time"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/types"
)

// --- Stock Balance Report ---

// StockBalanceReport is the ledger position of every commodity at a date.
type StockBalanceReport struct {
	AsOfDate time.Time             `json:"asOfDate"`
	Items    []entity.StockBalance `json:"items"`
}

// --- Stock Turnover Report ---

// TurnoverRow is what the repository aggregates per commodity.
type TurnoverRow struct {
	Commodity entity.Commodity `db:"commodity"`
	Opening   types.Measure    `db:"opening"`
	Credit    types.Measure    `db:"credit"`
	Debit     types.Measure    `db:"debit"`
}

// StockTurnoverItem is one commodity of the turnover report.
type StockTurnoverItem struct {
	Commodity      entity.Commodity `json:"commodity"`
	OpeningBalance types.Measure    `json:"openingBalance"`
	Credit         types.Measure    `json:"credit"`
	Debit          types.Measure    `json:"debit"`
	ClosingBalance types.Measure    `json:"closingBalance"`
}

// StockTurnoverReport covers [FromDate, ToDate] inclusive.
type StockTurnoverReport struct {
	FromDate time.Time           `json:"fromDate"`
	ToDate   time.Time           `json:"toDate"`
	Items    []StockTurnoverItem `json:"items"`
}
