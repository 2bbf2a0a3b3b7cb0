// Package report_repo provides PostgreSQL queries behind the stock reports.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/domain/reports"
	"ricemill/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

const stockBalancesSQL = `
	SELECT
		commodity,
		COALESCE(SUM(quantity) FILTER (WHERE type = 'CREDIT'), 0) AS credit,
		COALESCE(SUM(quantity) FILTER (WHERE type = 'DEBIT'), 0) AS debit,
		COALESCE(SUM(CASE WHEN type = 'CREDIT' THEN quantity ELSE -quantity END), 0) AS balance
	FROM stock_transactions
	WHERE mill_id = $1 AND date <= $2
	GROUP BY commodity
`

// StockBalances sums the ledger per commodity up to asOf inclusive.
func (r *ReportRepo) StockBalances(ctx context.Context, millID id.ID, asOf time.Time) ([]entity.StockBalance, error) {
	var rows []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, stockBalancesSQL, millID, asOf); err != nil {
		return nil, fmt.Errorf("stock balances report: %w", err)
	}
	return rows, nil
}

// Opening is everything before from; credit and debit cover [from, to].
const stockTurnoverSQL = `
	SELECT
		commodity,
		COALESCE(SUM(CASE WHEN type = 'CREDIT' THEN quantity ELSE -quantity END)
			FILTER (WHERE date < $2), 0) AS opening,
		COALESCE(SUM(quantity) FILTER (WHERE type = 'CREDIT' AND date >= $2), 0) AS credit,
		COALESCE(SUM(quantity) FILTER (WHERE type = 'DEBIT' AND date >= $2), 0) AS debit
	FROM stock_transactions
	WHERE mill_id = $1 AND date <= $3
	GROUP BY commodity
`

// StockTurnover returns opening balance, credits and debits per commodity.
func (r *ReportRepo) StockTurnover(ctx context.Context, millID id.ID, from, to time.Time) ([]reports.TurnoverRow, error) {
	var rows []reports.TurnoverRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, stockTurnoverSQL, millID, from, to); err != nil {
		return nil, fmt.Errorf("stock turnover report: %w", err)
	}
	return rows, nil
}
