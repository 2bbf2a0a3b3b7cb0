package reports

import (
	"context"
	"time"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
)

// Repository defines report data access interface.
type Repository interface {
	// StockBalances sums the ledger per commodity up to asOf inclusive
	StockBalances(ctx context.Context, millID id.ID, asOf time.Time) ([]entity.StockBalance, error)

	// StockTurnover returns the opening balance before from and the credits
	// and debits within [from, to] per commodity
	StockTurnover(ctx context.Context, millID id.ID, from, to time.Time) ([]TurnoverRow, error)
}
