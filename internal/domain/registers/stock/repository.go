// Package stock provides the per-mill stock ledger.
package stock

import (
	"context"
	"time"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

// Repository defines storage operations for the stock ledger.
type Repository interface {
	// Upsert inserts a derived row or updates the one with the same (ref_model, ref_id)
	Upsert(ctx context.Context, txn *entity.StockTransaction) error

	// Create inserts a manual row
	Create(ctx context.Context, txn *entity.StockTransaction) error

	GetByID(ctx context.Context, millID, txnID id.ID) (*entity.StockTransaction, error)
	DeleteByID(ctx context.Context, millID, txnID id.ID) error

	DeleteByRef(ctx context.Context, millID id.ID, refModel string, refID id.ID) error
	DeleteByRefs(ctx context.Context, millID id.ID, refModel string, refIDs []id.ID) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*entity.StockTransaction], error)

	// Balances returns credit/debit totals per commodity up to asOf (inclusive, nil = all)
	Balances(ctx context.Context, millID id.ID, asOf *time.Time) ([]entity.StockBalance, error)

	// Reconciliation

	// ExpectedMovements reads the quantity every source entry should hold in the ledger
	ExpectedMovements(ctx context.Context, millID id.ID, src Source) ([]entity.StockMovement, error)

	// ListDerived returns all ledger rows of the mill with the given refModel
	ListDerived(ctx context.Context, millID id.ID, refModel string) ([]*entity.StockTransaction, error)

	// InsertMany bulk-inserts new rows
	InsertMany(ctx context.Context, txns []*entity.StockTransaction) error

	DeleteByIDs(ctx context.Context, millID id.ID, ids []id.ID) error
}

// ListFilter for the ledger listing.
type ListFilter struct {
	MillID    id.ID
	Commodity *entity.Commodity
	Type      *entity.TransactionType
	RefModel  string
	RefID     *id.ID
	DateRange types.DateRange
	Page      int
	Limit     int
}

// Offset returns the row offset of the requested page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Source is an entry table that derives ledger rows.
type Source struct {
	RefModel  string
	Table     string
	Quantity  string // SQL expression
	Commodity entity.Commodity
	Type      entity.TransactionType
}

// SourcesFrom builds reconciliation sources from module descriptors.
// Modules without a stock effect are skipped.
func SourcesFrom(descs []*domain.Descriptor) []Source {
	var sources []Source
	for _, d := range descs {
		if d.Stock == nil {
			continue
		}
		sources = append(sources, Source{
			RefModel:  d.Entity,
			Table:     d.Table,
			Quantity:  d.Stock.Quantity,
			Commodity: d.Stock.Commodity,
			Type:      d.Stock.Type,
		})
	}
	return sources
}
