package domain

import (
	"context"
	"time"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

// StockLedger receives the derived stock movements of entries.
// Implemented by registers/stock.Service.
type StockLedger interface {
	Record(ctx context.Context, mv entity.StockMovement) error
	SyncByRef(ctx context.Context, mv entity.StockMovement) error
	DeleteByRef(ctx context.Context, millID id.ID, refModel string, refID id.ID) error
	DeleteByRefs(ctx context.Context, millID id.ID, refModel string, refIDs []id.ID) error
}

// SummaryCache stores computed summaries per mill and module.
// Invalidate drops every cached range of the module for the mill.
// Get reports the generation it read; Set stores under that generation, so a
// summary computed before an Invalidate is never served after it.
type SummaryCache interface {
	Get(ctx context.Context, millID id.ID, resource, rangeKey string) (s Summary, gen int64, ok bool, err error)
	Set(ctx context.Context, millID id.ID, resource string, gen int64, rangeKey string, s Summary) error
	Invalidate(ctx context.Context, millID id.ID, resource string) error
}

// Numerator issues human-readable deal numbers.
type Numerator interface {
	Next(ctx context.Context, millID id.ID, prefix string, date time.Time) (string, error)
}

// DealNumbered is implemented by entries carrying an auto-assignable deal number.
type DealNumbered interface {
	DealNumberRef() *string
}

// StockQuantity returns the ledger quantity of an entry. The commodity and
// direction come from Descriptor.Stock.
type StockQuantity[T entity.Entry] func(entry T) types.Measure
