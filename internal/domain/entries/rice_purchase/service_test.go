package rice_purchase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/tx"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
)

type memRepo struct {
	mu   sync.Mutex
	rows map[id.ID]RicePurchase
}

func (r *memRepo) Create(_ context.Context, e *RicePurchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[e.ID] = *e
	return nil
}

func (r *memRepo) GetByID(_ context.Context, millID, entryID id.ID) (*RicePurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[entryID]
	if !ok || row.MillID != millID {
		return nil, apperror.NewNotFound("rice_purchases", entryID)
	}
	return &row, nil
}

func (r *memRepo) GetForUpdate(ctx context.Context, millID, entryID id.ID) (*RicePurchase, error) {
	return r.GetByID(ctx, millID, entryID)
}

func (r *memRepo) Update(_ context.Context, e *RicePurchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[e.ID] = *e
	return nil
}

func (r *memRepo) Delete(_ context.Context, millID, entryID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[entryID]
	if !ok || row.MillID != millID {
		return apperror.NewNotFound("rice_purchases", entryID)
	}
	delete(r.rows, entryID)
	return nil
}

func (r *memRepo) BulkDelete(ctx context.Context, millID id.ID, ids []id.ID) ([]id.ID, error) {
	var out []id.ID
	for _, entryID := range ids {
		if err := r.Delete(ctx, millID, entryID); err == nil {
			out = append(out, entryID)
		}
	}
	return out, nil
}

func (r *memRepo) List(_ context.Context, f domain.ListFilter) (domain.ListResult[*RicePurchase], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := domain.ListResult[*RicePurchase]{Page: f.Page, Limit: f.Limit}
	for _, row := range r.rows {
		if row.MillID == f.MillID {
			res.Items = append(res.Items, &row)
		}
	}
	res.Total = int64(len(res.Items))
	return res, nil
}

// Summary mirrors the aggregate SQL built from Descriptor.Summary.
func (r *memRepo) Summary(_ context.Context, millID id.ID, _ types.DateRange) (domain.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Descriptor.ZeroSummary()
	n := 0
	for _, row := range r.rows {
		if row.MillID != millID {
			continue
		}
		n++
		s["totalRiceQty"] = s["totalRiceQty"].Add(row.RiceQty)
		s["totalAmount"] = s["totalAmount"].Add(row.Amount())
		s["totalBrokerage"] = s["totalBrokerage"].Add(row.Brokerage)
	}
	s[domain.TotalEntriesKey] = types.NewMeasure(float64(n))
	return s, nil
}

type memLedger struct {
	rows map[id.ID]entity.StockMovement
}

func (l *memLedger) Record(_ context.Context, mv entity.StockMovement) error {
	l.rows[mv.RefID] = mv
	return nil
}

func (l *memLedger) SyncByRef(_ context.Context, mv entity.StockMovement) error {
	if mv.Quantity.IsPositive() {
		l.rows[mv.RefID] = mv
	} else {
		delete(l.rows, mv.RefID)
	}
	return nil
}

func (l *memLedger) DeleteByRef(_ context.Context, _ id.ID, _ string, refID id.ID) error {
	delete(l.rows, refID)
	return nil
}

func (l *memLedger) DeleteByRefs(_ context.Context, _ id.ID, _ string, refIDs []id.ID) error {
	for _, refID := range refIDs {
		delete(l.rows, refID)
	}
	return nil
}

type seqNumerator struct{ n int }

func (s *seqNumerator) Next(_ context.Context, _ id.ID, prefix string, date time.Time) (string, error) {
	s.n++
	return fmt.Sprintf("%s-%d-%05d", prefix, date.Year(), s.n), nil
}

func TestService_CreateSummaryDelete(t *testing.T) {
	repo := &memRepo{rows: map[id.ID]RicePurchase{}}
	ledger := &memLedger{rows: map[id.ID]entity.StockMovement{}}
	svc := NewService(repo, domain.EntryDeps{
		TxManager: tx.Nop{},
		Stock:     ledger,
		Numerator: &seqNumerator{},
	})
	ctx := context.Background()
	millID := id.New()

	in := &RicePurchase{
		PartyName: "Acme Traders",
		RiceQty:   types.NewMeasure(100),
		Rate:      types.MustMeasure("42.5"),
		Brokerage: types.NewMeasure(150),
	}
	in.Date = time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

	created, err := svc.Create(ctx, millID, in)
	require.NoError(t, err)
	assert.Equal(t, "RP-2024-00001", created.DealNumber)
	assert.Equal(t, millID, created.MillID)

	require.Contains(t, ledger.rows, created.ID)
	mv := ledger.rows[created.ID]
	assert.Equal(t, entity.CommodityRice, mv.Commodity)
	assert.Equal(t, entity.Credit, mv.Type)
	assert.Equal(t, "RicePurchase", mv.RefModel)
	assert.True(t, mv.Quantity.Equal(types.NewMeasure(100)), mv.Quantity.String())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), mv.Date)

	sum, err := svc.Summary(ctx, millID, types.DateRange{})
	require.NoError(t, err)
	assert.True(t, sum["totalRiceQty"].Equal(types.NewMeasure(100)), sum["totalRiceQty"].String())
	assert.True(t, sum["totalAmount"].Equal(types.NewMeasure(4250)), sum["totalAmount"].String())
	assert.True(t, sum["totalBrokerage"].Equal(types.NewMeasure(150)))
	assert.True(t, sum[domain.TotalEntriesKey].Equal(types.NewMeasure(1)))

	other, err := svc.Summary(ctx, id.New(), types.DateRange{})
	require.NoError(t, err)
	assert.True(t, other[domain.TotalEntriesKey].IsZero())

	require.NoError(t, svc.Delete(ctx, millID, created.ID))
	assert.NotContains(t, ledger.rows, created.ID)
	assert.Empty(t, repo.rows)

	sum, err = svc.Summary(ctx, millID, types.DateRange{})
	require.NoError(t, err)
	assert.True(t, sum["totalRiceQty"].IsZero())
	assert.True(t, sum[domain.TotalEntriesKey].IsZero())
}
