package domain

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
)

type testEntry struct {
	entity.BaseEntry
	DealNumber string        `db:"deal_number" json:"dealNumber"`
	Qty        types.Measure `db:"qty" json:"qty"`
}

func (e *testEntry) Validate(_ context.Context) error {
	if e.Date.IsZero() {
		return apperror.NewFieldValidation("date", "date is required")
	}
	if e.Qty.IsNegative() {
		return apperror.NewFieldValidation("qty", "qty must not be negative")
	}
	return nil
}

func (e *testEntry) DealNumberRef() *string { return &e.DealNumber }

var testDescriptor = &Descriptor{
	Entity:        "TestEntry",
	DisplayName:   "Test entry",
	Resource:      "test-entry",
	Table:         "test_entries",
	SearchColumns: []string{"deal_number"},
	Filters:       []FilterField{{Param: "dealNumber", Column: "deal_number"}},
	SortFields:    map[string]string{"date": "date", "qty": "qty"},
	DefaultSort:   "date",
	Summary:       []SummaryField{{Key: "totalQty", Column: "qty"}},
	Stock:         &StockRule{Commodity: entity.CommodityRice, Type: entity.Credit, Quantity: "qty"},
	NumberPrefix:  "TE",
}

type fakeRepo struct {
	mu   sync.Mutex
	rows map[id.ID]testEntry
	// afterSummary runs once the aggregate is computed, before it is returned.
	afterSummary func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[id.ID]testEntry)}
}

func (r *fakeRepo) Create(_ context.Context, e *testEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[e.ID] = *e
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, millID, entryID id.ID) (*testEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[entryID]
	if !ok || row.MillID != millID {
		return nil, apperror.NewNotFound("test_entries", entryID)
	}
	return &row, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, millID, entryID id.ID) (*testEntry, error) {
	return r.GetByID(ctx, millID, entryID)
}

func (r *fakeRepo) Update(_ context.Context, e *testEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[e.ID] = *e
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, millID, entryID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[entryID]
	if !ok || row.MillID != millID {
		return apperror.NewNotFound("test_entries", entryID)
	}
	delete(r.rows, entryID)
	return nil
}

func (r *fakeRepo) BulkDelete(_ context.Context, millID id.ID, ids []id.ID) ([]id.ID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted []id.ID
	for _, entryID := range ids {
		if row, ok := r.rows[entryID]; ok && row.MillID == millID {
			delete(r.rows, entryID)
			deleted = append(deleted, entryID)
		}
	}
	return deleted, nil
}

func (r *fakeRepo) List(_ context.Context, f ListFilter) (ListResult[*testEntry], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*testEntry
	for _, row := range r.rows {
		if row.MillID == f.MillID {
			row := row
			all = append(all, &row)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	res := ListResult[*testEntry]{Total: int64(len(all)), Page: f.Page, Limit: f.Limit, Items: []*testEntry{}}
	start := f.Offset()
	if start < len(all) {
		end := min(start+f.Limit, len(all))
		res.Items = all[start:end]
	}
	return res, nil
}

func (r *fakeRepo) Summary(_ context.Context, millID id.ID, _ types.DateRange) (Summary, error) {
	s := r.summary(millID)
	if r.afterSummary != nil {
		r.afterSummary()
	}
	return s, nil
}

func (r *fakeRepo) summary(millID id.ID) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Summary{}
	n := 0
	total := types.Zero()
	for _, row := range r.rows {
		if row.MillID == millID {
			n++
			total = total.Add(row.Qty)
		}
	}
	if n == 0 {
		return s
	}
	s["totalQty"] = total
	s[TotalEntriesKey] = types.NewMeasure(float64(n))
	return s
}

type ledgerCall struct {
	op  string
	mv  entity.StockMovement
	ids []id.ID
}

type fakeLedger struct {
	calls []ledgerCall
	err   error
}

func (l *fakeLedger) Record(_ context.Context, mv entity.StockMovement) error {
	l.calls = append(l.calls, ledgerCall{op: "record", mv: mv})
	return l.err
}

func (l *fakeLedger) SyncByRef(_ context.Context, mv entity.StockMovement) error {
	l.calls = append(l.calls, ledgerCall{op: "sync", mv: mv})
	return l.err
}

func (l *fakeLedger) DeleteByRef(_ context.Context, millID id.ID, refModel string, refID id.ID) error {
	l.calls = append(l.calls, ledgerCall{op: "delete", mv: entity.StockMovement{MillID: millID, RefModel: refModel, RefID: refID}})
	return l.err
}

func (l *fakeLedger) DeleteByRefs(_ context.Context, millID id.ID, refModel string, refIDs []id.ID) error {
	l.calls = append(l.calls, ledgerCall{op: "delete_many", mv: entity.StockMovement{MillID: millID, RefModel: refModel}, ids: refIDs})
	return l.err
}

type fakeCache struct {
	data        map[string]Summary
	gen         int64
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]Summary)}
}

func (c *fakeCache) key(millID id.ID, resource string, gen int64, rangeKey string) string {
	return fmt.Sprintf("%s:%s:%d:%s", millID, resource, gen, rangeKey)
}

func (c *fakeCache) Get(_ context.Context, millID id.ID, resource, rangeKey string) (Summary, int64, bool, error) {
	s, ok := c.data[c.key(millID, resource, c.gen, rangeKey)]
	return s, c.gen, ok, nil
}

func (c *fakeCache) Set(_ context.Context, millID id.ID, resource string, gen int64, rangeKey string, s Summary) error {
	c.data[c.key(millID, resource, gen, rangeKey)] = s
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, _ id.ID, _ string) error {
	c.invalidated++
	c.gen++
	return nil
}

type fakeNumerator struct{ n int }

func (f *fakeNumerator) Next(_ context.Context, _ id.ID, prefix string, date time.Time) (string, error) {
	f.n++
	return prefix + "-" + date.Format("2006") + "-0000" + string(rune('0'+f.n)), nil
}
