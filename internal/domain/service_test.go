package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/security"
	"ricemill/internal/core/tx"
	"ricemill/internal/core/types"
)

type serviceFixture struct {
	svc    *EntryService[*testEntry]
	repo   *fakeRepo
	ledger *fakeLedger
	cache  *fakeCache
}

func newFixture() serviceFixture {
	f := serviceFixture{
		repo:   newFakeRepo(),
		ledger: &fakeLedger{},
		cache:  newFakeCache(),
	}
	f.svc = NewEntryService(EntryServiceConfig[*testEntry]{
		Descriptor:    testDescriptor,
		Repo:          f.repo,
		TxManager:     tx.Nop{},
		Stock:         f.ledger,
		StockQuantity: func(e *testEntry) types.Measure { return e.Qty },
		Cache:         f.cache,
		Numerator:     &fakeNumerator{},
	})
	return f
}

func day(s string) time.Time {
	d, _ := types.ParseDate(s)
	return d
}

func TestEntryService_Create(t *testing.T) {
	f := newFixture()
	millID := id.New()
	userID := id.New()
	ctx := security.WithUserID(context.Background(), userID.String())

	in := &testEntry{Qty: types.NewMeasure(100)}
	in.Date = time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

	created, err := f.svc.Create(ctx, millID, in)
	require.NoError(t, err)

	assert.Equal(t, millID, created.MillID)
	assert.Equal(t, day("2024-03-01"), created.Date)
	assert.Equal(t, "TE-2024-00001", created.DealNumber)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, userID, *created.CreatedBy)

	require.Len(t, f.ledger.calls, 1)
	call := f.ledger.calls[0]
	assert.Equal(t, "record", call.op)
	assert.Equal(t, entity.CommodityRice, call.mv.Commodity)
	assert.Equal(t, entity.Credit, call.mv.Type)
	assert.Equal(t, "TestEntry", call.mv.RefModel)
	assert.Equal(t, created.ID, call.mv.RefID)
	assert.True(t, call.mv.Quantity.Equal(types.NewMeasure(100)))
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestEntryService_Create_KeepsGivenDealNumber(t *testing.T) {
	f := newFixture()
	in := &testEntry{DealNumber: "D-7"}
	in.Date = day("2024-03-01")

	created, err := f.svc.Create(context.Background(), id.New(), in)
	require.NoError(t, err)
	assert.Equal(t, "D-7", created.DealNumber)
}

func TestEntryService_Create_ZeroQuantitySkipsLedger(t *testing.T) {
	f := newFixture()
	in := &testEntry{}
	in.Date = day("2024-03-01")

	_, err := f.svc.Create(context.Background(), id.New(), in)
	require.NoError(t, err)
	assert.Empty(t, f.ledger.calls)
}

func TestEntryService_Create_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), id.New(), &testEntry{Qty: types.NewMeasure(1)})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, f.repo.rows)
	assert.Empty(t, f.ledger.calls)
}

func TestEntryService_Create_LedgerFailureIsNotPropagated(t *testing.T) {
	f := newFixture()
	f.ledger.err = errors.New("ledger down")
	in := &testEntry{Qty: types.NewMeasure(5)}
	in.Date = day("2024-03-01")

	created, err := f.svc.Create(context.Background(), id.New(), in)
	require.NoError(t, err)
	assert.Contains(t, f.repo.rows, created.ID)
}

func TestEntryService_Create_BeforeHookAborts(t *testing.T) {
	f := newFixture()
	f.svc.Hooks().OnBeforeCreate(func(_ context.Context, _ *testEntry) error {
		return apperror.NewBusinessRule("BLOCKED", "blocked")
	})
	in := &testEntry{}
	in.Date = day("2024-03-01")

	_, err := f.svc.Create(context.Background(), id.New(), in)
	require.Error(t, err)
	assert.Empty(t, f.repo.rows)
}

func TestEntryService_AfterHooksRunAfterStock(t *testing.T) {
	f := newFixture()
	var seen int
	f.svc.Hooks().OnAfterCreate(func(_ context.Context, _ *testEntry) error {
		seen = len(f.ledger.calls)
		return errors.New("notify failed")
	})
	f.svc.Hooks().OnAfterDelete(func(_ context.Context, _ *testEntry) error {
		seen = len(f.ledger.calls)
		return nil
	})
	millID := id.New()
	in := &testEntry{Qty: types.NewMeasure(7)}
	in.Date = day("2024-03-01")

	created, err := f.svc.Create(context.Background(), millID, in)
	require.NoError(t, err)
	assert.Equal(t, 1, seen)

	require.NoError(t, f.svc.Delete(context.Background(), millID, created.ID))
	assert.Equal(t, 2, seen)
	require.Len(t, f.ledger.calls, 2)
	assert.Equal(t, "delete", f.ledger.calls[1].op)
	assert.Equal(t, millID, f.ledger.calls[1].mv.MillID)
	assert.Equal(t, created.ID, f.ledger.calls[1].mv.RefID)
}

func TestEntryService_GetByID_OtherMill(t *testing.T) {
	f := newFixture()
	in := &testEntry{}
	in.Date = day("2024-03-01")
	created, err := f.svc.Create(context.Background(), id.New(), in)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), id.New(), created.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	assert.Equal(t, "Test entry not found", appErr.Message)
}

func TestEntryService_Update(t *testing.T) {
	f := newFixture()
	millID := id.New()
	in := &testEntry{Qty: types.NewMeasure(10)}
	in.Date = day("2024-03-01")
	created, err := f.svc.Create(context.Background(), millID, in)
	require.NoError(t, err)
	f.ledger.calls = nil

	updated, err := f.svc.Update(context.Background(), millID, created.ID, func(e *testEntry) error {
		e.Qty = types.NewMeasure(0)
		e.Date = day("2024-03-05")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Qty.IsZero())
	assert.Equal(t, day("2024-03-05"), updated.Date)
	assert.Equal(t, created.DealNumber, updated.DealNumber)

	require.Len(t, f.ledger.calls, 1)
	assert.Equal(t, "sync", f.ledger.calls[0].op)
	assert.True(t, f.ledger.calls[0].mv.Quantity.IsZero())
	assert.Equal(t, day("2024-03-05"), f.ledger.calls[0].mv.Date)
}

func TestEntryService_Update_NotFoundAcrossMills(t *testing.T) {
	f := newFixture()
	in := &testEntry{}
	in.Date = day("2024-03-01")
	created, err := f.svc.Create(context.Background(), id.New(), in)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), id.New(), created.ID, func(e *testEntry) error { return nil })
	assert.True(t, apperror.IsNotFound(err))
}

func TestEntryService_Update_RejectsInvalidChange(t *testing.T) {
	f := newFixture()
	millID := id.New()
	in := &testEntry{Qty: types.NewMeasure(3)}
	in.Date = day("2024-03-01")
	created, err := f.svc.Create(context.Background(), millID, in)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), millID, created.ID, func(e *testEntry) error {
		e.Qty = types.NewMeasure(-1)
		return nil
	})
	require.Error(t, err)
	assert.True(t, f.repo.rows[created.ID].Qty.Equal(types.NewMeasure(3)))
}

func TestEntryService_Delete(t *testing.T) {
	f := newFixture()
	millID := id.New()
	in := &testEntry{Qty: types.NewMeasure(100)}
	in.Date = day("2024-03-01")
	created, err := f.svc.Create(context.Background(), millID, in)
	require.NoError(t, err)
	f.ledger.calls = nil

	err = f.svc.Delete(context.Background(), id.New(), created.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, f.ledger.calls)

	require.NoError(t, f.svc.Delete(context.Background(), millID, created.ID))
	assert.NotContains(t, f.repo.rows, created.ID)
	require.Len(t, f.ledger.calls, 1)
	assert.Equal(t, "delete", f.ledger.calls[0].op)
	assert.Equal(t, created.ID, f.ledger.calls[0].mv.RefID)
}

func TestEntryService_BulkDelete(t *testing.T) {
	f := newFixture()
	millID := id.New()
	var ids []id.ID
	for i := 0; i < 3; i++ {
		in := &testEntry{}
		in.Date = day("2024-03-01")
		created, err := f.svc.Create(context.Background(), millID, in)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	foreign := &testEntry{}
	foreign.Date = day("2024-03-01")
	other, err := f.svc.Create(context.Background(), id.New(), foreign)
	require.NoError(t, err)
	f.ledger.calls = nil

	request := append([]id.ID{ids[0], ids[1], id.New(), other.ID}, ids[1])
	n, err := f.svc.BulkDelete(context.Background(), millID, request)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.LessOrEqual(t, n, len(request))
	assert.Contains(t, f.repo.rows, ids[2])
	assert.Contains(t, f.repo.rows, other.ID)

	require.Len(t, f.ledger.calls, 1)
	assert.Equal(t, "delete_many", f.ledger.calls[0].op)
	assert.ElementsMatch(t, []id.ID{ids[0], ids[1]}, f.ledger.calls[0].ids)
}

func TestEntryService_BulkDelete_Bounds(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BulkDelete(context.Background(), id.New(), nil)
	require.Error(t, err)

	_, err = f.svc.BulkDelete(context.Background(), id.New(), make([]id.ID, MaxBulkDelete+1))
	require.Error(t, err)
}

func TestEntryService_Summary(t *testing.T) {
	f := newFixture()
	millID := id.New()

	empty, err := f.svc.Summary(context.Background(), millID, types.DateRange{})
	require.NoError(t, err)
	assert.True(t, empty["totalQty"].IsZero())
	assert.True(t, empty[TotalEntriesKey].IsZero())

	in := &testEntry{Qty: types.MustMeasure("100.005")}
	in.Date = day("2024-03-01")
	_, err = f.svc.Create(context.Background(), millID, in)
	require.NoError(t, err)

	s, err := f.svc.Summary(context.Background(), millID, types.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "100.01", s["totalQty"].String())
	assert.Equal(t, "1", s[TotalEntriesKey].String())

	// served from cache until the next mutation
	f.repo.rows = map[id.ID]testEntry{}
	cached, err := f.svc.Summary(context.Background(), millID, types.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "1", cached[TotalEntriesKey].String())
}

func TestEntryService_Summary_MutationDuringQueryNotCached(t *testing.T) {
	f := newFixture()
	millID := id.New()

	// A create commits and invalidates while the aggregate query is running.
	f.repo.afterSummary = func() {
		e := testEntry{Qty: types.NewMeasure(7)}
		e.ID = id.New()
		e.MillID = millID
		e.Date = day("2024-03-01")
		require.NoError(t, f.repo.Create(context.Background(), &e))
		require.NoError(t, f.cache.Invalidate(context.Background(), millID, testDescriptor.Resource))
	}
	stale, err := f.svc.Summary(context.Background(), millID, types.DateRange{})
	require.NoError(t, err)
	assert.True(t, stale[TotalEntriesKey].IsZero())

	f.repo.afterSummary = nil
	fresh, err := f.svc.Summary(context.Background(), millID, types.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "1", fresh[TotalEntriesKey].String())
	assert.Equal(t, "7", fresh["totalQty"].String())
}

func TestEntryService_Summary_InvertedRange(t *testing.T) {
	f := newFixture()
	start, end := day("2024-03-05"), day("2024-03-01")

	_, err := f.svc.Summary(context.Background(), id.New(), types.DateRange{Start: &start, End: &end})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))
}

func TestEntryService_List_PastTheEnd(t *testing.T) {
	f := newFixture()
	millID := id.New()
	for i := 0; i < 3; i++ {
		in := &testEntry{}
		in.Date = day("2024-03-01")
		_, err := f.svc.Create(context.Background(), millID, in)
		require.NoError(t, err)
	}

	res, err := f.svc.List(context.Background(), millID, ListQuery{Page: 5, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.EqualValues(t, 3, res.Total)
	assert.Equal(t, 2, res.TotalPages())
}

func TestEntryService_List_InvalidSort(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), id.New(), ListQuery{SortBy: "password"})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetHTTPStatus(err))
}
