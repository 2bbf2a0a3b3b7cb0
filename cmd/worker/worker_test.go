package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
	"ricemill/internal/domain/registers/stock"
	"ricemill/pkg/logger"
)

type fakeMills struct {
	mills []*mill.Mill
	err   error
}

func (f fakeMills) ListActive(context.Context) ([]*mill.Mill, error) { return f.mills, f.err }

type fakeReconciler struct {
	mu    sync.Mutex
	calls []id.ID
	fail  map[id.ID]error
}

func (f *fakeReconciler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeReconciler) Reconcile(_ context.Context, millID id.ID) (stock.ReconcileResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, millID)
	f.mu.Unlock()
	if err := f.fail[millID]; err != nil {
		return stock.ReconcileResult{}, err
	}
	return stock.ReconcileResult{Inserted: 1}, nil
}

type busyLock struct{}

func (busyLock) WithLock(context.Context, string, id.ID, func(ctx context.Context) error) (bool, error) {
	return false, nil
}

type countCleaner struct{ n int }

func (c *countCleaner) CleanupExpiredTokens(context.Context) (int, error) {
	c.n++
	return 3, nil
}

func (c *countCleaner) CleanupExpired(context.Context) (int64, error) {
	c.n++
	return 0, nil
}

func newTestWorker(mills MillLister, rec Reconciler) *Worker {
	return &Worker{
		mills:       mills,
		ledger:      rec,
		tokens:      &countCleaner{},
		idempotency: &countCleaner{},
		locker:      noLock{},
		log:         logger.NewNop(),
		interval:    time.Hour,
		cleanup:     time.Hour,
	}
}

func TestReconcileAll_ContinuesPastFailure(t *testing.T) {
	a := &mill.Mill{ID: id.New(), Code: "A"}
	b := &mill.Mill{ID: id.New(), Code: "B"}
	rec := &fakeReconciler{fail: map[id.ID]error{a.ID: errors.New("boom")}}

	w := newTestWorker(fakeMills{mills: []*mill.Mill{a, b}}, rec)
	w.reconcileAll(context.Background())

	assert.Equal(t, []id.ID{a.ID, b.ID}, rec.calls)
}

func TestReconcileAll_ListError(t *testing.T) {
	rec := &fakeReconciler{}
	w := newTestWorker(fakeMills{err: errors.New("db down")}, rec)

	w.reconcileAll(context.Background())

	assert.Empty(t, rec.calls)
}

func TestReconcileAll_SkipsLockedMill(t *testing.T) {
	rec := &fakeReconciler{}
	w := newTestWorker(fakeMills{mills: []*mill.Mill{{ID: id.New()}}}, rec)
	w.locker = busyLock{}

	w.reconcileAll(context.Background())

	assert.Empty(t, rec.calls)
}

func TestReconcileAll_StopsOnCancel(t *testing.T) {
	rec := &fakeReconciler{}
	w := newTestWorker(fakeMills{mills: []*mill.Mill{{ID: id.New()}, {ID: id.New()}}}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.reconcileAll(ctx)

	assert.Empty(t, rec.calls)
}

func TestRun_ReconcilesAtStartAndStops(t *testing.T) {
	m := &mill.Mill{ID: id.New()}
	rec := &fakeReconciler{}
	w := newTestWorker(fakeMills{mills: []*mill.Mill{m}}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return rec.count() > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestCleanup(t *testing.T) {
	tokens := &countCleaner{}
	keys := &countCleaner{}
	w := newTestWorker(fakeMills{}, &fakeReconciler{})
	w.tokens = tokens
	w.idempotency = keys

	w.cleanupTokens(context.Background())
	w.cleanupIdempotency(context.Background())

	assert.Equal(t, 1, tokens.n)
	assert.Equal(t, 1, keys.n)
}
