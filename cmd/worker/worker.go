package main

import (
	"context"
	"time"

	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
	"ricemill/internal/domain/registers/stock"
	"ricemill/pkg/logger"
)

const jobReconcile = "reconcile"

// MillLister returns the mills to reconcile.
type MillLister interface {
	ListActive(ctx context.Context) ([]*mill.Mill, error)
}

// Reconciler repairs one mill's ledger.
type Reconciler interface {
	Reconcile(ctx context.Context, millID id.ID) (stock.ReconcileResult, error)
}

// Locker runs fn while holding a per-mill lock; ran is false when another
// worker holds it.
type Locker interface {
	WithLock(ctx context.Context, job string, millID id.ID, fn func(ctx context.Context) error) (ran bool, err error)
}

type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

type IdempotencyCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// noLock is used without Redis: a single worker process is assumed.
type noLock struct{}

func (noLock) WithLock(ctx context.Context, _ string, _ id.ID, fn func(ctx context.Context) error) (bool, error) {
	return true, fn(ctx)
}

// Worker runs the periodic jobs.
type Worker struct {
	mills       MillLister
	ledger      Reconciler
	tokens      TokenCleaner
	idempotency IdempotencyCleaner
	locker      Locker
	log         *logger.Logger
	// stats is optional and runs on the cleanup tick.
	stats func(ctx context.Context)

	interval time.Duration
	cleanup  time.Duration
}

// Run reconciles once at start, then on every tick until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	ctx = logger.WithLogger(ctx, w.log)

	reconcileTicker := time.NewTicker(w.interval)
	defer reconcileTicker.Stop()

	cleanupTicker := time.NewTicker(w.cleanup)
	defer cleanupTicker.Stop()

	w.reconcileAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-reconcileTicker.C:
			w.reconcileAll(ctx)
		case <-cleanupTicker.C:
			w.cleanupTokens(ctx)
			w.cleanupIdempotency(ctx)
			if w.stats != nil {
				w.stats(ctx)
			}
		}
	}
}

// reconcileAll repairs every active mill. One mill failing does not stop the others.
func (w *Worker) reconcileAll(ctx context.Context) {
	mills, err := w.mills.ListActive(ctx)
	if err != nil {
		w.log.Errorw("failed to list active mills", "error", err)
		return
	}

	for _, m := range mills {
		if ctx.Err() != nil {
			return
		}
		w.reconcileMill(ctx, m)
	}
}

func (w *Worker) reconcileMill(ctx context.Context, m *mill.Mill) {
	var res stock.ReconcileResult
	ran, err := w.locker.WithLock(ctx, jobReconcile, m.ID, func(ctx context.Context) error {
		var err error
		res, err = w.ledger.Reconcile(ctx, m.ID)
		return err
	})
	switch {
	case err != nil:
		w.log.Errorw("stock reconcile failed", "mill_id", m.ID, "mill_code", m.Code, "error", err)
	case !ran:
		w.log.Debugw("stock reconcile skipped, lock held elsewhere", "mill_id", m.ID)
	case res.Changed():
		w.log.Infow("stock ledger repaired", "mill_id", m.ID, "mill_code", m.Code,
			"inserted", res.Inserted, "updated", res.Updated, "deleted", res.Deleted)
	}
}

func (w *Worker) cleanupTokens(ctx context.Context) {
	n, err := w.tokens.CleanupExpiredTokens(ctx)
	if err != nil {
		w.log.Warnw("failed to clean up refresh tokens", "error", err)
		return
	}
	if n > 0 {
		w.log.Infow("cleaned up expired sessions", "count", n)
	}
}

func (w *Worker) cleanupIdempotency(ctx context.Context) {
	n, err := w.idempotency.CleanupExpired(ctx)
	if err != nil {
		w.log.Warnw("failed to clean up idempotency keys", "error", err)
		return
	}
	if n > 0 {
		w.log.Infow("cleaned up idempotency keys", "count", n)
	}
}
