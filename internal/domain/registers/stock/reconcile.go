package stock

import (
	"context"
	"fmt"
	"time"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/pkg/logger"
)

// ReconcileResult counts the repairs made for one mill.
type ReconcileResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
}

// Changed reports whether anything was repaired.
func (r ReconcileResult) Changed() bool {
	return r.Inserted+r.Updated+r.Deleted > 0
}

func (r *ReconcileResult) add(o ReconcileResult) {
	r.Inserted += o.Inserted
	r.Updated += o.Updated
	r.Deleted += o.Deleted
}

// repairPlan is the difference between what entries expect and what the ledger holds.
type repairPlan struct {
	insert []*entity.StockTransaction
	update []*entity.StockTransaction
	delete []id.ID
}

// planRepair compares expected movements of one source with its ledger rows.
// Entries with zero quantity expect no row.
func planRepair(expected []entity.StockMovement, existing []*entity.StockTransaction) repairPlan {
	var plan repairPlan

	byRef := make(map[id.ID]*entity.StockTransaction, len(existing))
	for _, txn := range existing {
		if dup, ok := byRef[txn.RefID]; ok {
			// keep one row per entry
			plan.delete = append(plan.delete, dup.ID)
		}
		byRef[txn.RefID] = txn
	}

	seen := make(map[id.ID]bool, len(expected))
	for _, mv := range expected {
		seen[mv.RefID] = true
		txn, ok := byRef[mv.RefID]

		switch {
		case !mv.Quantity.IsPositive():
			if ok {
				plan.delete = append(plan.delete, txn.ID)
			}
		case !ok:
			plan.insert = append(plan.insert, mv.ToTransaction())
		case drifted(txn, mv):
			txn.Date = mv.Date
			txn.Quantity = mv.Quantity
			txn.Commodity = mv.Commodity
			txn.Type = mv.Type
			txn.UpdatedAt = time.Now().UTC()
			plan.update = append(plan.update, txn)
		}
	}

	for refID, txn := range byRef {
		if !seen[refID] {
			plan.delete = append(plan.delete, txn.ID)
		}
	}
	return plan
}

func drifted(txn *entity.StockTransaction, mv entity.StockMovement) bool {
	return !txn.Quantity.Equal(mv.Quantity) ||
		!txn.Date.Equal(mv.Date) ||
		txn.Commodity != mv.Commodity ||
		txn.Type != mv.Type
}

// Reconcile repairs ledger drift of one mill left by best-effort side effects:
// missing rows are inserted, drifted rows updated and orphaned rows deleted.
//
// Entries and ledger rows of a source are read from one snapshot, so an entry
// created or deleted while the worker runs is seen together with its ledger
// row or not at all. A repair that collides with a concurrent write fails
// with a serialization error and is retried on the next run.
func (s *Service) Reconcile(ctx context.Context, millID id.ID) (ReconcileResult, error) {
	var total ReconcileResult

	for _, src := range s.sources {
		var res ReconcileResult
		err := s.txManager.RunInSnapshot(ctx, func(ctx context.Context) error {
			expected, err := s.repo.ExpectedMovements(ctx, millID, src)
			if err != nil {
				return fmt.Errorf("expected movements %s: %w", src.RefModel, err)
			}
			existing, err := s.repo.ListDerived(ctx, millID, src.RefModel)
			if err != nil {
				return fmt.Errorf("derived rows %s: %w", src.RefModel, err)
			}

			plan := planRepair(expected, existing)

			if len(plan.insert) > 0 {
				if err := s.repo.InsertMany(ctx, plan.insert); err != nil {
					return fmt.Errorf("insert missing %s: %w", src.RefModel, err)
				}
			}
			for _, txn := range plan.update {
				if err := s.repo.Upsert(ctx, txn); err != nil {
					return fmt.Errorf("fix drifted %s: %w", src.RefModel, err)
				}
			}
			if len(plan.delete) > 0 {
				if err := s.repo.DeleteByIDs(ctx, millID, plan.delete); err != nil {
					return fmt.Errorf("delete orphaned %s: %w", src.RefModel, err)
				}
			}

			res = ReconcileResult{Inserted: len(plan.insert), Updated: len(plan.update), Deleted: len(plan.delete)}
			return nil
		})
		if err != nil {
			return total, err
		}

		if res.Changed() {
			logger.Warn(ctx, "stock ledger drift repaired",
				"ref_model", src.RefModel,
				"inserted", res.Inserted,
				"updated", res.Updated,
				"deleted", res.Deleted,
			)
		}
		total.add(res)
	}

	return total, nil
}
