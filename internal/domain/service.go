package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/tx"
	"ricemill/internal/core/types"
	"ricemill/internal/domain/audit"
	"ricemill/pkg/logger"
)

// EntryService provides business logic shared by all entry modules:
// mill scoping, validation, hooks, audit, the stock side effect and
// summary caching.
type EntryService[T entity.Entry] struct {
	desc      *Descriptor
	repo      EntryRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	stock     StockLedger
	stockQty  StockQuantity[T]
	cache     SummaryCache
	numerator Numerator
	audit     audit.Logger
}

// EntryServiceConfig configures the entry service.
// Stock, Cache, Numerator and Audit are optional.
type EntryServiceConfig[T entity.Entry] struct {
	Descriptor *Descriptor
	Repo       EntryRepository[T]
	TxManager  tx.Manager

	Stock         StockLedger
	StockQuantity StockQuantity[T]
	Cache         SummaryCache
	Numerator     Numerator
	Audit         audit.Logger
}

// EntryDeps bundles the collaborators every module service shares.
type EntryDeps struct {
	TxManager tx.Manager
	Stock     StockLedger
	Cache     SummaryCache
	Numerator Numerator
	Audit     audit.Logger
}

// NewModuleService wires a module service from its descriptor and shared deps.
func NewModuleService[T entity.Entry](desc *Descriptor, repo EntryRepository[T], qty StockQuantity[T], deps EntryDeps) *EntryService[T] {
	return NewEntryService(EntryServiceConfig[T]{
		Descriptor:    desc,
		Repo:          repo,
		TxManager:     deps.TxManager,
		Stock:         deps.Stock,
		StockQuantity: qty,
		Cache:         deps.Cache,
		Numerator:     deps.Numerator,
		Audit:         deps.Audit,
	})
}

// NewEntryService creates a new entry service.
func NewEntryService[T entity.Entry](cfg EntryServiceConfig[T]) *EntryService[T] {
	s := &EntryService[T]{
		desc:      cfg.Descriptor,
		repo:      cfg.Repo,
		txManager: cfg.TxManager,
		hooks:     NewHookRegistry[T](),
		stock:     cfg.Stock,
		stockQty:  cfg.StockQuantity,
		cache:     cfg.Cache,
		numerator: cfg.Numerator,
		audit:     cfg.Audit,
	}
	// Stock hooks are registered first so later hooks cannot skip them.
	if s.hasStock() {
		s.hooks.OnAfterCreate(s.recordStock)
		s.hooks.OnAfterUpdate(s.syncStock)
		s.hooks.OnAfterDelete(s.dropStock)
	}
	return s
}

// Descriptor returns the module descriptor.
func (s *EntryService[T]) Descriptor() *Descriptor {
	return s.desc
}

// Hooks returns the hook registry for external registration.
func (s *EntryService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *EntryService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *EntryService[T]) normalizeGetErr(err error, entryID id.ID) error {
	if err == nil {
		return nil
	}
	// Entries of other mills are reported exactly like missing ones.
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.desc.DisplayName, entryID.String())
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.desc.Entity).WithDetail("id", entryID.String())
}

// Create stores a new entry for the mill and returns it with the creator joined.
func (s *EntryService[T]) Create(ctx context.Context, millID id.ID, entry T) (T, error) {
	var zero T

	base := entry.Base()
	base.Init(millID)
	base.Date = types.TruncateDate(base.Date)
	audit.EnrichCreated(ctx, base)

	if err := s.assignNumber(ctx, millID, entry); err != nil {
		return zero, err
	}

	// 1. Validate entry invariants
	if n, ok := any(entry).(Normalizer); ok {
		n.Normalize()
	}
	if err := entry.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}

	// 2. Run before-create hooks
	if err := s.hooks.Run(ctx, BeforeCreate, entry); err != nil {
		return zero, err
	}

	// 3. Insert with its audit record
	var created T
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, entry); err != nil {
			return fmt.Errorf("create %s: %w", s.desc.Entity, err)
		}
		if err := s.writeAudit(ctx, millID, base.ID, audit.ActionCreate, nil, entry); err != nil {
			return err
		}
		var err error
		created, err = s.repo.GetByID(ctx, millID, base.ID)
		return err
	})
	if err != nil {
		return zero, err
	}

	// 4. Side effects after commit
	if err := s.hooks.Run(ctx, AfterCreate, created); err != nil {
		logger.Error(ctx, "after-create hook failed", "entity", s.desc.Entity, "id", base.ID, "error", err)
	}
	s.invalidateSummary(ctx, millID)

	logger.Info(ctx, strings.ToLower(s.desc.DisplayName)+" created", "id", base.ID)
	return created, nil
}

// GetByID returns one entry of the mill.
func (s *EntryService[T]) GetByID(ctx context.Context, millID, entryID id.ID) (T, error) {
	entry, err := s.repo.GetByID(ctx, millID, entryID)
	if err != nil {
		return entry, s.normalizeGetErr(err, entryID)
	}
	return entry, nil
}

// List returns one page of the mill's entries.
func (s *EntryService[T]) List(ctx context.Context, millID id.ID, q ListQuery) (ListResult[T], error) {
	filter, err := s.desc.BuildFilter(millID, q)
	if err != nil {
		return ListResult[T]{}, err
	}
	return s.repo.List(ctx, filter)
}

// Export returns up to MaxExportRows entries matching the list filters.
func (s *EntryService[T]) Export(ctx context.Context, millID id.ID, q ListQuery) ([]T, error) {
	filter, err := s.desc.BuildExportFilter(millID, q)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Summary aggregates the module's summary fields, zero-filled and rounded.
func (s *EntryService[T]) Summary(ctx context.Context, millID id.ID, rng types.DateRange) (Summary, error) {
	if err := rng.Validate(); err != nil {
		return nil, apperror.NewFieldValidation("startDate", err.Error())
	}

	key := rng.Key()
	cacheable := false
	var gen int64
	if s.cache != nil {
		cached, g, ok, err := s.cache.Get(ctx, millID, s.desc.Resource, key)
		switch {
		case err != nil:
			logger.Warn(ctx, "summary cache read failed", "resource", s.desc.Resource, "error", err)
		case ok:
			return s.desc.Normalize(cached), nil
		default:
			cacheable, gen = true, g
		}
	}

	raw, err := s.repo.Summary(ctx, millID, rng)
	if err != nil {
		return nil, err
	}
	summary := s.desc.Normalize(raw)

	if cacheable {
		if err := s.cache.Set(ctx, millID, s.desc.Resource, gen, key, summary); err != nil {
			logger.Warn(ctx, "summary cache write failed", "resource", s.desc.Resource, "error", err)
		}
	}
	return summary, nil
}

// Update loads the entry for update, applies the partial change and writes it back.
func (s *EntryService[T]) Update(ctx context.Context, millID, entryID id.ID, apply func(entry T) error) (T, error) {
	var updated T

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, millID, entryID)
		if err != nil {
			return s.normalizeGetErr(err, entryID)
		}

		before, err := json.Marshal(current)
		if err != nil {
			return apperror.NewInternal(err)
		}

		if err := apply(current); err != nil {
			return s.normalizeValidationErr(err)
		}

		base := current.Base()
		base.ID = entryID
		base.MillID = millID
		base.Date = types.TruncateDate(base.Date)
		base.Touch()
		audit.EnrichUpdated(ctx, base)

		if n, ok := any(current).(Normalizer); ok {
			n.Normalize()
		}
		if err := current.Validate(ctx); err != nil {
			return s.normalizeValidationErr(err)
		}
		if err := s.hooks.Run(ctx, BeforeUpdate, current); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, current); err != nil {
			return fmt.Errorf("update %s: %w", s.desc.Entity, err)
		}
		if err := s.writeAudit(ctx, millID, entryID, audit.ActionUpdate, json.RawMessage(before), current); err != nil {
			return err
		}

		updated, err = s.repo.GetByID(ctx, millID, entryID)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	if err := s.hooks.Run(ctx, AfterUpdate, updated); err != nil {
		logger.Error(ctx, "after-update hook failed", "entity", s.desc.Entity, "id", entryID, "error", err)
	}
	s.invalidateSummary(ctx, millID)

	logger.Info(ctx, strings.ToLower(s.desc.DisplayName)+" updated", "id", entryID)
	return updated, nil
}

// Delete removes one entry of the mill and its derived stock transaction.
func (s *EntryService[T]) Delete(ctx context.Context, millID, entryID id.ID) error {
	var deleted T

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, millID, entryID)
		if err != nil {
			return s.normalizeGetErr(err, entryID)
		}
		if err := s.hooks.Run(ctx, BeforeDelete, current); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, millID, entryID); err != nil {
			return s.normalizeGetErr(err, entryID)
		}
		deleted = current
		return s.writeAudit(ctx, millID, entryID, audit.ActionDelete, current, nil)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, AfterDelete, deleted); err != nil {
		logger.Error(ctx, "after-delete hook failed", "entity", s.desc.Entity, "id", entryID, "error", err)
	}
	s.invalidateSummary(ctx, millID)

	logger.Info(ctx, strings.ToLower(s.desc.DisplayName)+" deleted", "id", entryID)
	return nil
}

// BulkDelete removes the mill's entries among ids and returns how many were deleted.
// Unknown ids and ids of other mills are skipped.
func (s *EntryService[T]) BulkDelete(ctx context.Context, millID id.ID, ids []id.ID) (int, error) {
	if len(ids) == 0 || len(ids) > MaxBulkDelete {
		return 0, apperror.NewFieldValidation("ids", fmt.Sprintf("ids must contain 1 to %d items", MaxBulkDelete))
	}

	var deleted []id.ID
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.BulkDelete(ctx, millID, ids)
		if err != nil {
			return fmt.Errorf("bulk delete %s: %w", s.desc.Entity, err)
		}
		for _, entryID := range deleted {
			if err := s.writeAudit(ctx, millID, entryID, audit.ActionDelete, nil, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(deleted) > 0 {
		if s.hasStock() {
			if err := s.stock.DeleteByRefs(ctx, millID, s.desc.Entity, deleted); err != nil {
				logger.Error(ctx, "failed to delete stock transactions", "entity", s.desc.Entity, "count", len(deleted), "error", err)
			}
		}
		s.invalidateSummary(ctx, millID)
	}

	logger.Info(ctx, strings.ToLower(s.desc.DisplayName)+" bulk deleted", "requested", len(ids), "deleted", len(deleted))
	return len(deleted), nil
}

func (s *EntryService[T]) hasStock() bool {
	return s.stock != nil && s.desc.Stock != nil
}

func (s *EntryService[T]) recordStock(ctx context.Context, entry T) error {
	mv, ok := s.movement(entry)
	if !ok || !mv.Quantity.IsPositive() {
		return nil
	}
	if err := s.stock.Record(ctx, mv); err != nil {
		return fmt.Errorf("record stock transaction: %w", err)
	}
	return nil
}

func (s *EntryService[T]) syncStock(ctx context.Context, entry T) error {
	mv, ok := s.movement(entry)
	if !ok {
		return nil
	}
	if err := s.stock.SyncByRef(ctx, mv); err != nil {
		return fmt.Errorf("sync stock transaction: %w", err)
	}
	return nil
}

func (s *EntryService[T]) dropStock(ctx context.Context, entry T) error {
	base := entry.Base()
	if err := s.stock.DeleteByRef(ctx, base.MillID, s.desc.Entity, base.ID); err != nil {
		return fmt.Errorf("delete stock transaction: %w", err)
	}
	return nil
}

// movement builds the ledger movement of entry when the module has a stock effect.
func (s *EntryService[T]) movement(entry T) (entity.StockMovement, bool) {
	if !s.hasStock() || s.stockQty == nil {
		return entity.StockMovement{}, false
	}
	base := entry.Base()
	return entity.StockMovement{
		MillID:    base.MillID,
		Date:      base.Date,
		Commodity: s.desc.Stock.Commodity,
		Type:      s.desc.Stock.Type,
		Quantity:  s.stockQty(entry),
		RefModel:  s.desc.Entity,
		RefID:     base.ID,
		CreatedBy: base.CreatedBy,
	}, true
}

func (s *EntryService[T]) assignNumber(ctx context.Context, millID id.ID, entry T) error {
	if s.numerator == nil || s.desc.NumberPrefix == "" {
		return nil
	}
	numbered, ok := any(entry).(DealNumbered)
	if !ok {
		return nil
	}
	ref := numbered.DealNumberRef()
	if strings.TrimSpace(*ref) != "" {
		return nil
	}
	number, err := s.numerator.Next(ctx, millID, s.desc.NumberPrefix, entry.Base().Date)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("operation", "assign_deal_number")
	}
	*ref = number
	return nil
}

func (s *EntryService[T]) writeAudit(ctx context.Context, millID, entryID id.ID, action audit.Action, before, after any) error {
	if s.audit == nil {
		return nil
	}
	changes, err := audit.Snapshot(before, after)
	if err != nil {
		return apperror.NewInternal(err)
	}
	rec := audit.Record{
		MillID:     millID,
		EntityType: s.desc.Entity,
		EntityID:   entryID,
		Action:     action,
		Changes:    changes,
	}
	if uid := audit.CurrentUser(ctx); uid != nil {
		rec.UserID = uid.String()
	}
	if err := s.audit.Log(ctx, rec); err != nil {
		return fmt.Errorf("audit %s: %w", s.desc.Entity, err)
	}
	return nil
}

func (s *EntryService[T]) invalidateSummary(ctx context.Context, millID id.ID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, millID, s.desc.Resource); err != nil {
		logger.Warn(ctx, "summary cache invalidation failed", "resource", s.desc.Resource, "error", err)
	}
}
