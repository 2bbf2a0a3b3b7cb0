package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/tx"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
	"ricemill/internal/domain/audit"
	"ricemill/pkg/logger"
)

// Service provides business operations for the stock ledger.
// It implements domain.StockLedger for the entry services.
type Service struct {
	repo      Repository
	txManager tx.Manager
	sources   []Source
}

var _ domain.StockLedger = (*Service)(nil)

// NewService creates a new stock ledger service.
// sources are the modules repaired by Reconcile.
func NewService(repo Repository, txManager tx.Manager, sources []Source) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		sources:   sources,
	}
}

func validateMovement(mv entity.StockMovement) error {
	switch {
	case id.IsNil(mv.MillID):
		return apperror.NewFieldValidation("millId", "millId is required")
	case !mv.Commodity.Valid():
		return apperror.NewFieldValidation("commodity", "unknown commodity")
	case !mv.Type.Valid():
		return apperror.NewFieldValidation("type", "type must be CREDIT or DEBIT")
	case !mv.Quantity.IsPositive():
		return apperror.NewFieldValidation("quantity", "quantity must be positive")
	case !types.InRange(mv.Quantity):
		return apperror.NewFieldValidation("quantity", "quantity must be at most "+types.MaxMeasure.String())
	case mv.RefModel == "" || id.IsNil(mv.RefID):
		return apperror.NewFieldValidation("refId", "refModel and refId are required")
	case mv.Date.IsZero():
		return apperror.NewFieldValidation("date", "date is required")
	}
	return nil
}

// Record stores the derived transaction of an entry.
// An existing row for the same entry is overwritten.
func (s *Service) Record(ctx context.Context, mv entity.StockMovement) error {
	if err := validateMovement(mv); err != nil {
		return err
	}
	txn := mv.ToTransaction()
	if err := s.repo.Upsert(ctx, txn); err != nil {
		return fmt.Errorf("record stock transaction: %w", err)
	}

	logger.Info(ctx, "stock transaction recorded",
		"ref_model", mv.RefModel,
		"ref_id", mv.RefID,
		"commodity", mv.Commodity,
		"type", mv.Type,
		"quantity", mv.Quantity.String(),
	)
	return nil
}

// SyncByRef makes the ledger follow an updated entry: upsert when the
// quantity is positive, delete otherwise.
func (s *Service) SyncByRef(ctx context.Context, mv entity.StockMovement) error {
	if !mv.Quantity.IsPositive() {
		return s.DeleteByRef(ctx, mv.MillID, mv.RefModel, mv.RefID)
	}
	return s.Record(ctx, mv)
}

// DeleteByRef removes the derived transaction of an entry. Missing rows are not an error.
func (s *Service) DeleteByRef(ctx context.Context, millID id.ID, refModel string, refID id.ID) error {
	if err := s.repo.DeleteByRef(ctx, millID, refModel, refID); err != nil {
		return fmt.Errorf("delete stock transaction: %w", err)
	}
	logger.Debug(ctx, "stock transaction deleted", "ref_model", refModel, "ref_id", refID)
	return nil
}

// DeleteByRefs removes the derived transactions of many entries.
func (s *Service) DeleteByRefs(ctx context.Context, millID id.ID, refModel string, refIDs []id.ID) error {
	if len(refIDs) == 0 {
		return nil
	}
	if err := s.repo.DeleteByRefs(ctx, millID, refModel, refIDs); err != nil {
		return fmt.Errorf("delete stock transactions: %w", err)
	}
	logger.Debug(ctx, "stock transactions deleted", "ref_model", refModel, "count", len(refIDs))
	return nil
}

// ListQuery is the raw ledger list input.
type ListQuery struct {
	Page      int
	Limit     int
	Commodity string
	Type      string
	RefModel  string
	RefID     string
	StartDate string
	EndDate   string
}

// BuildFilter validates q into a ListFilter.
func BuildFilter(millID id.ID, q ListQuery) (ListFilter, error) {
	f := ListFilter{MillID: millID, Page: q.Page, Limit: q.Limit, RefModel: strings.TrimSpace(q.RefModel)}
	if f.Page == 0 {
		f.Page = domain.DefaultPage
	}
	if f.Limit == 0 {
		f.Limit = domain.DefaultLimit
	}
	if f.Page < 1 {
		return f, apperror.NewFieldValidation("page", "page must be at least 1")
	}
	if f.Limit < 1 || f.Limit > domain.MaxLimit {
		return f, apperror.NewFieldValidation("limit", fmt.Sprintf("limit must be between 1 and %d", domain.MaxLimit))
	}

	if q.Commodity != "" {
		c := entity.Commodity(strings.ToUpper(q.Commodity))
		if !c.Valid() {
			return f, apperror.NewFieldValidation("commodity", "unknown commodity")
		}
		f.Commodity = &c
	}
	if q.Type != "" {
		t := entity.TransactionType(strings.ToUpper(q.Type))
		if !t.Valid() {
			return f, apperror.NewFieldValidation("type", "type must be CREDIT or DEBIT")
		}
		f.Type = &t
	}
	if q.RefID != "" {
		refID, err := id.Parse(q.RefID)
		if err != nil {
			return f, apperror.NewFieldValidation("refId", "refId must be a UUID")
		}
		f.RefID = &refID
	}

	rng, err := domain.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return f, err
	}
	f.DateRange = rng
	return f, nil
}

// List returns one page of the mill's ledger, newest first.
func (s *Service) List(ctx context.Context, millID id.ID, q ListQuery) (domain.ListResult[*entity.StockTransaction], error) {
	f, err := BuildFilter(millID, q)
	if err != nil {
		return domain.ListResult[*entity.StockTransaction]{}, err
	}
	return s.repo.List(ctx, f)
}

// Balance returns credit, debit and balance per commodity up to asOf.
// Every commodity is present, zero when it has no rows.
func (s *Service) Balance(ctx context.Context, millID id.ID, asOf *time.Time) ([]entity.StockBalance, error) {
	rows, err := s.repo.Balances(ctx, millID, asOf)
	if err != nil {
		return nil, fmt.Errorf("stock balances: %w", err)
	}
	return FillBalances(rows), nil
}

// FillBalances orders balances by commodity, zero-filling missing ones and
// recomputing the balance column.
func FillBalances(rows []entity.StockBalance) []entity.StockBalance {
	byCommodity := make(map[entity.Commodity]entity.StockBalance, len(rows))
	for _, r := range rows {
		byCommodity[r.Commodity] = r
	}
	out := make([]entity.StockBalance, 0, len(entity.Commodities))
	for _, c := range entity.Commodities {
		b, ok := byCommodity[c]
		if !ok {
			b = entity.StockBalance{Commodity: c, Credit: types.Zero(), Debit: types.Zero()}
		}
		b.Credit = types.Round2(b.Credit)
		b.Debit = types.Round2(b.Debit)
		b.Balance = b.Credit.Sub(b.Debit)
		out = append(out, b)
	}
	return out
}

// ManualInput is a hand-entered ledger adjustment.
type ManualInput struct {
	Date      time.Time
	Commodity entity.Commodity
	Type      entity.TransactionType
	Quantity  types.Measure
	Remarks   string
}

// CreateManual records a manual adjustment with refModel Manual.
func (s *Service) CreateManual(ctx context.Context, millID id.ID, in ManualInput) (*entity.StockTransaction, error) {
	mv := entity.StockMovement{
		MillID:    millID,
		Date:      types.TruncateDate(in.Date),
		Commodity: in.Commodity,
		Type:      in.Type,
		Quantity:  in.Quantity,
		RefModel:  entity.RefModelManual,
		RefID:     id.New(),
		Remarks:   strings.TrimSpace(in.Remarks),
		CreatedBy: audit.CurrentUser(ctx),
	}
	if err := validateMovement(mv); err != nil {
		return nil, err
	}

	txn := mv.ToTransaction()
	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("create manual stock transaction: %w", err)
	}

	logger.Info(ctx, "manual stock transaction created", "id", txn.ID, "commodity", txn.Commodity, "type", txn.Type)
	return txn, nil
}

// DeleteManual removes a manual adjustment. Derived rows follow their entry
// and cannot be deleted directly.
func (s *Service) DeleteManual(ctx context.Context, millID, txnID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		txn, err := s.repo.GetByID(ctx, millID, txnID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("Stock transaction", txnID.String())
			}
			return err
		}
		if txn.RefModel != entity.RefModelManual {
			return apperror.NewBusinessRule("DERIVED_TRANSACTION",
				"stock transaction is derived from an entry; change the entry instead").
				WithDetail("refModel", txn.RefModel).
				WithDetail("refId", txn.RefID.String())
		}
		if err := s.repo.DeleteByID(ctx, millID, txnID); err != nil {
			return fmt.Errorf("delete manual stock transaction: %w", err)
		}
		logger.Info(ctx, "manual stock transaction deleted", "id", txnID)
		return nil
	})
}
