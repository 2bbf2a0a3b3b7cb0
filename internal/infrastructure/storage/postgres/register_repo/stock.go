// Package register_repo provides the PostgreSQL stock ledger repository.
package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
	"ricemill/internal/domain/registers/stock"
	"ricemill/internal/infrastructure/storage/postgres"
)

const stockTable = "stock_transactions"

var stockColumns = []string{
	"id", "mill_id", "date", "commodity", "type", "quantity",
	"ref_model", "ref_id", "remarks", "created_by", "created_at", "updated_at",
}

// StockRepo implements stock.Repository.
type StockRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ stock.Repository = (*StockRepo)(nil)

// NewStockRepo creates a new stock ledger repository.
func NewStockRepo(txManager *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txManager: txManager,
		builder:   postgres.Builder(),
	}
}

func (r *StockRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *StockRepo) exec(ctx context.Context, q squirrel.Sqlizer, op string) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", op, err)
	}
	tag, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return tag.RowsAffected(), nil
}

func values(t *entity.StockTransaction) []any {
	return []any{
		t.ID, t.MillID, t.Date, t.Commodity, t.Type, t.Quantity,
		t.RefModel, t.RefID, t.Remarks, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}

func (r *StockRepo) upsertQuery(t *entity.StockTransaction) squirrel.InsertBuilder {
	return r.builder.Insert(stockTable).
		Columns(stockColumns...).
		Values(values(t)...).
		Suffix(`ON CONFLICT (ref_model, ref_id) DO UPDATE SET
			mill_id = EXCLUDED.mill_id,
			date = EXCLUDED.date,
			commodity = EXCLUDED.commodity,
			type = EXCLUDED.type,
			quantity = EXCLUDED.quantity,
			remarks = EXCLUDED.remarks,
			updated_at = EXCLUDED.updated_at`)
}

// Upsert inserts a derived row or updates the row of the same entry.
func (r *StockRepo) Upsert(ctx context.Context, t *entity.StockTransaction) error {
	_, err := r.exec(ctx, r.upsertQuery(t), "upsert stock transaction")
	return err
}

// Create inserts a manual row.
func (r *StockRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	q := r.builder.Insert(stockTable).Columns(stockColumns...).Values(values(t)...)
	_, err := r.exec(ctx, q, "insert stock transaction")
	return err
}

// GetByID retrieves a ledger row of the mill.
func (r *StockRepo) GetByID(ctx context.Context, millID, txnID id.ID) (*entity.StockTransaction, error) {
	sql, args, err := r.builder.Select(stockColumns...).
		From(stockTable).
		Where(squirrel.Eq{"id": txnID, "mill_id": millID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t entity.StockTransaction
	if err := pgxscan.Get(ctx, r.querier(ctx), &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Stock transaction", txnID.String())
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return &t, nil
}

// DeleteByID removes one row of the mill.
func (r *StockRepo) DeleteByID(ctx context.Context, millID, txnID id.ID) error {
	n, err := r.exec(ctx, r.builder.Delete(stockTable).
		Where(squirrel.Eq{"id": txnID, "mill_id": millID}), "delete stock transaction")
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NewNotFound("Stock transaction", txnID.String())
	}
	return nil
}

// DeleteByRef removes the derived row of an entry. Missing rows are not an error.
func (r *StockRepo) DeleteByRef(ctx context.Context, millID id.ID, refModel string, refID id.ID) error {
	_, err := r.exec(ctx, r.builder.Delete(stockTable).
		Where(squirrel.Eq{"mill_id": millID, "ref_model": refModel, "ref_id": refID}),
		"delete stock transaction by ref")
	return err
}

// DeleteByRefs removes the derived rows of several entries.
func (r *StockRepo) DeleteByRefs(ctx context.Context, millID id.ID, refModel string, refIDs []id.ID) error {
	if len(refIDs) == 0 {
		return nil
	}
	_, err := r.exec(ctx, r.builder.Delete(stockTable).
		Where(squirrel.Eq{"mill_id": millID, "ref_model": refModel}).
		Where("ref_id = ANY(?)", refIDs),
		"delete stock transactions by refs")
	return err
}

// DeleteByIDs removes rows by id.
func (r *StockRepo) DeleteByIDs(ctx context.Context, millID id.ID, ids []id.ID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.exec(ctx, r.builder.Delete(stockTable).
		Where(squirrel.Eq{"mill_id": millID}).
		Where("id = ANY(?)", ids),
		"delete stock transactions")
	return err
}

func (r *StockRepo) applyFilter(q squirrel.SelectBuilder, f stock.ListFilter) squirrel.SelectBuilder {
	q = q.Where(squirrel.Eq{"mill_id": f.MillID})
	if f.Commodity != nil {
		q = q.Where(squirrel.Eq{"commodity": *f.Commodity})
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"type": *f.Type})
	}
	if f.RefModel != "" {
		q = q.Where(squirrel.Eq{"ref_model": f.RefModel})
	}
	if f.RefID != nil {
		q = q.Where(squirrel.Eq{"ref_id": *f.RefID})
	}
	if f.DateRange.Start != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateRange.Start})
	}
	if f.DateRange.End != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateRange.End})
	}
	return q
}

// List retrieves one page of the ledger, newest first.
func (r *StockRepo) List(ctx context.Context, f stock.ListFilter) (domain.ListResult[*entity.StockTransaction], error) {
	result := domain.ListResult[*entity.StockTransaction]{
		Page:  f.Page,
		Limit: f.Limit,
		Items: []*entity.StockTransaction{},
	}

	countSQL, countArgs, err := r.applyFilter(r.builder.Select("COUNT(*)").From(stockTable), f).ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("count stock transactions: %w", err)
	}
	if result.Total == 0 || int64(f.Offset()) >= result.Total {
		return result, nil
	}

	sql, args, err := r.applyFilter(r.builder.Select(stockColumns...).From(stockTable), f).
		OrderBy("date DESC", "created_at DESC", "id").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset())).
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list stock transactions: %w", err)
	}
	return result, nil
}

func (r *StockRepo) balancesQuery(millID id.ID, asOf *time.Time) squirrel.SelectBuilder {
	q := r.builder.Select(
		"commodity",
		"COALESCE(SUM(quantity) FILTER (WHERE type = 'CREDIT'), 0) AS credit",
		"COALESCE(SUM(quantity) FILTER (WHERE type = 'DEBIT'), 0) AS debit",
		"0::numeric AS balance",
	).
		From(stockTable).
		Where(squirrel.Eq{"mill_id": millID}).
		GroupBy("commodity")
	if asOf != nil {
		q = q.Where(squirrel.LtOrEq{"date": *asOf})
	}
	return q
}

// Balances returns credit and debit totals per commodity up to asOf.
func (r *StockRepo) Balances(ctx context.Context, millID id.ID, asOf *time.Time) ([]entity.StockBalance, error) {
	sql, args, err := r.balancesQuery(millID, asOf).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build balances: %w", err)
	}

	var rows []entity.StockBalance
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("stock balances: %w", err)
	}
	return rows, nil
}

type expectedRow struct {
	ID        id.ID         `db:"id"`
	MillID    id.ID         `db:"mill_id"`
	Date      time.Time     `db:"date"`
	CreatedBy *id.ID        `db:"created_by"`
	Quantity  types.Measure `db:"quantity"`
}

func (r *StockRepo) expectedQuery(millID id.ID, src stock.Source) squirrel.SelectBuilder {
	return r.builder.Select(
		"id", "mill_id", "date", "created_by",
		fmt.Sprintf("(%s)::numeric AS quantity", src.Quantity),
	).
		From(src.Table).
		Where(squirrel.Eq{"mill_id": millID})
}

// ExpectedMovements reads what each entry of the source should hold in the ledger.
func (r *StockRepo) ExpectedMovements(ctx context.Context, millID id.ID, src stock.Source) ([]entity.StockMovement, error) {
	sql, args, err := r.expectedQuery(millID, src).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build expected: %w", err)
	}

	var rows []expectedRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("expected movements %s: %w", src.Table, err)
	}

	out := make([]entity.StockMovement, len(rows))
	for i, row := range rows {
		out[i] = entity.StockMovement{
			MillID:    row.MillID,
			Date:      row.Date,
			Commodity: src.Commodity,
			Type:      src.Type,
			Quantity:  row.Quantity,
			RefModel:  src.RefModel,
			RefID:     row.ID,
			CreatedBy: row.CreatedBy,
		}
	}
	return out, nil
}

// ListDerived returns all ledger rows of the mill with refModel.
func (r *StockRepo) ListDerived(ctx context.Context, millID id.ID, refModel string) ([]*entity.StockTransaction, error) {
	sql, args, err := r.builder.Select(stockColumns...).
		From(stockTable).
		Where(squirrel.Eq{"mill_id": millID, "ref_model": refModel}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []*entity.StockTransaction
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("derived rows: %w", err)
	}
	return rows, nil
}

// InsertMany bulk-inserts rows: COPY inside a transaction, multi-row INSERT otherwise.
func (r *StockRepo) InsertMany(ctx context.Context, txns []*entity.StockTransaction) error {
	if len(txns) == 0 {
		return nil
	}

	if r.txManager.GetTx(ctx) != nil {
		rows := make([][]any, len(txns))
		for i, t := range txns {
			rows[i] = values(t)
		}
		if _, err := postgres.NewBatchInserter(r.txManager).CopyFromSlice(ctx, stockTable, stockColumns, rows); err != nil {
			return fmt.Errorf("copy stock transactions: %w", err)
		}
		return nil
	}

	q := r.builder.Insert(stockTable).Columns(stockColumns...)
	for _, t := range txns {
		q = q.Values(values(t)...)
	}
	_, err := r.exec(ctx, q, "insert stock transactions")
	return err
}
