// Package entry_repo provides the PostgreSQL repository shared by every entry module.
package entry_repo

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/types"
	"ricemill/internal/domain"
	"ricemill/internal/infrastructure/storage/postgres"
)

// entryAlias is the table alias used in every select.
const entryAlias = "e"

// immutable columns are never overwritten by Update.
var immutable = []string{"id", "mill_id", "created_at", "created_by"}

// Repo implements domain.EntryRepository for one module table.
type Repo[T entity.Entry] struct {
	txManager *postgres.TxManager
	desc      *domain.Descriptor
	columns   []string
	newFn     func() T
}

// New creates a repository for the module described by desc.
// newFn must return a pointer to a zero entry.
func New[T entity.Entry](txManager *postgres.TxManager, desc *domain.Descriptor, newFn func() T) *Repo[T] {
	return &Repo[T]{
		txManager: txManager,
		desc:      desc,
		columns:   postgres.ExtractDBColumns[T](),
		newFn:     newFn,
	}
}

func (r *Repo[T]) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

func (r *Repo[T]) qualified() []string {
	cols := make([]string, len(r.columns))
	for i, c := range r.columns {
		cols[i] = entryAlias + "." + c
	}
	return cols
}

// baseSelect selects the entry with its creator joined as created_by_user.*.
func (r *Repo[T]) baseSelect() squirrel.SelectBuilder {
	cols := append(r.qualified(),
		`u.id AS "created_by_user.id"`,
		`u.name AS "created_by_user.name"`,
		`u.email AS "created_by_user.email"`,
	)
	return postgres.Builder().
		Select(cols...).
		From(r.desc.Table + " " + entryAlias).
		LeftJoin("users u ON u.id = " + entryAlias + ".created_by")
}

func (r *Repo[T]) scoped(q squirrel.SelectBuilder, millID id.ID) squirrel.SelectBuilder {
	return q.Where(squirrel.Eq{entryAlias + ".mill_id": millID})
}

func (r *Repo[T]) notFound(entryID id.ID) error {
	return apperror.NewNotFound(r.desc.DisplayName, entryID.String())
}

// Create inserts a new entry.
func (r *Repo[T]) Create(ctx context.Context, entry T) error {
	data := postgres.PickColumns(postgres.StructToMap(entry), r.columns)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in %s", r.desc.Entity)
	}

	sql, args, err := postgres.Builder().
		Insert(r.desc.Table).
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if appErr, ok := postgres.AsValueError(err); ok {
			return appErr
		}
		return fmt.Errorf("insert %s: %w", r.desc.Table, err)
	}
	return nil
}

// GetByID retrieves an entry with its creator.
func (r *Repo[T]) GetByID(ctx context.Context, millID, entryID id.ID) (T, error) {
	q := r.scoped(r.baseSelect(), millID).
		Where(squirrel.Eq{entryAlias + ".id": entryID})
	return r.getOne(ctx, q, entryID)
}

// GetForUpdate locks the entry row. The creator join is skipped: FOR UPDATE
// cannot lock the nullable side of an outer join.
func (r *Repo[T]) GetForUpdate(ctx context.Context, millID, entryID id.ID) (T, error) {
	q := postgres.Builder().
		Select(r.qualified()...).
		From(r.desc.Table + " " + entryAlias)
	q = r.scoped(q, millID).
		Where(squirrel.Eq{entryAlias + ".id": entryID}).
		Suffix("FOR UPDATE")
	return r.getOne(ctx, q, entryID)
}

func (r *Repo[T]) getOne(ctx context.Context, q squirrel.SelectBuilder, entryID id.ID) (T, error) {
	entry := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entry, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entry, r.notFound(entryID)
		}
		return entry, fmt.Errorf("get %s: %w", r.desc.Table, err)
	}
	return entry, nil
}

// Update overwrites all mutable columns of the entry.
func (r *Repo[T]) Update(ctx context.Context, entry T) error {
	base := entry.Base()
	data := postgres.PickColumns(postgres.StructToMap(entry), r.columns, immutable...)

	sql, args, err := postgres.Builder().
		Update(r.desc.Table).
		SetMap(data).
		Where(squirrel.Eq{"id": base.ID, "mill_id": base.MillID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if appErr, ok := postgres.AsValueError(err); ok {
			return appErr
		}
		return fmt.Errorf("update %s: %w", r.desc.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(base.ID)
	}
	return nil
}

// Delete physically removes an entry.
func (r *Repo[T]) Delete(ctx context.Context, millID, entryID id.ID) error {
	sql, args, err := postgres.Builder().
		Delete(r.desc.Table).
		Where(squirrel.Eq{"id": entryID, "mill_id": millID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.desc.Table, err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(entryID)
	}
	return nil
}

// BulkDelete removes the entries of the mill among ids. Unknown and foreign ids are skipped.
func (r *Repo[T]) BulkDelete(ctx context.Context, millID id.ID, ids []id.ID) ([]id.ID, error) {
	if len(ids) == 0 {
		return []id.ID{}, nil
	}

	sql, args, err := r.bulkDeleteQuery(millID, ids).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bulk delete: %w", err)
	}

	var deleted []id.ID
	if err := pgxscan.Select(ctx, r.querier(ctx), &deleted, sql, args...); err != nil {
		return nil, fmt.Errorf("bulk delete %s: %w", r.desc.Table, err)
	}
	if deleted == nil {
		deleted = []id.ID{}
	}
	return deleted, nil
}

func (r *Repo[T]) bulkDeleteQuery(millID id.ID, ids []id.ID) squirrel.DeleteBuilder {
	return postgres.Builder().
		Delete(r.desc.Table).
		Where(squirrel.Eq{"mill_id": millID}).
		Where("id = ANY(?)", ids).
		Suffix("RETURNING id")
}

// applyFilter adds mill scope, search, field filters and the date range.
func (r *Repo[T]) applyFilter(q squirrel.SelectBuilder, f domain.ListFilter) squirrel.SelectBuilder {
	q = r.scoped(q, f.MillID)

	if f.Search != "" && len(f.SearchColumns) > 0 {
		or := make(squirrel.Or, 0, len(f.SearchColumns))
		for _, col := range f.SearchColumns {
			or = append(or, postgres.Contains(entryAlias+"."+col, f.Search))
		}
		q = q.Where(or)
	}

	for _, col := range sortedKeys(f.Fields) {
		q = q.Where(postgres.Contains(entryAlias+"."+col, f.Fields[col]))
	}

	if f.DateRange.Start != nil {
		q = q.Where(squirrel.GtOrEq{entryAlias + ".date": *f.DateRange.Start})
	}
	if f.DateRange.End != nil {
		q = q.Where(squirrel.LtOrEq{entryAlias + ".date": *f.DateRange.End})
	}
	return q
}

func (r *Repo[T]) orderBy(f domain.ListFilter) []string {
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	order := []string{entryAlias + "." + f.SortColumn + " " + dir}
	if f.SortColumn != "created_at" {
		order = append(order, entryAlias+".created_at DESC")
	}
	return append(order, entryAlias+".id")
}

// countQuery counts filtered rows without the join.
func (r *Repo[T]) countQuery(f domain.ListFilter) squirrel.SelectBuilder {
	q := postgres.Builder().
		Select("COUNT(*)").
		From(r.desc.Table + " " + entryAlias)
	return r.applyFilter(q, f)
}

func (r *Repo[T]) listQuery(f domain.ListFilter) squirrel.SelectBuilder {
	return r.applyFilter(r.baseSelect(), f).
		OrderBy(r.orderBy(f)...).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset()))
}

// List retrieves one page. The total is independent of page and limit.
func (r *Repo[T]) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{Page: f.Page, Limit: f.Limit, Items: []T{}}

	countSQL, countArgs, err := r.countQuery(f).ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&result.Total); err != nil {
		return result, fmt.Errorf("count %s: %w", r.desc.Table, err)
	}

	if result.Total == 0 || int64(f.Offset()) >= result.Total {
		return result, nil
	}

	sql, args, err := r.listQuery(f).ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, r.querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", r.desc.Table, err)
	}
	return result, nil
}

func (r *Repo[T]) summaryQuery(millID id.ID, rng types.DateRange) squirrel.SelectBuilder {
	cols := make([]string, 0, len(r.desc.Summary)+1)
	cols = append(cols, fmt.Sprintf(`COUNT(*)::numeric AS "%s"`, domain.TotalEntriesKey))
	for _, s := range r.desc.Summary {
		expr := s.Column
		if s.Times != "" {
			expr = s.Column + " * " + s.Times
		}
		cols = append(cols, fmt.Sprintf(`COALESCE(SUM(%s), 0) AS "%s"`, expr, s.Key))
	}

	q := postgres.Builder().
		Select(cols...).
		From(r.desc.Table).
		Where(squirrel.Eq{"mill_id": millID})
	if rng.Start != nil {
		q = q.Where(squirrel.GtOrEq{"date": *rng.Start})
	}
	if rng.End != nil {
		q = q.Where(squirrel.LtOrEq{"date": *rng.End})
	}
	return q
}

// Summary aggregates the module's summary fields over the mill and range.
func (r *Repo[T]) Summary(ctx context.Context, millID id.ID, rng types.DateRange) (domain.Summary, error) {
	sql, args, err := r.summaryQuery(millID, rng).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summary: %w", err)
	}

	keys := append([]string{domain.TotalEntriesKey}, summaryKeys(r.desc)...)
	values := make([]types.Measure, len(keys))
	dest := make([]any, len(keys))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		return nil, fmt.Errorf("summary %s: %w", r.desc.Table, err)
	}

	out := make(domain.Summary, len(keys))
	for i, k := range keys {
		out[k] = values[i]
	}
	return out, nil
}

func summaryKeys(desc *domain.Descriptor) []string {
	keys := make([]string, len(desc.Summary))
	for i, s := range desc.Summary {
		keys[i] = s.Key
	}
	return keys
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
