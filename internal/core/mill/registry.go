package mill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ricemill/internal/core/id"
)

// Registry provides access to mills.
type Registry interface {
	GetByID(ctx context.Context, millID id.ID) (*Mill, error)

	// List returns mills ordered by code; a non-nil ids slice restricts the result.
	List(ctx context.Context, ids []id.ID) ([]*Mill, error)

	ListActive(ctx context.Context) ([]*Mill, error)

	// Create inserts a new mill row.
	Create(ctx context.Context, m *Mill) error

	// Update saves name, address and gst number.
	Update(ctx context.Context, m *Mill) error

	UpdateStatus(ctx context.Context, millID id.ID, status Status) error
}

// PostgresRegistry implements Registry on the main database.
type PostgresRegistry struct {
	pool *pgxpool.Pool
}

func NewPostgresRegistry(pool *pgxpool.Pool) *PostgresRegistry {
	return &PostgresRegistry{pool: pool}
}

const millColumns = `id, code, name, address, gst_number, status, created_at, updated_at`

func (r *PostgresRegistry) GetByID(ctx context.Context, millID id.ID) (*Mill, error) {
	var m Mill
	err := pgxscan.Get(ctx, r.pool, &m, `SELECT `+millColumns+` FROM mills WHERE id = $1`, millID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrMillNotFound
		}
		return nil, fmt.Errorf("get mill by id: %w", err)
	}
	return &m, nil
}

func (r *PostgresRegistry) List(ctx context.Context, ids []id.ID) ([]*Mill, error) {
	var mills []*Mill
	var err error
	if ids == nil {
		err = pgxscan.Select(ctx, r.pool, &mills, `SELECT `+millColumns+` FROM mills ORDER BY code`)
	} else {
		err = pgxscan.Select(ctx, r.pool, &mills, `SELECT `+millColumns+` FROM mills WHERE id = ANY($1) ORDER BY code`, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("list mills: %w", err)
	}
	return mills, nil
}

func (r *PostgresRegistry) ListActive(ctx context.Context) ([]*Mill, error) {
	var mills []*Mill
	err := pgxscan.Select(ctx, r.pool, &mills, `
		SELECT `+millColumns+`
		FROM mills
		WHERE status = $1
		ORDER BY code
	`, StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active mills: %w", err)
	}
	return mills, nil
}

func (r *PostgresRegistry) Create(ctx context.Context, m *Mill) error {
	if m == nil {
		return fmt.Errorf("mill is nil")
	}
	if id.IsNil(m.ID) {
		m.ID = id.New()
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO mills (id, code, name, address, gst_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, m.ID, m.Code, m.Name, m.Address, m.GSTNumber, m.Status, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("create mill: %w", err)
	}
	return nil
}

func (r *PostgresRegistry) Update(ctx context.Context, m *Mill) error {
	m.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, `
		UPDATE mills
		SET name = $2, address = $3, gst_number = $4, updated_at = $5
		WHERE id = $1
	`, m.ID, m.Name, m.Address, m.GSTNumber, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update mill: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMillNotFound
	}
	return nil
}

func (r *PostgresRegistry) UpdateStatus(ctx context.Context, millID id.ID, status Status) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE mills
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, millID, status)
	if err != nil {
		return fmt.Errorf("update mill status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMillNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Registry = (*PostgresRegistry)(nil)
