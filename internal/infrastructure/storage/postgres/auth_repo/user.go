// Package auth_repo provides PostgreSQL implementations for auth repositories.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"ricemill/internal/core/id"
	"ricemill/internal/domain/auth"
	"ricemill/internal/infrastructure/storage/postgres"
)

const userColumns = `id, email, password_hash, name, role, is_active,
	last_login_at, failed_login_attempts, locked_until, created_at, updated_at`

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txManager *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{txManager: txManager}
}

func (r *UserRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	_, err := r.querier(ctx).Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*auth.User, error) {
	var user auth.User
	err := pgxscan.Get(ctx, r.querier(ctx), &user, `SELECT `+userColumns+` FROM users WHERE `+where+` = $1`, arg)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getOne(ctx, "id", userID)
}

// GetByEmail retrieves user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.getOne(ctx, "email", email)
}

// Update saves profile, status and login bookkeeping.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	tag, err := r.querier(ctx).Exec(ctx, `
		UPDATE users SET
			name = $2, role = $3, is_active = $4,
			last_login_at = $5, failed_login_attempts = $6, locked_until = $7,
			updated_at = NOW()
		WHERE id = $1
	`, user.ID, user.Name, user.Role, user.IsActive,
		user.LastLoginAt, user.FailedLoginAttempts, user.LockedUntil)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func listQuery(filter auth.UserFilter) squirrel.SelectBuilder {
	q := postgres.Builder().Select().From("users")
	if filter.Search != "" {
		q = q.Where(squirrel.Or{
			postgres.Contains("email", filter.Search),
			postgres.Contains("name", filter.Search),
		})
	}
	if filter.Role != "" {
		q = q.Where(squirrel.Eq{"role": filter.Role})
	}
	if filter.IsActive != nil {
		q = q.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}
	return q
}

// List retrieves users ordered by email.
func (r *UserRepo) List(ctx context.Context, filter auth.UserFilter) ([]auth.User, int, error) {
	base := listQuery(filter)

	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.querier(ctx).QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	sql, args, err := base.Column(userColumns).
		OrderBy("email").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	users := []auth.User{}
	if err := pgxscan.Select(ctx, r.querier(ctx), &users, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// LoadMills returns the ids of mills assigned to the user.
func (r *UserRepo) LoadMills(ctx context.Context, userID id.ID) ([]string, error) {
	var ids []id.ID
	err := pgxscan.Select(ctx, r.querier(ctx), &ids,
		`SELECT mill_id FROM user_mills WHERE user_id = $1 ORDER BY mill_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("load user mills: %w", err)
	}
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out, nil
}

// SetMills replaces the user's mill assignments.
func (r *UserRepo) SetMills(ctx context.Context, userID id.ID, millIDs []id.ID) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		q := r.querier(ctx)
		if _, err := q.Exec(ctx, `DELETE FROM user_mills WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear user mills: %w", err)
		}
		if len(millIDs) == 0 {
			return nil
		}
		_, err := q.Exec(ctx, `
			INSERT INTO user_mills (user_id, mill_id)
			SELECT $1, unnest($2::uuid[])
		`, userID, millIDs)
		if err != nil {
			return fmt.Errorf("insert user mills: %w", err)
		}
		return nil
	})
}

// HasMillAccess reports whether the user is active and is either an admin
// or assigned to the mill, as stored now rather than as signed into a token.
func (r *UserRepo) HasMillAccess(ctx context.Context, userID, millID id.ID) (bool, error) {
	var ok bool
	err := r.querier(ctx).QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM users u
			WHERE u.id = $1 AND u.is_active
			  AND (u.role = 'admin' OR EXISTS(
				SELECT 1 FROM user_mills um WHERE um.user_id = u.id AND um.mill_id = $2))
		)`, userID, millID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check mill access: %w", err)
	}
	return ok, nil
}

// Exists checks if email exists.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.querier(ctx).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

var _ auth.UserRepository = (*UserRepo)(nil)
