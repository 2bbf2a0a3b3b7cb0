package auth

import (
	"context"

	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves user by normalized email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates user data.
	Update(ctx context.Context, user *User) error

	// List retrieves users with filtering.
	List(ctx context.Context, filter UserFilter) ([]User, int, error)

	// LoadMills loads the ids of mills assigned to the user.
	LoadMills(ctx context.Context, userID id.ID) ([]string, error)

	// SetMills replaces the user's mill assignments.
	SetMills(ctx context.Context, userID id.ID, millIDs []id.ID) error

	// Exists checks if email exists.
	Exists(ctx context.Context, email string) (bool, error)
}

// TokenRepository defines token storage operations.
type TokenRepository interface {
	// SaveRefreshToken saves a refresh token.
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error

	// ConsumeRefreshToken atomically revokes an unexpired, unrevoked token
	// by hash and returns it. A second call with the same hash fails.
	ConsumeRefreshToken(ctx context.Context, tokenHash, reason string) (*RefreshToken, error)

	// RevokeAllUserTokens revokes all tokens for a user.
	RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error

	// CleanupExpiredTokens removes expired and revoked tokens.
	CleanupExpiredTokens(ctx context.Context) (int, error)
}

// MillLookup resolves mills for assignment checks. mill.Registry satisfies it.
type MillLookup interface {
	List(ctx context.Context, ids []id.ID) ([]*mill.Mill, error)
}

// UserFilter for listing users.
type UserFilter struct {
	Search   string
	Role     string
	IsActive *bool
	Limit    int
	Offset   int
}
