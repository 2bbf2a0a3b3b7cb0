package auth_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
	"ricemill/internal/domain/auth"
	"ricemill/internal/infrastructure/storage/postgres"
)

// TokenRepo implements auth.TokenRepository.
type TokenRepo struct {
	txManager *postgres.TxManager
}

// NewTokenRepo creates a new token repository.
func NewTokenRepo(txManager *postgres.TxManager) *TokenRepo {
	return &TokenRepo{txManager: txManager}
}

// SaveRefreshToken saves a refresh token.
func (r *TokenRepo) SaveRefreshToken(ctx context.Context, token *auth.RefreshToken) error {
	_, err := r.txManager.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, token.ID, token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// ConsumeRefreshToken revokes the live token with the hash and returns it.
// Concurrent calls with the same hash get at most one row back.
func (r *TokenRepo) ConsumeRefreshToken(ctx context.Context, tokenHash, reason string) (*auth.RefreshToken, error) {
	var token auth.RefreshToken
	err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &token, consumeTokenSQL, tokenHash, reason)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("Refresh token", nil)
		}
		return nil, fmt.Errorf("consume token: %w", err)
	}
	return &token, nil
}

const consumeTokenSQL = `
	UPDATE refresh_tokens SET revoked_at = now(), revoked_reason = $2
	WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > now()
	RETURNING id, user_id, token_hash, expires_at, created_at, revoked_at, revoked_reason`

// RevokeAllUserTokens revokes all tokens for a user.
func (r *TokenRepo) RevokeAllUserTokens(ctx context.Context, userID id.ID, reason string) error {
	_, err := r.txManager.GetQuerier(ctx).Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now(), revoked_reason = $2 WHERE user_id = $1 AND revoked_at IS NULL`,
		userID, reason)
	if err != nil {
		return fmt.Errorf("revoke all tokens: %w", err)
	}
	return nil
}

// CleanupExpiredTokens removes expired tokens and tokens revoked more than 7 days ago.
func (r *TokenRepo) CleanupExpiredTokens(ctx context.Context) (int, error) {
	result, err := r.txManager.GetQuerier(ctx).Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < now() OR revoked_at < now() - INTERVAL '7 days'`)
	if err != nil {
		return 0, fmt.Errorf("cleanup tokens: %w", err)
	}
	return int(result.RowsAffected()), nil
}

var _ auth.TokenRepository = (*TokenRepo)(nil)
