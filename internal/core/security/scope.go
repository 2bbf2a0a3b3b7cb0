// Package security provides authorization and access control.
package security

import (
	"context"
	"slices"

	"ricemill/internal/core/apperror"
	appctx "ricemill/internal/core/context"
)

// AccessScope defines the boundaries of data visibility for the current request.
type AccessScope struct {
	UserID string
	Role   string

	// AllowedMillIDs limits a staff user to assigned mills.
	// Empty = no access (unless admin).
	AllowedMillIDs []string
}

// NewAccessScope creates AccessScope from context.
func NewAccessScope(ctx context.Context) *AccessScope {
	user := appctx.GetUser(ctx)
	if user == nil {
		return &AccessScope{}
	}

	return &AccessScope{
		UserID:         user.UserID,
		Role:           user.Role,
		AllowedMillIDs: user.MillIDs,
	}
}

// IsAdmin reports whether the scope bypasses mill assignment.
func (s *AccessScope) IsAdmin() bool {
	return s.Role == appctx.RoleAdmin
}

// CanAccessMill checks if user can work with the mill.
func (s *AccessScope) CanAccessMill(millID string) bool {
	if s.IsAdmin() {
		return true
	}
	return slices.Contains(s.AllowedMillIDs, millID)
}

// RequireMillAccess returns a forbidden error when the mill is outside the scope.
func (s *AccessScope) RequireMillAccess(millID string) error {
	if s.UserID == "" {
		return apperror.NewUnauthorized("authentication required")
	}
	if !s.CanAccessMill(millID) {
		return apperror.NewForbidden("no access to this mill").WithDetail("millId", millID)
	}
	return nil
}

// RequireAdmin returns a forbidden error for non-admin users.
func (s *AccessScope) RequireAdmin() error {
	if !s.IsAdmin() {
		return apperror.NewForbidden("admin role required")
	}
	return nil
}

// VisibleMillIDs returns nil for admins (all mills), otherwise the assigned ids.
func (s *AccessScope) VisibleMillIDs() []string {
	if s.IsAdmin() {
		return nil
	}
	if s.AllowedMillIDs == nil {
		return []string{}
	}
	return s.AllowedMillIDs
}

type scopeKey struct{}

// WithScope adds AccessScope to context.
func WithScope(ctx context.Context, scope *AccessScope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// GetScope returns AccessScope from context, deriving it from the user when absent.
func GetScope(ctx context.Context) *AccessScope {
	if v, ok := ctx.Value(scopeKey{}).(*AccessScope); ok {
		return v
	}
	return NewAccessScope(ctx)
}
