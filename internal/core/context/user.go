// Package context provides request-scoped values extraction.
package context

import (
	"context"
	"slices"
)

// Roles known to the access layer.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// UserContext contains authenticated user information.
type UserContext struct {
	UserID  string
	Email   string
	Name    string
	Role    string
	MillIDs []string // mills a staff user is assigned to
}

// IsAdmin reports whether the user bypasses mill assignment checks.
func (u *UserContext) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return ""
}

// HasRole checks if user has specific role.
func HasRole(ctx context.Context, role string) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == role
}

// HasMillAccess checks if user may work with the mill.
func HasMillAccess(ctx context.Context, millID string) bool {
	u := GetUser(ctx)
	if u == nil {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return slices.Contains(u.MillIDs, millID)
}
