// Package audit provides author stamping and the change log contract.
package audit

import (
	"context"

	"ricemill/internal/core/entity"
	"ricemill/internal/core/id"
	"ricemill/internal/core/security"
)

// currentUserID parses the authenticated user id from context.
// Requests without a user (seeders, worker) leave the fields untouched.
func currentUserID(ctx context.Context) (id.ID, bool) {
	raw := security.GetUserID(ctx)
	if raw == "" {
		return id.ID{}, false
	}
	uid, err := id.Parse(raw)
	if err != nil {
		return id.ID{}, false
	}
	return uid, true
}

// EnrichCreated sets CreatedBy and UpdatedBy from the context user.
func EnrichCreated(ctx context.Context, base *entity.BaseEntry) {
	if uid, ok := currentUserID(ctx); ok {
		base.CreatedBy = &uid
		u := uid
		base.UpdatedBy = &u
	}
}

// EnrichUpdated sets UpdatedBy from the context user.
func EnrichUpdated(ctx context.Context, base *entity.BaseEntry) {
	if uid, ok := currentUserID(ctx); ok {
		base.UpdatedBy = &uid
	}
}

// CurrentUser returns the context user id as a pointer, or nil.
func CurrentUser(ctx context.Context) *id.ID {
	if uid, ok := currentUserID(ctx); ok {
		return &uid
	}
	return nil
}
