package mill

import (
	"context"

	appctx "ricemill/internal/core/context"
	"ricemill/internal/core/id"
)

type millKey struct{}

// WithMill stores the resolved mill in context (also sets the mill id used by logging).
func WithMill(ctx context.Context, m *Mill) context.Context {
	ctx = context.WithValue(ctx, millKey{}, m)
	return appctx.WithMillID(ctx, m.ID.String())
}

// FromContext retrieves the mill from context.
func FromContext(ctx context.Context) *Mill {
	m, _ := ctx.Value(millKey{}).(*Mill)
	return m
}

// IDFromContext returns the mill id or the nil id.
func IDFromContext(ctx context.Context) id.ID {
	if m := FromContext(ctx); m != nil {
		return m.ID
	}
	return id.ID{}
}
