package context

import "context"

type millIDKey struct{}

// WithMillID stores the id of the mill the request operates on.
func WithMillID(ctx context.Context, millID string) context.Context {
	return context.WithValue(ctx, millIDKey{}, millID)
}

// GetMillID returns the mill id from context or empty string.
func GetMillID(ctx context.Context) string {
	if v, ok := ctx.Value(millIDKey{}).(string); ok {
		return v
	}
	return ""
}
