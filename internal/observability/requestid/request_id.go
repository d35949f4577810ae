package requestid

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

// NewRequestID generates a fresh request ID for one logical client
// operation. Every remote call made on behalf of that operation carries the
// same ID, so a bulk fetch and its follow-ups correlate server-side.
func NewRequestID() string {
	return uuid.NewString()
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// SetRequestID stores request ID in context
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// EnsureRequestID returns ctx unchanged when it already carries a request
// ID, otherwise attaches a new one.
func EnsureRequestID(ctx context.Context) context.Context {
	if GetRequestID(ctx) != "" {
		return ctx
	}
	return SetRequestID(ctx, NewRequestID())
}
