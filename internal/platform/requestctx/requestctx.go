// Package requestctx carries the per-request correlation id through a
// request's context so handlers, audit records and log lines can share it.
package requestctx

import "context"

type ctxKey struct{}

// WithRequestID returns a child context tagged with the request id. An empty
// id is stored as-is; callers treat "" as absent.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// GetRequestID returns the request id from ctx, or "" when none was set.
func GetRequestID(ctx context.Context) string {
	value, _ := ctx.Value(ctxKey{}).(string)
	return value
}
