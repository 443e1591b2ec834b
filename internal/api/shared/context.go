package shared

import (
	"context"

	"github.com/google/uuid"
)

// TraceIDHeader carries the trace ID on requests and responses.
const TraceIDHeader = "X-Trace-ID"

type traceIDKey struct{}

// ResolveTraceID returns candidate when it is a well-formed UUID and a fresh
// UUID otherwise. Callers pass the inbound X-Trace-ID header so that a
// client-chosen id survives across services.
func ResolveTraceID(candidate string) string {
	if candidate != "" {
		if _, err := uuid.Parse(candidate); err == nil {
			return candidate
		}
	}
	return uuid.NewString()
}

// WithTraceID stores traceID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or "" if there is none.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}
