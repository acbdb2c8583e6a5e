package logging

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type traceIDKey struct{}

// TraceIDField is the log field name carrying the session trace ID.
const TraceIDField = "trace_id"

// FromContext returns the logger stored in ctx. When none is stored it returns
// a disabled logger, so callers never need a nil check.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// NewTraceID returns a new ULID string.
func NewTraceID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// ContextWithTraceID stores traceID in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the stored trace ID or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// GetOrGenerateTraceID returns the trace ID in ctx, generating one if absent.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return NewTraceID()
}
