package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// NewRequestID creates a unique request identifier.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID stores the request id on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx decorates base with the request id carried by ctx, if any.
func Ctx(ctx context.Context, base zerolog.Logger) *zerolog.Logger {
	if id := RequestID(ctx); id != "" {
		l := base.With().Str("request_id", id).Logger()
		return &l
	}
	return &base
}
