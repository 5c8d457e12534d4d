package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextRequesterKey ctxKey = "requester"

func RequesterFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requester, ok := ctx.Value(ContextRequesterKey).(string); ok {
		return requester
	}
	return ""
}

func ContextWithRequester(ctx context.Context, requester string) context.Context {
	return context.WithValue(ctx, ContextRequesterKey, requester)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
