package context

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ContextKeyCorrelationID ContextKey = "Correlation-Id"
	ContextKeyClientPage    ContextKey = "x-client-page"
	DefaultHttpTimeout                 = 30 * time.Second
)

type ContextKey string

func NewContextWithTimeOut(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// NewContext returns a background context carrying a fresh correlation id.
func NewContext() context.Context {
	return context.WithValue(context.Background(), ContextKeyCorrelationID, NewCorrelationID())
}

func NewCorrelationID() string {
	return uuid.NewString()
}

func SetContextWithValue(ctx context.Context, key ContextKey, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

// WithClientPage records the page (CLI command path) a request originates from.
func WithClientPage(ctx context.Context, page string) context.Context {
	return SetContextWithValue(ctx, ContextKeyClientPage, page)
}

func GetContextValue(ctx context.Context, key ContextKey) string {
	reqID := ctx.Value(key)
	if reqID != nil {
		if ret, ok := reqID.(string); ok {
			return ret
		}
	}
	return ""
}
