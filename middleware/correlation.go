package middleware

import (
	"net/http"

	c "eventers-marketplace-client/context"
	"eventers-marketplace-client/logger"
)

type ContextKey string

// SetCorrelationIDHeader carries the caller's Correlation-Id (or a new one)
// and x-client-page into the request context and echoes the id back.
func SetCorrelationIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get("Correlation-Id")
		ctx := c.SetContextWithValue(r.Context(), c.ContextKeyCorrelationID, correlationID)
		if len(correlationID) == 0 {
			logger.Debugf(ctx, "No correlation id provided. Generating a new one")
			correlationID = c.NewCorrelationID()
			ctx = c.SetContextWithValue(ctx, c.ContextKeyCorrelationID, correlationID)
			r.Header.Set("Correlation-Id", correlationID)
		}
		if page := r.Header.Get("x-client-page"); page != "" {
			ctx = c.WithClientPage(ctx, page)
		}
		w.Header().Set("Correlation-Id", correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
