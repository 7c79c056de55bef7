package middleware

import (
	"context"
	"net/http"
	"strings"

	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"
)

const userKey ContextKey = "user"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller in the request context.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
			if token == "" {
				response.Unauthorized().Send(ctx, w)
				return
			}
			u, err := auth.Authenticate(ctx, token)
			if err != nil {
				logger.Debugf(ctx, "requireAuth: %v", err)
				response.Unauthorized().Send(ctx, w)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userKey, u)))
		})
	}
}

// UserFrom returns the caller stored by RequireAuth.
func UserFrom(ctx context.Context) (model.User, bool) {
	u, ok := ctx.Value(userKey).(model.User)
	return u, ok
}
