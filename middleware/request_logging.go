package middleware

import (
	"net/http"

	"eventers-marketplace-client/logger"
)

func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := r.Header.Clone()
		if headers.Get("Authorization") != "" {
			headers.Set("Authorization", "Bearer ***")
		}
		logger.Debugf(r.Context(), "Request - %s %s, Headers: %+v", r.Method, r.URL, headers)
		next.ServeHTTP(w, r)
	})
}
