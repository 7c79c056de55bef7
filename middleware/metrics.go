package middleware

import (
	"net/http"
	"time"

	"eventers-marketplace-client/monitoring"

	"github.com/codegangsta/negroni"
	"github.com/gorilla/mux"
)

// Metrics records every request by its route template, not its raw path.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := negroni.NewResponseWriter(w)
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		monitoring.TrackHTTPRequest(r.Method, route, rw.Status(), time.Since(start))
	})
}
