package handler

import (
	"context"
	"net/http"
	"time"

	c "eventers-marketplace-client/context"
	"eventers-marketplace-client/response"
)

const pingTimeout = 3 * time.Second

// Pinger is satisfied by stores with a health check, like cache.RedisStore.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Healthcheck(deps ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := c.NewContextWithTimeOut(r.Context(), pingTimeout)
		defer cancel()
		for _, d := range deps {
			if err := d.Ping(ctx); err != nil {
				response.ErrorResponse{
					StatusCode:  http.StatusServiceUnavailable,
					Message:     "Service unavailable",
					Status:      "UNHEALTHY",
					Description: err.Error(),
				}.Send(ctx, w)
				return
			}
		}
		response.OK(map[string]string{"status": "ok"}).Send(w)
	}
}
