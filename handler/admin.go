package handler

import (
	"net/http"

	"eventers-marketplace-client/response"
	"eventers-marketplace-client/sandbox"

	"github.com/gorilla/mux"
)

func AdminStats(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		stats, err := service.AdminStats(ctx, u)
		if err != nil {
			sendError(ctx, w, "adminStats", err)
			return
		}
		response.OK(stats).Send(w)
	}
}

func AdminUsers(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		users, err := service.AdminUsers(ctx, u)
		if err != nil {
			sendError(ctx, w, "adminUsers", err)
			return
		}
		response.OK(users).Send(w)
	}
}

func ToggleEvent(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		e, err := service.ToggleEvent(ctx, u, mux.Vars(r)["id"])
		if err != nil {
			sendError(ctx, w, "toggleEvent", err)
			return
		}
		response.SuccessResponse{Message: "Event status updated", Data: e, StatusCode: http.StatusOK}.Send(w)
	}
}
