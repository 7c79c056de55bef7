package handler

import (
	"net/http"

	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"
	"eventers-marketplace-client/sandbox"
)

func WalletBalance(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		response.OK(service.WalletBalance(ctx, u.ID)).Send(w)
	}
}

func WalletTransactions(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		response.OK(nonNil(service.WalletTransactions(ctx, u.ID))).Send(w)
	}
}

func Withdraw(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		var req model.WithdrawRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		tx, err := service.Withdraw(ctx, u, req)
		if err != nil {
			sendError(ctx, w, "withdraw", err)
			return
		}
		response.Created("Withdrawal requested", tx).Send(w)
	}
}

func SetPin(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		var req model.SetPinRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		if err := service.SetPin(ctx, u.ID, req); err != nil {
			sendError(ctx, w, "setPin", err)
			return
		}
		response.SuccessResponse{Message: "Pin updated", StatusCode: http.StatusOK}.Send(w)
	}
}

func PinStatus(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		response.OK(service.PinStatus(ctx, u.ID)).Send(w)
	}
}

func Banks(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(service.Banks(r.Context())).Send(w)
	}
}
