package handler

import (
	"net/http"

	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"
	"eventers-marketplace-client/sandbox"
)

func BuyTickets(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		var req model.BuyTicketRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		res, err := service.BuyTickets(ctx, u, req)
		if err != nil {
			sendError(ctx, w, "buyTickets", err)
			return
		}
		response.Created("Tickets purchased", res).Send(w)
	}
}

func ListResale(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		var req model.ListResaleRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		t, err := service.ListForResale(ctx, u, req)
		if err != nil {
			sendError(ctx, w, "listResale", err)
			return
		}
		response.SuccessResponse{Message: "Ticket listed for resale", Data: t, StatusCode: http.StatusOK}.Send(w)
	}
}

func BuyResale(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		var req model.BuyResaleRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		res, err := service.BuyResale(ctx, u, req)
		if err != nil {
			sendError(ctx, w, "buyResale", err)
			return
		}
		response.Created("Resale ticket purchased", res).Send(w)
	}
}

func VerifyTicket(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		var req model.VerifyTicketRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		t, err := service.VerifyTicket(ctx, u, req)
		if err != nil {
			sendError(ctx, w, "verifyTicket", err)
			return
		}
		response.SuccessResponse{Message: "Ticket verified", Data: t, StatusCode: http.StatusOK}.Send(w)
	}
}

func MyTickets(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		response.OK(nonNil(service.MyTickets(ctx, u.ID))).Send(w)
	}
}

func ResaleMarket(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(nonNil(service.ResaleMarket(r.Context()))).Send(w)
	}
}
