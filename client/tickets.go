package client

import (
	"context"
	"net/http"

	"eventers-marketplace-client/model"
	"eventers-marketplace-client/pricing"
)

func (cl *Client) BuyTickets(ctx context.Context, req model.BuyTicketRequest) (model.PurchaseResult, error) {
	var res model.PurchaseResult
	if err := req.Validate(); err != nil {
		return res, validationError(err)
	}
	err := cl.mutate(ctx, http.MethodPost, "/tickets/buy", "/tickets/buy", req, &res, scopeTickets, scopeEvents, scopeWallet)
	return res, err
}

func (cl *Client) ListForResale(ctx context.Context, req model.ListResaleRequest) (model.Ticket, error) {
	var t model.Ticket
	if err := req.Validate(); err != nil {
		return t, validationError(err)
	}
	err := cl.mutate(ctx, http.MethodPost, "/tickets/resale/list", "/tickets/resale/list", req, &t, scopeTickets, scopeResale, scopeWallet)
	return t, err
}

// BuyResale buys a listed ticket. The quantity is clamped into 1..8 before
// it is sent.
func (cl *Client) BuyResale(ctx context.Context, req model.BuyResaleRequest) (model.PurchaseResult, error) {
	var res model.PurchaseResult
	req.Quantity = pricing.ClampResaleQuantity(req.Quantity)
	if err := req.Validate(); err != nil {
		return res, validationError(err)
	}
	err := cl.mutate(ctx, http.MethodPost, "/tickets/resale/buy", "/tickets/resale/buy", req, &res, scopeTickets, scopeResale, scopeWallet)
	return res, err
}

func (cl *Client) VerifyTicket(ctx context.Context, req model.VerifyTicketRequest) (model.Ticket, error) {
	var t model.Ticket
	if err := req.Validate(); err != nil {
		return t, validationError(err)
	}
	err := cl.mutate(ctx, http.MethodPost, "/tickets/verify", "/tickets/verify", req, &t, scopeTickets, scopeAdmin)
	return t, err
}

func (cl *Client) MyTickets(ctx context.Context) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := cl.query(ctx, scopeTickets, "/tickets/my", "/tickets/my", nil, &tickets)
	return tickets, err
}

// ResaleTickets lists the resale marketplace.
func (cl *Client) ResaleTickets(ctx context.Context) ([]model.TicketResale, error) {
	var tickets []model.TicketResale
	err := cl.query(ctx, scopeResale, "/tickets/resell", "/tickets/resell", nil, &tickets)
	return tickets, err
}
