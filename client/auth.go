package client

import (
	"context"
	"net/http"

	"eventers-marketplace-client/model"
)

const (
	scopeEvents  = "events"
	scopeTickets = "tickets"
	scopeResale  = "resale"
	scopeWallet  = "wallet"
	scopeAdmin   = "admin"
	scopeUser    = "user"
	scopeBanks   = "banks"
)

func (cl *Client) Login(ctx context.Context, req model.LoginRequest) (model.Auth, error) {
	if err := req.Validate(); err != nil {
		return model.Auth{}, validationError(err)
	}
	var auth model.Auth
	err := cl.mutate(ctx, http.MethodPost, "/auth/login", "/auth/login", req, &auth, scopeUser)
	return auth, err
}

// Register creates the account; the API then sends an OTP to the email.
func (cl *Client) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	if err := req.Validate(); err != nil {
		return model.User{}, validationError(err)
	}
	var u model.User
	err := cl.mutate(ctx, http.MethodPost, "/auth/register", "/auth/register", req, &u)
	return u, err
}

func (cl *Client) VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) (model.Auth, error) {
	if err := req.Validate(); err != nil {
		return model.Auth{}, validationError(err)
	}
	var auth model.Auth
	err := cl.mutate(ctx, http.MethodPost, "/auth/verify-otp", "/auth/verify-otp", req, &auth, scopeUser)
	return auth, err
}
