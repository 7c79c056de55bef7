package client

import (
	"context"
	"net/http"

	"eventers-marketplace-client/model"
)

func (cl *Client) WalletBalance(ctx context.Context) (model.WalletBalance, error) {
	var b model.WalletBalance
	err := cl.query(ctx, scopeWallet, "/wallet/balance", "/wallet/balance", nil, &b)
	return b, err
}

func (cl *Client) WalletTransactions(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := cl.query(ctx, scopeWallet, "/wallet/transactions", "/wallet/transactions", nil, &txs)
	return txs, err
}

func (cl *Client) Withdraw(ctx context.Context, req model.WithdrawRequest) (model.Transaction, error) {
	var tx model.Transaction
	if err := req.Validate(); err != nil {
		return tx, validationError(err)
	}
	err := cl.mutate(ctx, http.MethodPost, "/wallet/withdraw", "/wallet/withdraw", req, &tx, scopeWallet)
	return tx, err
}

func (cl *Client) SetPin(ctx context.Context, req model.SetPinRequest) error {
	if err := req.Validate(); err != nil {
		return validationError(err)
	}
	return cl.mutate(ctx, http.MethodPatch, "/wallet/pin", "/wallet/pin", req, nil, scopeWallet)
}

func (cl *Client) PinStatus(ctx context.Context) (model.PinStatus, error) {
	var s model.PinStatus
	err := cl.query(ctx, scopeWallet, "/wallet/pin-status", "/wallet/pin-status", nil, &s)
	return s, err
}
