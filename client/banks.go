package client

import (
	"context"

	"eventers-marketplace-client/model"
)

func (cl *Client) Banks(ctx context.Context) ([]model.Bank, error) {
	var banks []model.Bank
	err := cl.query(ctx, scopeBanks, "/payment/banks", "/payment/banks", nil, &banks)
	return banks, err
}
