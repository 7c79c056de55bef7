package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

type WalletBalance struct {
	Balance        decimal.Decimal `json:"balance"`
	PendingBalance decimal.Decimal `json:"pendingBalance"`
	Currency       string          `json:"currency"`
}

type PinStatus struct {
	HasPin bool `json:"hasPin"`
}

type WithdrawRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	BankCode      string          `json:"bankCode"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName,omitempty"`
	Pin           string          `json:"pin"`
}

func (r WithdrawRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.By(positive)),
		validation.Field(&r.BankCode, validation.Required),
		validation.Field(&r.AccountNumber, validation.Required, validation.Length(10, 10), is.Digit),
		validation.Field(&r.Pin, validation.Required, validation.Length(4, 4), is.Digit),
	)
}

type SetPinRequest struct {
	Pin    string `json:"pin"`
	OldPin string `json:"oldPin,omitempty"`
}

func (r SetPinRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Pin, validation.Required, validation.Length(4, 4), is.Digit),
		validation.Field(&r.OldPin, validation.Length(4, 4), is.Digit),
	)
}

type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
