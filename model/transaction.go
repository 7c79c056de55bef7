package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionPurchase TransactionType = "PURCHASE"
	TransactionResale   TransactionType = "RESALE"
	TransactionWithdraw TransactionType = "WITHDRAW"
	TransactionDeposit  TransactionType = "DEPOSIT"
	TransactionFund     TransactionType = "FUND"
)

type TransactionStatus string

const (
	TransactionSuccess TransactionStatus = "SUCCESS"
	TransactionPending TransactionStatus = "PENDING"
	TransactionFailed  TransactionStatus = "FAILED"
)

// Transaction doubles as the wallet transaction; Buyer is set on ticket
// sales, User on wallet movements.
type Transaction struct {
	ID        string            `json:"id"`
	Reference string            `json:"reference"`
	Type      TransactionType   `json:"type"`
	Amount    decimal.Decimal   `json:"amount"`
	Status    TransactionStatus `json:"status"`
	Buyer     *User             `json:"buyer,omitempty"`
	User      *User             `json:"user,omitempty"`
	Event     *Event            `json:"event,omitempty"`
	Tickets   []Ticket          `json:"tickets,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}
