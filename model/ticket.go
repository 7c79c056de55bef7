package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// TicketStatus is the display state of an owned ticket. It is derived from
// the isUsed/isListed flags with precedence used > listed > active.
type TicketStatus string

const (
	StatusActive TicketStatus = "ACTIVE"
	StatusListed TicketStatus = "LISTED"
	StatusUsed   TicketStatus = "USED"
)

type Ticket struct {
	ID             string           `json:"id"`
	Code           string           `json:"code"`
	EventID        string           `json:"eventId"`
	UserID         string           `json:"userId"`
	TicketCategory TicketCategory   `json:"ticketCategory"`
	IsUsed         bool             `json:"isUsed"`
	IsListed       bool             `json:"isListed"`
	ResalePrice    *decimal.Decimal `json:"resalePrice,omitempty"`
	ResaleCount    int              `json:"resaleCount"`
	SoldTo         string           `json:"soldTo,omitempty"`
	ListedAt       *time.Time       `json:"listedAt,omitempty"`
	Event          *Event           `json:"event,omitempty"`
}

// TicketResale is a listed ticket as shown on the resale marketplace.
type TicketResale struct {
	Ticket
	User *User `json:"user,omitempty"`
}

type TicketSelection struct {
	TicketCategoryID string `json:"ticketCategoryId"`
	Quantity         int    `json:"quantity"`
}

func (s TicketSelection) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.TicketCategoryID, validation.Required),
		validation.Field(&s.Quantity, validation.Required, validation.Min(1)),
	)
}

type BuyTicketRequest struct {
	EventID string            `json:"eventId"`
	Tickets []TicketSelection `json:"tickets"`
}

func (r BuyTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EventID, validation.Required),
		validation.Field(&r.Tickets, validation.Required),
	)
}

// PurchaseResult is returned by both primary and resale purchases.
// PaymentURL is set when the gateway requires the buyer to complete payment.
type PurchaseResult struct {
	Reference   string      `json:"reference"`
	PaymentURL  string      `json:"paymentUrl,omitempty"`
	Transaction Transaction `json:"transaction"`
	Tickets     []Ticket    `json:"tickets"`
}

type ListResaleRequest struct {
	TicketID    string          `json:"ticketId"`
	ResalePrice decimal.Decimal `json:"resalePrice"`
}

func (r ListResaleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TicketID, validation.Required),
		validation.Field(&r.ResalePrice, validation.By(nonNegative)),
	)
}

type BuyResaleRequest struct {
	TicketID string `json:"ticketId"`
	Quantity int    `json:"quantity,omitempty"`
}

func (r BuyResaleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TicketID, validation.Required),
		validation.Field(&r.Quantity, validation.Min(0), validation.Max(8)),
	)
}

type VerifyTicketRequest struct {
	TicketID         string `json:"ticketId"`
	EventID          string `json:"eventId"`
	Code             string `json:"code"`
	UserID           string `json:"userId"`
	VerificationCode string `json:"verificationCode"`
}

func (r VerifyTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TicketID, validation.Required),
		validation.Field(&r.EventID, validation.Required),
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.VerificationCode, validation.Required),
	)
}
