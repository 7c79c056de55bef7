package ticket

import (
	"errors"

	"eventers-marketplace-client/model"
)

// MaxResales is how many times a ticket may change hands on the resale market.
const MaxResales = 1

var (
	ErrTicketUsed        = errors.New("This ticket has already been used")
	ErrAlreadyListed     = errors.New("This ticket is already listed for resale")
	ErrResaleLimit       = errors.New("This ticket has already been resold once and cannot be listed again")
	ErrNotListed         = errors.New("This ticket is not listed for resale")
	ErrOwnTicket         = errors.New("You cannot buy your own ticket")
	ErrNotHolder         = errors.New("You do not hold this ticket")
	ErrNegativeResalePay = errors.New("Resale price must not be negative")
)

func CanList(t model.Ticket) bool {
	return !t.IsUsed && !t.IsListed && t.ResaleCount < MaxResales
}

// ListingBlocker explains why t cannot be listed, or returns nil when it can.
// The returned errors carry user-facing text.
func ListingBlocker(t model.Ticket) error {
	switch {
	case t.IsUsed:
		return ErrTicketUsed
	case t.IsListed:
		return ErrAlreadyListed
	case t.ResaleCount >= MaxResales:
		return ErrResaleLimit
	}
	return nil
}

// ResaleBlocker explains why buyerID cannot buy t from the resale market.
// The API makes the final decision.
func ResaleBlocker(t model.Ticket, buyerID string) error {
	switch {
	case t.IsUsed:
		return ErrTicketUsed
	case !t.IsListed:
		return ErrNotListed
	case buyerID != "" && t.UserID == buyerID:
		return ErrOwnTicket
	}
	return nil
}

func CanBuyResale(t model.Ticket, buyerID string) bool {
	return ResaleBlocker(t, buyerID) == nil
}
