package ticket

import (
	"time"

	"eventers-marketplace-client/model"

	"github.com/shopspring/decimal"
)

// Status resolves the flags of t into one state. Used wins over listed.
func Status(t model.Ticket) model.TicketStatus {
	switch {
	case t.IsUsed:
		return model.StatusUsed
	case t.IsListed:
		return model.StatusListed
	default:
		return model.StatusActive
	}
}

// List moves an active ticket onto the resale market.
func List(t *model.Ticket, price decimal.Decimal, at time.Time) error {
	if err := ListingBlocker(*t); err != nil {
		return err
	}
	if price.IsNegative() {
		return ErrNegativeResalePay
	}
	t.IsListed = true
	t.ResalePrice = &price
	t.ListedAt = &at
	return nil
}

// Delist returns a listed ticket to its holder unsold.
func Delist(t *model.Ticket) error {
	if Status(*t) != model.StatusListed {
		return ErrNotListed
	}
	clearListing(t)
	return nil
}

// Transfer completes a resale: the buyer becomes the holder and the
// resale count goes up by one.
func Transfer(t *model.Ticket, buyerID string) error {
	if err := ResaleBlocker(*t, buyerID); err != nil {
		return err
	}
	t.UserID = buyerID
	t.SoldTo = buyerID
	t.ResaleCount++
	clearListing(t)
	return nil
}

// MarkUsed checks a ticket in. Used is terminal; a pending listing is dropped.
func MarkUsed(t *model.Ticket) error {
	if t.IsUsed {
		return ErrTicketUsed
	}
	t.IsUsed = true
	clearListing(t)
	return nil
}

func clearListing(t *model.Ticket) {
	t.IsListed = false
	t.ResalePrice = nil
	t.ListedAt = nil
}
