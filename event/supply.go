package event

import (
	"fmt"

	"eventers-marketplace-client/model"

	"github.com/shopspring/decimal"
)

func Capacity(e model.Event) int {
	n := 0
	for _, tc := range e.TicketCategories {
		n += tc.MaxTickets
	}
	return n
}

func Minted(e model.Event) int {
	n := 0
	for _, tc := range e.TicketCategories {
		n += tc.Minted
	}
	return n
}

func Available(e model.Event) int {
	n := 0
	for _, tc := range e.TicketCategories {
		n += tc.Available()
	}
	return n
}

func SoldOut(e model.Event) bool {
	return Available(e) == 0
}

// ValidateSupply checks the category bounds of an event as received from
// the API.
func ValidateSupply(e model.Event) error {
	for _, tc := range e.TicketCategories {
		if tc.MaxTickets < 1 {
			return fmt.Errorf("validateSupply: category %q: maxTickets %d below 1", tc.Name, tc.MaxTickets)
		}
		if tc.Minted < 0 || tc.Minted > tc.MaxTickets {
			return fmt.Errorf("validateSupply: category %q: minted %d outside 0..%d", tc.Name, tc.Minted, tc.MaxTickets)
		}
		if tc.Price.IsNegative() {
			return fmt.Errorf("validateSupply: category %q: negative price %s", tc.Name, tc.Price)
		}
	}
	if Minted(e) > Capacity(e) {
		return fmt.Errorf("validateSupply: event %s: %d minted exceeds capacity %d", e.ID, Minted(e), Capacity(e))
	}
	return nil
}

// PriceSpan returns the cheapest and dearest category price. ok is false
// when the event has no categories.
func PriceSpan(e model.Event) (lo, hi decimal.Decimal, ok bool) {
	for i, tc := range e.TicketCategories {
		if i == 0 || tc.Price.LessThan(lo) {
			lo = tc.Price
		}
		if i == 0 || tc.Price.GreaterThan(hi) {
			hi = tc.Price
		}
	}
	return lo, hi, len(e.TicketCategories) > 0
}
