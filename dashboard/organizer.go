package dashboard

import (
	"eventers-marketplace-client/event"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/pricing"

	"github.com/shopspring/decimal"
)

type EventSummary struct {
	Event     model.Event     `json:"event"`
	Sold      int             `json:"sold"`
	Capacity  int             `json:"capacity"`
	Available int             `json:"available"`
	Gross     decimal.Decimal `json:"gross"`
	SoldOut   bool            `json:"soldOut"`
}

type OrganizerSummary struct {
	Events       []EventSummary  `json:"events"`
	TotalEvents  int             `json:"totalEvents"`
	ActiveEvents int             `json:"activeEvents"`
	TicketsSold  int             `json:"ticketsSold"`
	Gross        decimal.Decimal `json:"gross"`
	Net          decimal.Decimal `json:"net"`
}

// Organizer summarizes primary sales from the organizer's own events. Net
// is what the organizer keeps after the platform fee.
func Organizer(events []model.Event) OrganizerSummary {
	s := OrganizerSummary{
		Events:      make([]EventSummary, 0, len(events)),
		TotalEvents: len(events),
		Gross:       decimal.Zero,
	}
	for _, e := range events {
		es := EventSummary{
			Event:     e,
			Sold:      event.Minted(e),
			Capacity:  event.Capacity(e),
			Available: event.Available(e),
			SoldOut:   event.SoldOut(e),
			Gross:     grossOf(e),
		}
		if e.IsActive {
			s.ActiveEvents++
		}
		s.TicketsSold += es.Sold
		s.Gross = s.Gross.Add(es.Gross)
		s.Events = append(s.Events, es)
	}
	s.Net = pricing.OrganizerReceives(s.Gross)
	return s
}

func grossOf(e model.Event) decimal.Decimal {
	items := make([]pricing.Item, 0, len(e.TicketCategories))
	sold := make(map[string]int, len(e.TicketCategories))
	for _, tc := range e.TicketCategories {
		items = append(items, pricing.Item{ID: tc.ID, Price: tc.Price})
		sold[tc.ID] = tc.Minted
	}
	return pricing.Subtotal(items, sold, 0)
}
