package sandbox

import (
	"context"
	"sort"

	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/pricing"
	"eventers-marketplace-client/response"
	"eventers-marketplace-client/ticket"
	"eventers-marketplace-client/verification"

	"github.com/shopspring/decimal"
)

// BuyTickets checks availability for every selection, then mints the
// tickets and credits the organizer.
func (s *Service) BuyTickets(ctx context.Context, buyer model.User, req model.BuyTicketRequest) (model.PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return model.PurchaseResult{}, response.InvalidData(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[req.EventID]
	if !ok || !e.IsActive {
		return model.PurchaseResult{}, response.ResourceNotFound("This event is not available", "")
	}

	wanted := make(map[string]int, len(req.Tickets))
	for _, sel := range req.Tickets {
		wanted[sel.TicketCategoryID] += sel.Quantity
	}
	idx := make(map[string]int, len(e.TicketCategories))
	items := make([]pricing.Item, 0, len(e.TicketCategories))
	for i, tc := range e.TicketCategories {
		idx[tc.ID] = i
		items = append(items, pricing.Item{ID: tc.ID, Price: tc.Price})
	}
	for id, q := range wanted {
		i, ok := idx[id]
		if !ok {
			return model.PurchaseResult{}, response.InvalidData("unknown ticket category " + id)
		}
		if q > e.TicketCategories[i].Available() {
			return model.PurchaseResult{}, response.SoldOut(e.TicketCategories[i].Name)
		}
	}

	var issued []model.Ticket
	for _, sel := range req.Tickets {
		tc := &e.TicketCategories[idx[sel.TicketCategoryID]]
		for n := 0; n < sel.Quantity; n++ {
			code, err := verification.GenerateCode(4)
			if err != nil {
				logger.Errorf(ctx, "buyTickets: error generating ticket code: %v", err)
				return model.PurchaseResult{}, response.SomethingWrong()
			}
			tc.Minted++
			t := model.Ticket{
				ID:             newID(),
				Code:           "TKT-" + code,
				EventID:        e.ID,
				UserID:         buyer.ID,
				TicketCategory: *tc,
			}
			s.tickets[t.ID] = &t
			issued = append(issued, t)
		}
	}

	total := pricing.Subtotal(items, wanted, 0)
	s.walletOf(e.OrganizerID).balance = s.walletOf(e.OrganizerID).balance.Add(pricing.OrganizerReceives(total))
	tx := s.record(model.Transaction{
		Type:    model.TransactionPurchase,
		Amount:  total,
		Status:  model.TransactionSuccess,
		Buyer:   &buyer,
		Event:   s.eventCopy(e.ID),
		Tickets: issued,
	})
	logger.Infof(ctx, "buyTickets: %s bought %d tickets for %s", buyer.Email, len(issued), e.Slug)
	return model.PurchaseResult{Reference: tx.Reference, Transaction: tx, Tickets: issued}, nil
}

func (s *Service) MyTickets(_ context.Context, userID string) []model.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Ticket
	for _, t := range s.tickets {
		if t.UserID == userID {
			cp := *t
			cp.Event = s.eventCopy(t.EventID)
			out = append(out, cp)
		}
	}
	sortTickets(out)
	return out
}

// ResaleMarket lists every listed, unused ticket with its seller and event.
func (s *Service) ResaleMarket(_ context.Context) []model.TicketResale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.TicketResale
	for _, t := range s.tickets {
		if ticket.Status(*t) != model.StatusListed {
			continue
		}
		cp := *t
		cp.Event = s.eventCopy(t.EventID)
		out = append(out, model.TicketResale{Ticket: cp, User: s.publicUser(t.UserID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListedAt.Before(*out[j].ListedAt) })
	return out
}

func (s *Service) ListForResale(ctx context.Context, seller model.User, req model.ListResaleRequest) (model.Ticket, error) {
	if err := req.Validate(); err != nil {
		return model.Ticket{}, response.InvalidData(err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[req.TicketID]
	if !ok {
		return model.Ticket{}, response.NotFound()
	}
	if t.UserID != seller.ID {
		return model.Ticket{}, response.Rejected(ticket.ErrNotHolder.Error())
	}
	if err := ticket.List(t, req.ResalePrice, s.now().UTC()); err != nil {
		return model.Ticket{}, response.Rejected(err.Error())
	}
	logger.Infof(ctx, "listForResale: %s listed %s at %s", seller.Email, t.Code, req.ResalePrice)
	return *t, nil
}

// BuyResale transfers one listed ticket to the buyer. The seller is
// credited the price less the platform fee.
func (s *Service) BuyResale(ctx context.Context, buyer model.User, req model.BuyResaleRequest) (model.PurchaseResult, error) {
	if err := req.Validate(); err != nil {
		return model.PurchaseResult{}, response.InvalidData(err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[req.TicketID]
	if !ok {
		return model.PurchaseResult{}, response.NotFound()
	}
	sellerID := t.UserID
	price := decimal.Zero
	if t.ResalePrice != nil {
		price = *t.ResalePrice
	}
	if err := ticket.Transfer(t, buyer.ID); err != nil {
		return model.PurchaseResult{}, response.Rejected(err.Error())
	}

	amount := pricing.ResaleQuote(price, 1)
	s.walletOf(sellerID).balance = s.walletOf(sellerID).balance.Add(pricing.OrganizerReceives(amount))
	tx := s.record(model.Transaction{
		Type:    model.TransactionResale,
		Amount:  amount,
		Status:  model.TransactionSuccess,
		Buyer:   &buyer,
		User:    s.publicUser(sellerID),
		Event:   s.eventCopy(t.EventID),
		Tickets: []model.Ticket{*t},
	})
	logger.Infof(ctx, "buyResale: %s bought %s", buyer.Email, t.Code)
	return model.PurchaseResult{Reference: tx.Reference, Transaction: tx, Tickets: []model.Ticket{*t}}, nil
}

// VerifyTicket checks a ticket in at the door. Only the event's organizer
// or an admin may do so, and every identifying field must match.
func (s *Service) VerifyTicket(ctx context.Context, u model.User, req model.VerifyTicketRequest) (model.Ticket, error) {
	if err := req.Validate(); err != nil {
		return model.Ticket{}, response.InvalidData(err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[req.TicketID]
	if !ok || t.EventID != req.EventID || t.Code != req.Code {
		return model.Ticket{}, response.Rejected("Invalid ticket")
	}
	if req.UserID != "" && t.UserID != req.UserID {
		return model.Ticket{}, response.Rejected("This ticket has changed hands since the code was issued")
	}
	e, ok := s.events[t.EventID]
	if !ok || !owns(u, e) {
		return model.Ticket{}, response.Forbidden()
	}
	if err := ticket.MarkUsed(t); err != nil {
		return model.Ticket{}, response.Rejected(err.Error())
	}
	logger.Infof(ctx, "verifyTicket: %s checked in %s", u.Email, t.Code)
	cp := *t
	cp.Event = s.eventCopy(t.EventID)
	return cp, nil
}

func sortTickets(ts []model.Ticket) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].EventID != ts[j].EventID {
			return ts[i].EventID < ts[j].EventID
		}
		return ts[i].Code < ts[j].Code
	})
}
