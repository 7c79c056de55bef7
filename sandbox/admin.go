package sandbox

import (
	"context"
	"sort"

	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"

	"github.com/shopspring/decimal"
)

const recentLimit = 5

func (s *Service) AdminStats(_ context.Context, u model.User) (model.AdminStats, error) {
	if !u.Role.IsAdmin() {
		return model.AdminStats{}, response.Forbidden()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.AdminStats{
		TotalUsers:   len(s.accounts),
		TotalEvents:  len(s.events),
		TotalRevenue: decimal.Zero,
	}
	for _, tx := range s.transactions {
		switch tx.Type {
		case model.TransactionPurchase:
			stats.TotalTicketsSold += len(tx.Tickets)
			stats.TotalRevenue = stats.TotalRevenue.Add(tx.Amount)
		case model.TransactionResale:
			stats.TotalRevenue = stats.TotalRevenue.Add(tx.Amount)
		}
	}

	for i := len(s.transactions) - 1; i >= 0 && len(stats.RecentTransactions) < recentLimit; i-- {
		stats.RecentTransactions = append(stats.RecentTransactions, s.transactions[i])
	}

	events := make([]model.Event, 0, len(s.events))
	for id := range s.events {
		events = append(events, *s.eventCopy(id))
	}
	sortEvents(events)
	if len(events) > recentLimit {
		events = events[len(events)-recentLimit:]
	}
	stats.RecentEvents = events

	users := s.usersLocked()
	if len(users) > recentLimit {
		users = users[len(users)-recentLimit:]
	}
	stats.RecentUsers = users
	return stats, nil
}

func (s *Service) AdminUsers(_ context.Context, u model.User) ([]model.User, error) {
	if !u.Role.IsAdmin() {
		return nil, response.Forbidden()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersLocked(), nil
}

// usersLocked returns every user oldest first. Callers hold s.mu.
func (s *Service) usersLocked() []model.User {
	out := make([]model.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].CreatedAt, out[j].CreatedAt
		if ci == nil || cj == nil || ci.Equal(*cj) {
			return out[i].Email < out[j].Email
		}
		return ci.Before(*cj)
	})
	return out
}
