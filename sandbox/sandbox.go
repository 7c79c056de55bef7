// Package sandbox is an in-memory stand-in for the marketplace API. It
// answers every endpoint the client uses with the same envelopes, so the
// client and CLI can be exercised without the real backend.
package sandbox

import (
	"context"
	"sort"
	"sync"
	"time"

	"eventers-marketplace-client/cache"
	"eventers-marketplace-client/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	tokenTTL = 24 * time.Hour
	otpTTL   = 5 * time.Minute
	currency = "NGN"
)

type account struct {
	user      model.User
	password  []byte
	otpSecret string
}

type wallet struct {
	balance decimal.Decimal
	pending decimal.Decimal
	pin     []byte
}

// Service holds all sandbox state behind one lock.
type Service struct {
	mu           sync.RWMutex
	accounts     map[string]*account
	emails       map[string]string
	events       map[string]*model.Event
	slugs        map[string]string
	tickets      map[string]*model.Ticket
	transactions []model.Transaction
	wallets      map[string]*wallet
	banks        []model.Bank

	secret []byte
	otps   cache.Store
	sender Sender
	now    func() time.Time
}

type Option func(*Service)

// WithOTPStore keeps pending OTPs in store (redis when configured).
func WithOTPStore(store cache.Store) Option {
	return func(s *Service) { s.otps = store }
}

func WithSender(sender Sender) Option {
	return func(s *Service) { s.sender = sender }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns an empty sandbox signing tokens with secret.
func New(secret string, opts ...Option) *Service {
	s := &Service{
		accounts: make(map[string]*account),
		emails:   make(map[string]string),
		events:   make(map[string]*model.Event),
		slugs:    make(map[string]string),
		tickets:  make(map[string]*model.Ticket),
		wallets:  make(map[string]*wallet),
		banks: []model.Bank{
			{Name: "Access Bank", Code: "044"},
			{Name: "First Bank of Nigeria", Code: "011"},
			{Name: "Guaranty Trust Bank", Code: "058"},
			{Name: "United Bank for Africa", Code: "033"},
			{Name: "Zenith Bank", Code: "057"},
		},
		secret: []byte(secret),
		otps:   cache.NewMemoryStore(),
		sender: LogSender{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Banks(context.Context) []model.Bank {
	out := make([]model.Bank, len(s.banks))
	copy(out, s.banks)
	return out
}

func newID() string {
	return uuid.NewString()
}

func (s *Service) walletOf(userID string) *wallet {
	w, ok := s.wallets[userID]
	if !ok {
		w = &wallet{}
		s.wallets[userID] = w
	}
	return w
}

func (s *Service) record(tx model.Transaction) model.Transaction {
	tx.ID = newID()
	if tx.Reference == "" {
		tx.Reference = "EVT-" + tx.ID[:8]
	}
	tx.CreatedAt = s.now().UTC()
	s.transactions = append(s.transactions, tx)
	return tx
}

// publicUser returns a copy of the stored user.
func (s *Service) publicUser(id string) *model.User {
	a, ok := s.accounts[id]
	if !ok {
		return nil
	}
	u := a.user
	return &u
}

func (s *Service) eventCopy(id string) *model.Event {
	e, ok := s.events[id]
	if !ok {
		return nil
	}
	cp := *e
	cp.TicketCategories = append([]model.TicketCategory(nil), e.TicketCategories...)
	return &cp
}

func sortEvents(events []model.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].Name < events[j].Name
		}
		return events[i].Date.Before(events[j].Date)
	})
}
