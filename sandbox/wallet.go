package sandbox

import (
	"context"
	"fmt"
	"sort"

	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"

	"golang.org/x/crypto/bcrypt"
)

func (s *Service) WalletBalance(_ context.Context, userID string) model.WalletBalance {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.walletOf(userID)
	return model.WalletBalance{Balance: w.balance, PendingBalance: w.pending, Currency: currency}
}

// WalletTransactions returns the user's movements, newest first: sales of
// their events or tickets, their purchases and their withdrawals.
func (s *Service) WalletTransactions(_ context.Context, userID string) []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Transaction
	for _, tx := range s.transactions {
		if s.involves(tx, userID) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *Service) involves(tx model.Transaction, userID string) bool {
	if tx.Buyer != nil && tx.Buyer.ID == userID {
		return true
	}
	if tx.User != nil && tx.User.ID == userID {
		return true
	}
	return tx.Type == model.TransactionPurchase && tx.Event != nil && tx.Event.OrganizerID == userID
}

func (s *Service) PinStatus(_ context.Context, userID string) model.PinStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[userID]
	return model.PinStatus{HasPin: ok && len(w.pin) > 0}
}

// SetPin sets the withdrawal pin. Changing an existing pin needs the old one.
func (s *Service) SetPin(ctx context.Context, userID string, req model.SetPinRequest) error {
	if err := req.Validate(); err != nil {
		return response.InvalidData(err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), passwordCost)
	if err != nil {
		return fmt.Errorf("setPin: error hashing pin: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.walletOf(userID)
	if len(w.pin) > 0 && bcrypt.CompareHashAndPassword(w.pin, []byte(req.OldPin)) != nil {
		return response.InvalidPin()
	}
	w.pin = hash
	logger.Infof(ctx, "setPin: pin updated for %s", userID)
	return nil
}

// Withdraw moves money out of the wallet into a pending payout.
func (s *Service) Withdraw(ctx context.Context, u model.User, req model.WithdrawRequest) (model.Transaction, error) {
	if err := req.Validate(); err != nil {
		return model.Transaction{}, response.InvalidData(err.Error())
	}
	if !s.knownBank(req.BankCode) {
		return model.Transaction{}, response.InvalidData("unknown bank code " + req.BankCode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.walletOf(u.ID)
	if len(w.pin) == 0 || bcrypt.CompareHashAndPassword(w.pin, []byte(req.Pin)) != nil {
		return model.Transaction{}, response.InvalidPin()
	}
	if req.Amount.GreaterThan(w.balance) {
		return model.Transaction{}, response.InsufficientFunds()
	}
	w.balance = w.balance.Sub(req.Amount)
	w.pending = w.pending.Add(req.Amount)

	tx := s.record(model.Transaction{
		Type:   model.TransactionWithdraw,
		Amount: req.Amount,
		Status: model.TransactionPending,
		User:   &u,
	})
	logger.Infof(ctx, "withdraw: %s requested %s to %s", u.Email, req.Amount, req.BankCode)
	return tx, nil
}

func (s *Service) knownBank(code string) bool {
	for _, b := range s.banks {
		if b.Code == code {
			return true
		}
	}
	return false
}
