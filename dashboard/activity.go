// Package dashboard builds the organizer and admin dashboard views.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"eventers-marketplace-client/model"

	"github.com/shopspring/decimal"
)

// ActivityItem is one row of the admin activity feed. The set of
// implementations is closed: TransactionActivity, EventActivity and
// UserActivity.
type ActivityItem interface {
	When() time.Time
	activity()
}

type TransactionActivity struct {
	Transaction model.Transaction
}

type EventActivity struct {
	Event model.Event
}

type UserActivity struct {
	User model.User
}

func (a TransactionActivity) When() time.Time { return a.Transaction.CreatedAt }
func (a EventActivity) When() time.Time       { return a.Event.Date }

func (a UserActivity) When() time.Time {
	if a.User.CreatedAt == nil {
		return time.Time{}
	}
	return *a.User.CreatedAt
}

func (TransactionActivity) activity() {}
func (EventActivity) activity()       {}
func (UserActivity) activity()        {}

// Feed merges the recent lists of stats, newest first.
func Feed(stats model.AdminStats) []ActivityItem {
	items := make([]ActivityItem, 0, len(stats.RecentTransactions)+len(stats.RecentEvents)+len(stats.RecentUsers))
	for _, tx := range stats.RecentTransactions {
		items = append(items, TransactionActivity{Transaction: tx})
	}
	for _, e := range stats.RecentEvents {
		items = append(items, EventActivity{Event: e})
	}
	for _, u := range stats.RecentUsers {
		items = append(items, UserActivity{User: u})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].When().After(items[j].When()) })
	return items
}

// Describe renders one feed row.
func Describe(item ActivityItem) string {
	switch a := item.(type) {
	case TransactionActivity:
		tx := a.Transaction
		who := "someone"
		switch {
		case tx.Buyer != nil:
			who = tx.Buyer.Email
		case tx.User != nil:
			who = tx.User.Email
		}
		what := string(tx.Type)
		if tx.Event != nil {
			what += " · " + tx.Event.Name
		}
		return fmt.Sprintf("%s %s by %s (%s)", tx.Amount.StringFixed(2), what, who, tx.Status)
	case EventActivity:
		state := "inactive"
		if a.Event.IsActive {
			state = "active"
		}
		return fmt.Sprintf("event %s in %s on %s (%s)", a.Event.Name, a.Event.Location, a.Event.Date.Format("2006-01-02"), state)
	case UserActivity:
		return fmt.Sprintf("%s joined as %s", a.User.Email, a.User.Role)
	default:
		panic(fmt.Sprintf("dashboard: unknown activity item %T", item))
	}
}

// Signed returns tx.Amount as it moves userID's wallet: positive when the
// user receives money, negative when they pay or withdraw.
func Signed(tx model.Transaction, userID string) decimal.Decimal {
	switch tx.Type {
	case model.TransactionWithdraw:
		return tx.Amount.Neg()
	case model.TransactionDeposit, model.TransactionFund:
		return tx.Amount
	}
	if tx.Buyer != nil && tx.Buyer.ID == userID {
		return tx.Amount.Neg()
	}
	return tx.Amount
}
