package dashboard

import (
	"testing"
	"time"

	"eventers-marketplace-client/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizerSummary(t *testing.T) {
	events := []model.Event{
		{
			ID: "e1", Name: "Jazz Night", IsActive: true,
			TicketCategories: []model.TicketCategory{
				{ID: "r", Price: decimal.NewFromInt(5000), MaxTickets: 100, Minted: 10},
				{ID: "v", Price: decimal.NewFromInt(20000), MaxTickets: 5, Minted: 5},
			},
		},
		{
			ID: "e2", Name: "Comedy Hour",
			TicketCategories: []model.TicketCategory{
				{ID: "g", Price: decimal.NewFromInt(3000), MaxTickets: 50},
			},
		},
	}

	s := Organizer(events)
	assert.Equal(t, 2, s.TotalEvents)
	assert.Equal(t, 1, s.ActiveEvents)
	assert.Equal(t, 15, s.TicketsSold)
	assert.True(t, decimal.NewFromInt(150000).Equal(s.Gross))
	assert.True(t, decimal.NewFromInt(142500).Equal(s.Net))

	require.Len(t, s.Events, 2)
	assert.Equal(t, 90, s.Events[0].Available)
	assert.False(t, s.Events[0].SoldOut)
	assert.True(t, s.Events[1].Gross.IsZero())
}

func TestFeedIsNewestFirst(t *testing.T) {
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	joined := base.Add(2 * time.Hour)
	stats := model.AdminStats{
		RecentTransactions: []model.Transaction{{Type: model.TransactionPurchase, Amount: decimal.NewFromInt(5000), Status: model.TransactionSuccess, CreatedAt: base.Add(time.Hour)}},
		RecentEvents:       []model.Event{{Name: "Jazz Night", Location: "Lagos", Date: base.Add(72 * time.Hour), IsActive: true}},
		RecentUsers:        []model.User{{Email: "ada@eventers.test", Role: model.RoleOrganizer, CreatedAt: &joined}},
	}

	feed := Feed(stats)
	require.Len(t, feed, 3)
	assert.IsType(t, EventActivity{}, feed[0])
	assert.IsType(t, UserActivity{}, feed[1])
	assert.IsType(t, TransactionActivity{}, feed[2])

	assert.Equal(t, "event Jazz Night in Lagos on 2030-01-04 (active)", Describe(feed[0]))
	assert.Equal(t, "ada@eventers.test joined as ORGANIZER", Describe(feed[1]))
	assert.Equal(t, "5000.00 PURCHASE by someone (SUCCESS)", Describe(feed[2]))
}

func TestSigned(t *testing.T) {
	amount := decimal.NewFromInt(6000)
	buyer := &model.User{ID: "buyer"}
	seller := &model.User{ID: "seller"}
	resale := model.Transaction{Type: model.TransactionResale, Amount: amount, Buyer: buyer, User: seller}

	assert.True(t, amount.Neg().Equal(Signed(resale, "buyer")))
	assert.True(t, amount.Equal(Signed(resale, "seller")))

	withdraw := model.Transaction{Type: model.TransactionWithdraw, Amount: amount, User: seller}
	assert.True(t, amount.Neg().Equal(Signed(withdraw, "seller")))
}
