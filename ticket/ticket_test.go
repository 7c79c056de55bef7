package ticket

import (
	"fmt"
	"testing"
	"time"

	"eventers-marketplace-client/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanListTruthTable(t *testing.T) {
	for _, used := range []bool{false, true} {
		for _, listed := range []bool{false, true} {
			for count := 0; count <= 3; count++ {
				tk := model.Ticket{IsUsed: used, IsListed: listed, ResaleCount: count}
				want := !(used || listed || count >= 1)
				assert.Equal(t, want, CanList(tk), "used=%v listed=%v count=%d", used, listed, count)
				assert.Equal(t, want, ListingBlocker(tk) == nil)
			}
		}
	}
}

func TestCanListLifecycle(t *testing.T) {
	tk := model.Ticket{ID: "t1", UserID: "seller"}
	assert.True(t, CanList(tk))

	require.NoError(t, List(&tk, decimal.NewFromInt(5000), time.Now()))
	assert.False(t, CanList(tk))
	assert.Equal(t, ErrAlreadyListed, ListingBlocker(tk))

	require.NoError(t, Transfer(&tk, "buyer"))
	assert.Equal(t, 1, tk.ResaleCount)
	assert.False(t, tk.IsListed)
	assert.False(t, CanList(tk))
	assert.EqualError(t, ListingBlocker(tk), "This ticket has already been resold once and cannot be listed again")
}

func TestListSetsResaleFields(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tk := model.Ticket{ID: "t1"}

	require.NoError(t, List(&tk, decimal.NewFromInt(7500), at))
	require.NotNil(t, tk.ResalePrice)
	assert.True(t, decimal.NewFromInt(7500).Equal(*tk.ResalePrice))
	require.NotNil(t, tk.ListedAt)
	assert.Equal(t, at, *tk.ListedAt)
	assert.Equal(t, model.StatusListed, Status(tk))
}

func TestListRejectsNegativePrice(t *testing.T) {
	tk := model.Ticket{ID: "t1"}
	assert.Equal(t, ErrNegativeResalePay, List(&tk, decimal.NewFromInt(-1), time.Now()))
	assert.False(t, tk.IsListed)
}

func TestDelist(t *testing.T) {
	tk := model.Ticket{ID: "t1"}
	assert.Equal(t, ErrNotListed, Delist(&tk))

	require.NoError(t, List(&tk, decimal.NewFromInt(100), time.Now()))
	require.NoError(t, Delist(&tk))
	assert.Nil(t, tk.ResalePrice)
	assert.Nil(t, tk.ListedAt)
	assert.True(t, CanList(tk))
}

func TestTransferRefusesOwnTicketAndUnlisted(t *testing.T) {
	tk := model.Ticket{ID: "t1", UserID: "seller"}
	assert.Equal(t, ErrNotListed, Transfer(&tk, "buyer"))

	require.NoError(t, List(&tk, decimal.NewFromInt(100), time.Now()))
	assert.Equal(t, ErrOwnTicket, Transfer(&tk, "seller"))
	assert.Equal(t, "seller", tk.UserID)
	assert.Equal(t, 0, tk.ResaleCount)
}

func TestMarkUsedIsTerminal(t *testing.T) {
	tk := model.Ticket{ID: "t1"}
	require.NoError(t, List(&tk, decimal.NewFromInt(100), time.Now()))

	require.NoError(t, MarkUsed(&tk))
	assert.True(t, tk.IsUsed)
	assert.False(t, tk.IsListed)
	assert.Equal(t, model.StatusUsed, Status(tk))

	assert.Equal(t, ErrTicketUsed, MarkUsed(&tk))
	assert.Equal(t, ErrTicketUsed, List(&tk, decimal.NewFromInt(1), time.Now()))
	assert.Equal(t, ErrTicketUsed, Transfer(&tk, "someone"))
}

func TestStatusPrefersUsedOverListed(t *testing.T) {
	assert.Equal(t, model.StatusUsed, Status(model.Ticket{IsUsed: true, IsListed: true}))
	assert.Equal(t, model.StatusListed, Status(model.Ticket{IsListed: true}))
	assert.Equal(t, model.StatusActive, Status(model.Ticket{}))
}

func TestCanBuyResale(t *testing.T) {
	tk := model.Ticket{UserID: "seller", IsListed: true}
	assert.True(t, CanBuyResale(tk, "buyer"))
	assert.True(t, CanBuyResale(tk, ""))
	assert.False(t, CanBuyResale(tk, "seller"))
	assert.False(t, CanBuyResale(model.Ticket{UserID: "seller"}, "buyer"))
}

func TestGroupByEventCountsEveryTicketOnce(t *testing.T) {
	jazz := &model.Event{ID: "e1", Name: "Jazz Night"}
	tickets := []model.Ticket{
		{ID: "1", EventID: "e1", Event: jazz},
		{ID: "2", EventID: "e2"},
		{ID: "3", EventID: "e1", IsListed: true},
		{ID: "4", EventID: "e1", IsUsed: true, IsListed: true},
		{ID: "5", EventID: "e2", IsUsed: true},
		{ID: "6", EventID: "e3"},
	}

	groups := GroupByEvent(tickets)
	require.Len(t, groups, 3)

	count, statuses := 0, 0
	for _, g := range groups {
		count += g.TicketCount
		statuses += g.Summary.Total()
		assert.Len(t, g.Tickets, g.TicketCount)
	}
	assert.Equal(t, len(tickets), count)
	assert.Equal(t, len(tickets), statuses)

	e1 := groups["e1"]
	assert.Equal(t, Summary{Active: 1, Listed: 1, Used: 1}, e1.Summary)
	assert.Same(t, jazz, e1.Event)
	assert.Equal(t, Summary{Active: 1, Used: 1}, groups["e2"].Summary)
}

func TestGroupByEventUsedAndListedCountsAsUsed(t *testing.T) {
	groups := GroupByEvent([]model.Ticket{{EventID: "e1", IsUsed: true, IsListed: true}})
	assert.Equal(t, Summary{Used: 1}, groups["e1"].Summary)
}

func TestGroupByEventSumsHoldForGeneratedLists(t *testing.T) {
	for n := 0; n < 50; n++ {
		tickets := make([]model.Ticket, n)
		for i := range tickets {
			tickets[i] = model.Ticket{
				ID:       fmt.Sprint(i),
				EventID:  fmt.Sprintf("e%d", i%4),
				IsUsed:   i%3 == 0,
				IsListed: i%2 == 0,
			}
		}
		count, statuses := 0, 0
		for _, g := range GroupByEvent(tickets) {
			count += g.TicketCount
			statuses += g.Summary.Total()
		}
		assert.Equal(t, n, count)
		assert.Equal(t, n, statuses)
	}
}

func TestOrderedKeepsFirstSeenOrder(t *testing.T) {
	groups := GroupByEvent([]model.Ticket{
		{EventID: "c"}, {EventID: "a"}, {EventID: "c"}, {EventID: "b"},
	})
	ordered := Ordered(groups)
	require.Len(t, ordered, 3)
	assert.Equal(t, "c", ordered[0].Tickets[0].EventID)
	assert.Equal(t, "a", ordered[1].Tickets[0].EventID)
	assert.Equal(t, "b", ordered[2].Tickets[0].EventID)
	assert.Empty(t, Ordered(GroupByEvent(nil)))
}
