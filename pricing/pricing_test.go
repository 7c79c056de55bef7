package pricing

import (
	"testing"

	"eventers-marketplace-client/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSubtotalSingleCategoryIsPriceTimesQuantity(t *testing.T) {
	items := []Item{{ID: "vip", Price: d("2500")}}
	for q := 0; q <= 20; q++ {
		got := Subtotal(items, map[string]int{"vip": q}, 0)
		assert.True(t, d("2500").Mul(decimal.NewFromInt(int64(q))).Equal(got), "q=%d", q)
	}
	assert.True(t, Subtotal(items, map[string]int{"vip": 0}, 0).IsZero())
}

func TestSubtotalMissingQuantityUsesDefault(t *testing.T) {
	items := []Item{{ID: "a", Price: d("1000")}, {ID: "b", Price: d("300")}}

	assert.True(t, d("2000").Equal(Subtotal(items, map[string]int{"a": 2}, 0)))
	assert.True(t, d("2300").Equal(Subtotal(items, map[string]int{"a": 2}, 1)))
	assert.True(t, Total(items, nil, 0).IsZero())
}

func TestSubtotalAllowsFreeTickets(t *testing.T) {
	items := []Item{{ID: "free", Price: decimal.Zero}, {ID: "paid", Price: d("500")}}
	assert.True(t, d("500").Equal(Subtotal(items, map[string]int{"free": 4, "paid": 1}, 0)))
}

func TestClampResaleQuantity(t *testing.T) {
	assert.Equal(t, 1, ClampResaleQuantity(0))
	assert.Equal(t, 1, ClampResaleQuantity(-3))
	assert.Equal(t, 5, ClampResaleQuantity(5))
	assert.Equal(t, 8, ClampResaleQuantity(8))
	assert.Equal(t, 8, ClampResaleQuantity(40))
}

func TestResaleQuote(t *testing.T) {
	assert.True(t, d("7000").Equal(ResaleQuote(d("7000"), 0)))
	assert.True(t, d("21000").Equal(ResaleQuote(d("7000"), 3)))
	assert.True(t, d("56000").Equal(ResaleQuote(d("7000"), 9)))
}

func TestFeeBreakdownRoundsToWholeUnits(t *testing.T) {
	b := Breakdown(d("10000"))
	assert.True(t, d("500").Equal(b.PlatformFee))
	assert.True(t, d("9500").Equal(b.OrganizerReceives))

	b = Breakdown(d("1250"))
	// 62.5 and 1187.5 both round half up.
	assert.True(t, d("63").Equal(b.PlatformFee))
	assert.True(t, d("1188").Equal(b.OrganizerReceives))

	b = Breakdown(decimal.Zero)
	assert.True(t, b.PlatformFee.IsZero())
	assert.True(t, b.OrganizerReceives.IsZero())
}

func TestFeeBreakdownNegativeHalvesRoundUp(t *testing.T) {
	assert.True(t, d("-2").Equal(PlatformFee(d("-50"))), PlatformFee(d("-50")).String())
	assert.True(t, d("-47").Equal(OrganizerReceives(d("-50"))), OrganizerReceives(d("-50")).String())
	assert.True(t, d("-5").Equal(PlatformFee(d("-100"))))
}

func TestCartClampsToAvailability(t *testing.T) {
	cart := NewCart([]model.TicketCategory{
		{ID: "reg", Price: d("3000"), MaxTickets: 100, Minted: 98},
		{ID: "vip", Price: d("12000"), MaxTickets: 10, Minted: 0},
	})

	assert.Equal(t, 2, cart.Set("reg", 5))
	assert.Equal(t, 0, cart.Set("vip", -1))
	assert.Equal(t, 0, cart.Set("missing", 3))
	assert.Equal(t, 1, cart.Set("vip", 1))

	assert.Equal(t, 3, cart.Count())
	assert.True(t, d("18000").Equal(cart.Total()))

	sel := cart.Selections()
	require.Len(t, sel, 2)
	assert.Equal(t, model.TicketSelection{TicketCategoryID: "reg", Quantity: 2}, sel[0])
	assert.Equal(t, model.TicketSelection{TicketCategoryID: "vip", Quantity: 1}, sel[1])
}

func TestCartUnselectedCategoriesContributeNothing(t *testing.T) {
	cart := NewCart([]model.TicketCategory{
		{ID: "reg", Price: d("3000"), MaxTickets: 100},
		{ID: "vip", Price: d("12000"), MaxTickets: 10},
	})
	assert.True(t, cart.Subtotal().IsZero())
	assert.Empty(t, cart.Selections())

	cart.Set("vip", 2)
	assert.True(t, d("24000").Equal(cart.Subtotal()))
	assert.Equal(t, 0, cart.Quantity("reg"))
}
