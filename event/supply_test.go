package event

import (
	"testing"

	"eventers-marketplace-client/model"

	"github.com/stretchr/testify/assert"
)

func TestSupplyCounts(t *testing.T) {
	e := jazzNight()
	e.TicketCategories[0].Minted = 40
	e.TicketCategories[1].Minted = 20

	assert.Equal(t, 120, Capacity(e))
	assert.Equal(t, 60, Minted(e))
	assert.Equal(t, 60, Available(e))
	assert.False(t, SoldOut(e))
	assert.True(t, e.TicketCategories[1].SoldOut())
	assert.NoError(t, ValidateSupply(e))

	e.TicketCategories[0].Minted = 100
	assert.True(t, SoldOut(e))
}

func TestValidateSupplyRejectsOverMinting(t *testing.T) {
	e := jazzNight()
	e.TicketCategories[1].Minted = 21
	assert.Error(t, ValidateSupply(e))

	e = jazzNight()
	e.TicketCategories[0].MaxTickets = 0
	assert.Error(t, ValidateSupply(e))

	e = jazzNight()
	e.TicketCategories[0].Price = price(-1)
	assert.Error(t, ValidateSupply(e))
}

func TestPriceSpan(t *testing.T) {
	lo, hi, ok := PriceSpan(jazzNight())
	assert.True(t, ok)
	assert.True(t, price(3000).Equal(lo))
	assert.True(t, price(12000).Equal(hi))

	_, _, ok = PriceSpan(model.Event{})
	assert.False(t, ok)
}
