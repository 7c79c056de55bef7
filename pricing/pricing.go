package pricing

import (
	"eventers-marketplace-client/model"

	"github.com/shopspring/decimal"
)

const (
	MinResaleQuantity = 1
	MaxResaleQuantity = 8
)

var (
	platformRate  = decimal.RequireFromString("0.05")
	organizerRate = decimal.RequireFromString("0.95")
	half          = decimal.RequireFromString("0.5")
)

type Item struct {
	ID    string
	Price decimal.Decimal
}

// Subtotal sums price × quantity over items. Items missing from quantities
// count def times.
func Subtotal(items []Item, quantities map[string]int, def int) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		q, ok := quantities[item.ID]
		if !ok {
			q = def
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(q))))
	}
	return total
}

// Total equals the subtotal; no fees are added on the client.
func Total(items []Item, quantities map[string]int, def int) decimal.Decimal {
	return Subtotal(items, quantities, def)
}

// ClampResaleQuantity maps a missing or out of range resale quantity into 1..8.
func ClampResaleQuantity(q int) int {
	if q < MinResaleQuantity {
		return MinResaleQuantity
	}
	if q > MaxResaleQuantity {
		return MaxResaleQuantity
	}
	return q
}

// ResaleQuote prices a resale purchase of q units of a listed ticket.
func ResaleQuote(price decimal.Decimal, q int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(ClampResaleQuantity(q))))
}

func PlatformFee(price decimal.Decimal) decimal.Decimal {
	return roundHalfUp(price.Mul(platformRate))
}

func OrganizerReceives(price decimal.Decimal) decimal.Decimal {
	return roundHalfUp(price.Mul(organizerRate))
}

// roundHalfUp rounds to a whole unit with halves going toward +inf, so
// -2.5 becomes -2 and 2.5 becomes 3.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// FeeBreakdown is shown to a seller before listing a ticket. It is
// informative only; the API applies the actual split.
type FeeBreakdown struct {
	Price             decimal.Decimal `json:"price"`
	PlatformFee       decimal.Decimal `json:"platformFee"`
	OrganizerReceives decimal.Decimal `json:"organizerReceives"`
}

func Breakdown(price decimal.Decimal) FeeBreakdown {
	return FeeBreakdown{
		Price:             price,
		PlatformFee:       PlatformFee(price),
		OrganizerReceives: OrganizerReceives(price),
	}
}

// Cart holds the quantities picked for the ticket categories of one event.
type Cart struct {
	categories []model.TicketCategory
	quantities map[string]int
}

func NewCart(categories []model.TicketCategory) *Cart {
	return &Cart{
		categories: categories,
		quantities: make(map[string]int, len(categories)),
	}
}

// Set stores the quantity for a category, clamped to [0, available].
// Unknown categories are ignored and report 0.
func (c *Cart) Set(categoryID string, q int) int {
	for _, tc := range c.categories {
		if tc.ID != categoryID {
			continue
		}
		if q < 0 {
			q = 0
		}
		if avail := tc.Available(); q > avail {
			q = avail
		}
		c.quantities[categoryID] = q
		return q
	}
	return 0
}

func (c *Cart) Quantity(categoryID string) int {
	return c.quantities[categoryID]
}

func (c *Cart) Items() []Item {
	items := make([]Item, 0, len(c.categories))
	for _, tc := range c.categories {
		items = append(items, Item{ID: tc.ID, Price: tc.Price})
	}
	return items
}

func (c *Cart) Subtotal() decimal.Decimal {
	return Subtotal(c.Items(), c.quantities, 0)
}

func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal()
}

// Count is the number of tickets selected across categories.
func (c *Cart) Count() int {
	n := 0
	for _, q := range c.quantities {
		n += q
	}
	return n
}

// Selections returns the non-zero quantities in category order, ready for
// a purchase request.
func (c *Cart) Selections() []model.TicketSelection {
	var out []model.TicketSelection
	for _, tc := range c.categories {
		if q := c.quantities[tc.ID]; q > 0 {
			out = append(out, model.TicketSelection{TicketCategoryID: tc.ID, Quantity: q})
		}
	}
	return out
}
