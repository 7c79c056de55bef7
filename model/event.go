package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

func init() {
	// The marketplace API speaks plain JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

type Event struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	Location         string           `json:"location"`
	Date             time.Time        `json:"date"`
	Category         string           `json:"category"`
	BannerURL        string           `json:"bannerUrl,omitempty"`
	IsActive         bool             `json:"isActive"`
	OrganizerID      string           `json:"organizerId"`
	Slug             string           `json:"slug"`
	TicketCategories []TicketCategory `json:"ticketCategories"`
}

type TicketCategory struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	MaxTickets int             `json:"maxTickets"`
	Minted     int             `json:"minted"`
}

// Available is the number of tickets still purchasable in the category.
func (tc TicketCategory) Available() int {
	if tc.Minted >= tc.MaxTickets {
		return 0
	}
	return tc.MaxTickets - tc.Minted
}

func (tc TicketCategory) SoldOut() bool {
	return tc.Available() == 0
}

// TicketCategoryInput describes one tier when creating or updating an event.
type TicketCategoryInput struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	MaxTickets int             `json:"maxTickets"`
}

func (t TicketCategoryInput) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Price, validation.By(nonNegative)),
		validation.Field(&t.MaxTickets, validation.Required, validation.Min(1)),
	)
}

// EventInput is sent as multipart/form-data; BannerPath is uploaded as the
// "banner" file part when set.
type EventInput struct {
	Name             string                `json:"name"`
	Description      string                `json:"description"`
	Location         string                `json:"location"`
	Date             time.Time             `json:"date"`
	Category         string                `json:"category"`
	TicketCategories []TicketCategoryInput `json:"ticketCategories"`
	BannerPath       string                `json:"-"`
}

func (e EventInput) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required, validation.Length(3, 120)),
		validation.Field(&e.Location, validation.Required),
		validation.Field(&e.Date, validation.Required),
		validation.Field(&e.Category, validation.Required),
		validation.Field(&e.TicketCategories, validation.Required),
	)
}

// EventUpdate carries the fields of a partial update; zero values are not sent.
type EventUpdate struct {
	Name             string                `json:"name,omitempty"`
	Description      string                `json:"description,omitempty"`
	Location         string                `json:"location,omitempty"`
	Date             *time.Time            `json:"date,omitempty"`
	Category         string                `json:"category,omitempty"`
	TicketCategories []TicketCategoryInput `json:"ticketCategories,omitempty"`
	BannerPath       string                `json:"-"`
}

func (e EventUpdate) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Length(3, 120)),
		validation.Field(&e.TicketCategories),
	)
}
