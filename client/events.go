package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"eventers-marketplace-client/model"
)

// EventQuery narrows GET /events on the server side. Client side filtering
// is done with event.Apply.
type EventQuery struct {
	Search   string
	Category string
	Location string
	Page     int
	Limit    int
}

func (q EventQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (cl *Client) Events(ctx context.Context, q EventQuery) ([]model.Event, error) {
	var events []model.Event
	err := cl.query(ctx, scopeEvents, "/events", "/events", q.values(), &events)
	return events, err
}

// MyEvents lists the events organized by the logged-in user.
func (cl *Client) MyEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := cl.query(ctx, scopeEvents, "/events/my-events", "/events/my-events", nil, &events)
	return events, err
}

func (cl *Client) EventBySlug(ctx context.Context, slug string) (model.Event, error) {
	var e model.Event
	if slug == "" {
		return e, validationError(fmt.Errorf("slug: cannot be blank"))
	}
	err := cl.query(ctx, scopeEvents, "/events/slug/{slug}", "/events/slug/"+url.PathEscape(slug), nil, &e)
	return e, err
}

func (cl *Client) CreateEvent(ctx context.Context, in model.EventInput) (model.Event, error) {
	var e model.Event
	if err := in.Validate(); err != nil {
		return e, validationError(err)
	}
	f, err := eventForm(in.Name, in.Description, in.Location, in.Category, &in.Date, in.TicketCategories, in.BannerPath)
	if err != nil {
		return e, err
	}
	err = cl.sendForm(ctx, http.MethodPost, "/events/create", "/events/create", f, &e, scopeEvents, scopeAdmin)
	return e, err
}

func (cl *Client) UpdateEvent(ctx context.Context, id string, in model.EventUpdate) (model.Event, error) {
	var e model.Event
	if err := in.Validate(); err != nil {
		return e, validationError(err)
	}
	f, err := eventForm(in.Name, in.Description, in.Location, in.Category, in.Date, in.TicketCategories, in.BannerPath)
	if err != nil {
		return e, err
	}
	err = cl.sendForm(ctx, http.MethodPatch, "/events/{id}", "/events/"+url.PathEscape(id), f, &e, scopeEvents, scopeAdmin)
	return e, err
}

func (cl *Client) DeleteEvent(ctx context.Context, id string) error {
	return cl.mutate(ctx, http.MethodDelete, "/events/{id}", "/events/"+url.PathEscape(id), nil, nil, scopeEvents, scopeAdmin)
}

func eventForm(name, description, location, category string, date *time.Time, cats []model.TicketCategoryInput, banner string) (*form, error) {
	f := &form{}
	f.set("name", name)
	f.set("description", description)
	f.set("location", location)
	f.set("category", category)
	if date != nil && !date.IsZero() {
		f.set("date", date.UTC().Format(time.RFC3339))
	}
	if len(cats) > 0 {
		raw, err := json.Marshal(cats)
		if err != nil {
			return nil, fmt.Errorf("eventForm: error marshalling ticket categories: %w", err)
		}
		f.set("ticketCategories", string(raw))
	}
	f.attach("banner", banner)
	return f, nil
}
