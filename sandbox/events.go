package sandbox

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"eventers-marketplace-client/event"
	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/pagination"
	"eventers-marketplace-client/response"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// EventQuery mirrors the query string of GET /events.
type EventQuery struct {
	Filter event.Filter
	Page   int
	Limit  int
}

func canManage(u model.User) bool {
	return u.Role == model.RoleOrganizer || u.Role.IsAdmin()
}

func owns(u model.User, e *model.Event) bool {
	return e.OrganizerID == u.ID || u.Role.IsAdmin()
}

// Events lists active events, filtered and paged. A zero Limit returns
// every match.
func (s *Service) Events(_ context.Context, q EventQuery) []model.Event {
	s.mu.RLock()
	all := make([]model.Event, 0, len(s.events))
	for id, e := range s.events {
		if e.IsActive {
			all = append(all, *s.eventCopy(id))
		}
	}
	s.mu.RUnlock()

	sortEvents(all)
	matched := event.Apply(all, q.Filter)
	if q.Limit <= 0 {
		return matched
	}
	return pagination.Paginate(matched, q.Page, q.Limit).Items
}

func (s *Service) MyEvents(_ context.Context, organizerID string) []model.Event {
	s.mu.RLock()
	var out []model.Event
	for id, e := range s.events {
		if e.OrganizerID == organizerID {
			out = append(out, *s.eventCopy(id))
		}
	}
	s.mu.RUnlock()
	sortEvents(out)
	return out
}

func (s *Service) EventBySlug(_ context.Context, slug string) (model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.slugs[slug]
	if !ok {
		return model.Event{}, response.ResourceNotFound(fmt.Sprintf("No event found for %s", slug), "")
	}
	return *s.eventCopy(id), nil
}

func (s *Service) CreateEvent(ctx context.Context, organizer model.User, in model.EventInput, bannerName string) (model.Event, error) {
	if !canManage(organizer) {
		return model.Event{}, response.Forbidden()
	}
	if err := in.Validate(); err != nil {
		return model.Event{}, response.InvalidData(err.Error())
	}

	e := model.Event{
		ID:          newID(),
		Name:        in.Name,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date.UTC(),
		Category:    in.Category,
		IsActive:    true,
		OrganizerID: organizer.ID,
	}
	for _, tc := range in.TicketCategories {
		e.TicketCategories = append(e.TicketCategories, model.TicketCategory{
			ID:         newID(),
			Name:       tc.Name,
			Price:      tc.Price,
			MaxTickets: tc.MaxTickets,
		})
	}
	if bannerName != "" {
		e.BannerURL = "/uploads/" + bannerName
	}

	s.mu.Lock()
	e.Slug = s.uniqueSlug(e.Name)
	s.events[e.ID] = &e
	s.slugs[e.Slug] = e.ID
	s.mu.Unlock()

	logger.Infof(ctx, "createEvent: %s created %s (%s)", organizer.Email, e.Name, e.Slug)
	return e, nil
}

func (s *Service) uniqueSlug(name string) string {
	base := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if base == "" {
		base = "event"
	}
	slug := base
	for i := 2; ; i++ {
		if _, taken := s.slugs[slug]; !taken {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *Service) UpdateEvent(_ context.Context, u model.User, id string, in model.EventUpdate, bannerName string) (model.Event, error) {
	if err := in.Validate(); err != nil {
		return model.Event{}, response.InvalidData(err.Error())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, response.NotFound()
	}
	if !owns(u, e) {
		return model.Event{}, response.Forbidden()
	}

	if len(in.TicketCategories) > 0 {
		cats, err := mergeCategories(e.TicketCategories, in.TicketCategories)
		if err != nil {
			return model.Event{}, err
		}
		e.TicketCategories = cats
	}
	if in.Name != "" {
		e.Name = in.Name
	}
	if in.Description != "" {
		e.Description = in.Description
	}
	if in.Location != "" {
		e.Location = in.Location
	}
	if in.Category != "" {
		e.Category = in.Category
	}
	if in.Date != nil {
		e.Date = in.Date.UTC()
	}
	if bannerName != "" {
		e.BannerURL = "/uploads/" + bannerName
	}
	return *s.eventCopy(id), nil
}

// mergeCategories applies a new category list by name. Categories that
// already sold tickets keep their id and minted count and can neither be
// dropped nor shrunk below what was sold.
func mergeCategories(current []model.TicketCategory, next []model.TicketCategoryInput) ([]model.TicketCategory, error) {
	byName := make(map[string]model.TicketCategory, len(current))
	for _, tc := range current {
		byName[tc.Name] = tc
	}
	out := make([]model.TicketCategory, 0, len(next))
	for _, in := range next {
		tc, ok := byName[in.Name]
		if !ok {
			tc = model.TicketCategory{ID: newID(), Name: in.Name}
		}
		if in.MaxTickets < tc.Minted {
			return nil, response.Rejected(fmt.Sprintf("%s already sold %d tickets", tc.Name, tc.Minted))
		}
		tc.Price = in.Price
		tc.MaxTickets = in.MaxTickets
		out = append(out, tc)
		delete(byName, in.Name)
	}
	for _, tc := range byName {
		if tc.Minted > 0 {
			return nil, response.Rejected(fmt.Sprintf("%s already sold tickets and cannot be removed", tc.Name))
		}
	}
	return out, nil
}

func (s *Service) DeleteEvent(ctx context.Context, u model.User, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return response.NotFound()
	}
	if !owns(u, e) {
		return response.Forbidden()
	}
	if event.Minted(*e) > 0 {
		return response.Rejected("Events with sold tickets cannot be deleted")
	}
	delete(s.slugs, e.Slug)
	delete(s.events, id)
	logger.Infof(ctx, "deleteEvent: %s deleted %s", u.Email, e.Slug)
	return nil
}

// ToggleEvent flips IsActive. Admin only.
func (s *Service) ToggleEvent(_ context.Context, u model.User, id string) (model.Event, error) {
	if !u.Role.IsAdmin() {
		return model.Event{}, response.Forbidden()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, response.NotFound()
	}
	e.IsActive = !e.IsActive
	return *s.eventCopy(id), nil
}
