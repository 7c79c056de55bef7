package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"eventers-marketplace-client/event"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"
	"eventers-marketplace-client/sandbox"

	"github.com/gorilla/mux"
)

func GetEvents(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))
		events := service.Events(r.Context(), sandbox.EventQuery{
			Filter: event.Filter{
				Search:     q.Get("search"),
				Location:   q.Get("location"),
				Category:   q.Get("category"),
				PriceRange: q.Get("priceRange"),
			},
			Page:  page,
			Limit: limit,
		})
		response.OK(nonNil(events)).Send(w)
	}
}

func GetMyEvents(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		response.OK(nonNil(service.MyEvents(ctx, u.ID))).Send(w)
	}
}

func GetEventBySlug(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		e, err := service.EventBySlug(ctx, mux.Vars(r)["slug"])
		if err != nil {
			sendError(ctx, w, "getEventBySlug", err)
			return
		}
		response.OK(e).Send(w)
	}
}

func CreateEvent(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.BadRequest("invalid multipart form", err.Error()).Send(ctx, w)
			return
		}
		in := model.EventInput{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			Location:    r.FormValue("location"),
			Category:    r.FormValue("category"),
		}
		var err error
		if in.TicketCategories, err = formCategories(r); err != nil {
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		if d := r.FormValue("date"); d != "" {
			if in.Date, err = time.Parse(time.RFC3339, d); err != nil {
				response.InvalidData(fmt.Sprintf("date: %v", err)).Send(ctx, w)
				return
			}
		}

		e, err := service.CreateEvent(ctx, u, in, uploadedName(r, "banner"))
		if err != nil {
			sendError(ctx, w, "createEvent", err)
			return
		}
		response.Created("Event created", e).Send(w)
	}
}

func UpdateEvent(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			response.BadRequest("invalid multipart form", err.Error()).Send(ctx, w)
			return
		}
		in := model.EventUpdate{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			Location:    r.FormValue("location"),
			Category:    r.FormValue("category"),
		}
		var err error
		if in.TicketCategories, err = formCategories(r); err != nil {
			response.InvalidData(err.Error()).Send(ctx, w)
			return
		}
		if d := r.FormValue("date"); d != "" {
			date, err := time.Parse(time.RFC3339, d)
			if err != nil {
				response.InvalidData(fmt.Sprintf("date: %v", err)).Send(ctx, w)
				return
			}
			in.Date = &date
		}

		e, err := service.UpdateEvent(ctx, u, mux.Vars(r)["id"], in, uploadedName(r, "banner"))
		if err != nil {
			sendError(ctx, w, "updateEvent", err)
			return
		}
		response.SuccessResponse{Message: "Event updated", Data: e, StatusCode: http.StatusOK}.Send(w)
	}
}

func DeleteEvent(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		if err := service.DeleteEvent(ctx, u, mux.Vars(r)["id"]); err != nil {
			sendError(ctx, w, "deleteEvent", err)
			return
		}
		response.SuccessResponse{Message: "Event deleted", StatusCode: http.StatusOK}.Send(w)
	}
}

func formCategories(r *http.Request) ([]model.TicketCategoryInput, error) {
	raw := r.FormValue("ticketCategories")
	if raw == "" {
		return nil, nil
	}
	var cats []model.TicketCategoryInput
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil, fmt.Errorf("ticketCategories: %w", err)
	}
	return cats, nil
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
