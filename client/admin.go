package client

import (
	"context"
	"net/http"
	"net/url"

	"eventers-marketplace-client/model"
)

func (cl *Client) AdminStats(ctx context.Context) (model.AdminStats, error) {
	var s model.AdminStats
	err := cl.query(ctx, scopeAdmin, "/admin/stats", "/admin/stats", nil, &s)
	return s, err
}

func (cl *Client) AdminUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := cl.query(ctx, scopeAdmin, "/admin/users", "/admin/users", nil, &users)
	return users, err
}

// ToggleEvent flips an event between active and inactive.
func (cl *Client) ToggleEvent(ctx context.Context, id string) (model.Event, error) {
	var e model.Event
	err := cl.mutate(ctx, http.MethodPatch, "/admin/events/{id}/toggle", "/admin/events/"+url.PathEscape(id)+"/toggle", nil, &e, scopeEvents, scopeAdmin)
	return e, err
}
