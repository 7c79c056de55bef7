package client

import (
	"context"
	"net/http"

	"eventers-marketplace-client/model"
)

func (cl *Client) Profile(ctx context.Context) (model.User, error) {
	var u model.User
	err := cl.query(ctx, scopeUser, "/user/profile", "/user/profile", nil, &u)
	return u, err
}

func (cl *Client) UpdateProfile(ctx context.Context, in model.ProfileUpdate) (model.User, error) {
	var u model.User
	if err := in.Validate(); err != nil {
		return u, validationError(err)
	}
	f := &form{}
	f.set("name", in.Name)
	f.attach("profileImage", in.ImagePath)
	err := cl.sendForm(ctx, http.MethodPatch, "/user/profile", "/user/profile", f, &u, scopeUser, scopeAdmin)
	return u, err
}
