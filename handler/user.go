package handler

import (
	"net/http"

	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"
	"eventers-marketplace-client/sandbox"
)

func GetProfile(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		u, ok := caller(ctx, w)
		if !ok {
			return
		}
		profile, err := service.Profile(ctx, u.ID)
		if err != nil {
			sendError(ctx, w, "getProfile", err)
			return
		}
		response.OK(profile).Send(w)
	}
}

func UpdateProfile(service *sandbox.Service) http.HandlerFunc {
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
		in := model.ProfileUpdate{Name: r.FormValue("name")}
		profile, err := service.UpdateProfile(ctx, u.ID, in, uploadedName(r, "profileImage"))
		if err != nil {
			sendError(ctx, w, "updateProfile", err)
			return
		}
		response.SuccessResponse{Message: "Profile updated", Data: profile, StatusCode: http.StatusOK}.Send(w)
	}
}
