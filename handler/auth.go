package handler

import (
	"net/http"

	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"
	"eventers-marketplace-client/sandbox"
)

func Login(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req model.LoginRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		auth, err := service.Login(ctx, req)
		if err != nil {
			sendError(ctx, w, "login", err)
			return
		}
		response.SuccessResponse{Message: "Login successful", Data: auth, StatusCode: http.StatusOK}.Send(w)
	}
}

func Register(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req model.RegisterRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		user, err := service.Register(ctx, req)
		if err != nil {
			sendError(ctx, w, "register", err)
			return
		}
		response.Created("OTP sent to your email", user).Send(w)
	}
}

func VerifyOTP(service *sandbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req model.VerifyOTPRequest
		if !decodeBody(ctx, w, r, &req) {
			return
		}
		auth, err := service.VerifyOTP(ctx, req)
		if err != nil {
			sendError(ctx, w, "verifyOTP", err)
			return
		}
		response.SuccessResponse{Message: "Email verified", Data: auth, StatusCode: http.StatusOK}.Send(w)
	}
}
