package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/middleware"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/response"
)

const maxUploadBytes = 10 << 20

func decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.Debugf(ctx, "decodeBody: error unmarshalling request body: %+v", err)
		response.BadRequest("invalid request body", err.Error()).Send(ctx, w)
		return false
	}
	return true
}

// sendError answers with err when it is already an API error and with a
// generic 500 otherwise.
func sendError(ctx context.Context, w http.ResponseWriter, fn string, err error) {
	var e response.ErrorResponse
	if errors.As(err, &e) {
		e.Send(ctx, w)
		return
	}
	logger.Errorf(ctx, "%s: %+v", fn, err)
	response.SomethingWrong().Send(ctx, w)
}

func caller(ctx context.Context, w http.ResponseWriter) (model.User, bool) {
	u, ok := middleware.UserFrom(ctx)
	if !ok {
		response.Unauthorized().Send(ctx, w)
	}
	return u, ok
}

// uploadedName returns the client file name of an optional multipart file.
func uploadedName(r *http.Request, field string) string {
	f, header, err := r.FormFile(field)
	if err != nil {
		return ""
	}
	f.Close()
	return header.Filename
}
