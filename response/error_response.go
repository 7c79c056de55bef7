package response

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"eventers-marketplace-client/logger"
)

type ErrorResponse struct {
	StatusCode  int    `json:"-"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

func (r ErrorResponse) Error() string {
	return fmt.Sprintf("StatusCode: %d, Success: %t, Message: %s, Status: %s, Description: %s", r.StatusCode, r.Success, r.Message, r.Status, r.Description)
}

func (r ErrorResponse) Send(ctx context.Context, w http.ResponseWriter) {
	if r.StatusCode >= http.StatusInternalServerError {
		logger.Errorf(ctx, "%s", r.Error())
	} else {
		logger.Debugf(ctx, "%s", r.Error())
	}
	if r.StatusCode == 0 {
		r.StatusCode = http.StatusBadRequest
	}
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}

func BadRequest(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     message,
		Status:      "BAD REQUEST",
		Description: description,
	}
}

func ResourceNotFound(message, description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusNotFound,
		Success:     false,
		Message:     message,
		Status:      "NOT FOUND",
		Description: description,
	}
}

func Unauthorized() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Success:    false,
		Message:    "No valid Auth Token",
		Status:     "UNAUTHORISED",
	}
}

func Forbidden() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusForbidden,
		Success:    false,
		Message:    "You are not allowed to perform this action",
		Status:     "FORBIDDEN",
	}
}

func SomethingWrong() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Success:    false,
		Message:    "Sorry, Something went wrong",
		Status:     "SOMETHING_WRONG",
	}
}

func InvalidData(description string) ErrorResponse {
	return ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Success:     false,
		Message:     "Invalid data passed",
		Status:      "INVALID_DATA",
		Description: description,
	}
}

func DuplicateEntry() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    "Email already exists",
		Status:     "DUPLICATE_ENTRY",
	}
}

func UserNotExist() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    "No such user exists",
		Status:     "USER_NOT_EXIST",
	}
}

func CanNotLogin() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnauthorized,
		Success:    false,
		Message:    "Wrong Username or Password",
		Status:     "CANT_LOGIN",
	}
}

func NotVerified() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusForbidden,
		Success:    false,
		Message:    "Please verify your email before logging in",
		Status:     "NOT_VERIFIED",
	}
}

func OTPExpired() ErrorResponse {
	return ErrorResponse{
		Success:    false,
		Message:    "OTP Expired, Please try again",
		Status:     "OTP_EXPIRED",
		StatusCode: http.StatusGone,
	}
}

func OTPMismatch() ErrorResponse {
	return ErrorResponse{
		Success:    false,
		Message:    "Wrong OTP entered",
		Status:     "OTP_MISMATCH",
		StatusCode: http.StatusBadRequest,
	}
}

func NotFound() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusNotFound,
		Success:    false,
		Message:    "Requested Resource Not Found",
		Status:     "NOT_FOUND",
	}
}

func SoldOut(category string) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusConflict,
		Success:    false,
		Message:    fmt.Sprintf("Not enough %s tickets left", category),
		Status:     "SOLD_OUT",
	}
}

// Rejected reports a business rule refusing an otherwise valid request.
func Rejected(message string) ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnprocessableEntity,
		Success:    false,
		Message:    message,
		Status:     "REJECTED",
	}
}

func InsufficientFunds() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusUnprocessableEntity,
		Success:    false,
		Message:    "Insufficient wallet balance",
		Status:     "INSUFFICIENT_FUNDS",
	}
}

func InvalidPin() ErrorResponse {
	return ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Success:    false,
		Message:    "Invalid transaction pin",
		Status:     "INVALID_PIN",
	}
}
