package client

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindValidation is a request rejected locally before it was sent.
	KindValidation Kind = iota + 1
	KindAPI
	KindAuth
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAPI:
		return "api"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	}
	return "unknown"
}

// APIError is the single error type returned by Client methods. Message is
// the server's message when it sent one.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Status     string
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether a query may be attempted again. Auth failures
// and requests rejected before sending never are.
func (e *APIError) Retryable() bool {
	return e.Kind != KindAuth && e.Kind != KindValidation
}

func validationError(err error) error {
	return &APIError{Kind: KindValidation, Message: err.Error(), Err: err}
}

func statusError(code int, message, status string) *APIError {
	kind := KindAPI
	if code == http.StatusUnauthorized || code == http.StatusForbidden {
		kind = KindAuth
	}
	if message == "" {
		message = fmt.Sprintf("Request failed with status code %d", code)
	}
	return &APIError{Kind: kind, StatusCode: code, Message: message, Status: status}
}

func networkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: err.Error(), Err: err}
}

func kindOf(err error) Kind {
	var e *APIError
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsAuth(err error) bool {
	return kindOf(err) == KindAuth
}

func IsValidation(err error) bool {
	return kindOf(err) == KindValidation
}

func IsNotFound(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}
