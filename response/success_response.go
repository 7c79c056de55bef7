package response

import (
	"encoding/json"
	"net/http"
)

// SuccessResponse is the envelope every successful API call answers with.
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
	StatusCode int         `json:"-"`
}

func (r SuccessResponse) Send(w http.ResponseWriter) {
	r.Success = true
	if r.StatusCode == 0 {
		r.StatusCode = http.StatusOK
	}
	w.WriteHeader(r.StatusCode)
	json.NewEncoder(w).Encode(r)
}

func OK(data interface{}) SuccessResponse {
	return SuccessResponse{Data: data, StatusCode: http.StatusOK}
}

func Created(message string, data interface{}) SuccessResponse {
	return SuccessResponse{Message: message, Data: data, StatusCode: http.StatusCreated}
}

// Envelope is the decoding side of both response shapes.
type Envelope struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
}
