package httpapi

import (
	"encoding/json"
	"net/http"
)

// envelope is the response shape of the auth endpoints.
type envelope struct {
	Success             bool   `json:"success"`
	Message             string `json:"message,omitempty"`
	UserSub             string `json:"user_sub,omitempty"`
	UserConfirmed       *bool  `json:"user_confirmed,omitempty"`
	CodeDeliveryDetails any    `json:"code_delivery_details,omitempty"`
	ErrorCode           string `json:"error_code,omitempty"`
	ErrorMessage        string `json:"error_message,omitempty"`
}

// errorBody is the failure shape of the settings endpoints.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeFailure(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Success: false, ErrorCode: code, ErrorMessage: message})
}
