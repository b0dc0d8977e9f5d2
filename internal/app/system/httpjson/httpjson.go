// Package httpjson writes the API's JSON response envelopes.
//
// Every successful response wraps its payload in {"data": …} (optionally
// with a "message"), errors are {"message": …}, and validation failures
// are {"errors": [{"field": …, "message": …}, …]}. Handlers never write
// JSON by hand; they go through these helpers so the envelope stays
// uniform across features.
package httpjson

import (
	"encoding/json"
	"net/http"
)

type dataEnvelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type errorEnvelope struct {
	Message string `json:"message"`
}

type validationEnvelope struct {
	Errors any `json:"errors"`
}

// JSON writes v as the raw response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Data writes {"data": v}.
func Data(w http.ResponseWriter, status int, v any) {
	JSON(w, status, dataEnvelope{Data: v})
}

// DataMessage writes {"message": msg, "data": v}.
func DataMessage(w http.ResponseWriter, status int, msg string, v any) {
	JSON(w, status, dataEnvelope{Message: msg, Data: v})
}

// Error writes {"message": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorEnvelope{Message: msg})
}

// ValidationFailed writes a 400 with the field-by-field error list.
func ValidationFailed(w http.ResponseWriter, errs any) {
	JSON(w, http.StatusBadRequest, validationEnvelope{Errors: errs})
}
