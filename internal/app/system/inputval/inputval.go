// Package inputval collects field-by-field validation errors for request
// payloads. A handler builds an Errors value, runs the checks that apply
// to its payload, and reports the whole list in one 400 response instead
// of failing on the first bad field.
package inputval

import (
	"fmt"
	"net/mail"
	"strings"
)

// FieldError reports one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors accumulates field errors; the zero value is ready to use.
type Errors []FieldError

// Ok reports whether no errors were collected.
func (e Errors) Ok() bool { return len(e) == 0 }

// Add appends an error for the given field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Require adds an error when value is empty after trimming.
func (e *Errors) Require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, message)
	}
}

// Email adds an error when value is not a parseable email address.
func (e *Errors) Email(field, value string) {
	if _, err := mail.ParseAddress(strings.TrimSpace(value)); err != nil {
		e.Add(field, "Valid email is required")
	}
}

// MinLen adds an error when value is shorter than n characters.
func (e *Errors) MinLen(field, value string, n int, message string) {
	if len(value) < n {
		e.Add(field, message)
	}
}

// OneOf adds an error when a non-empty value is not in the allowed set.
// Empty values pass; pair with Require when the field is mandatory.
func (e *Errors) OneOf(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
}

// Range adds an error when v falls outside [min, max].
func (e *Errors) Range(field string, v, min, max float64, message string) {
	if v < min || v > max {
		e.Add(field, message)
	}
}
