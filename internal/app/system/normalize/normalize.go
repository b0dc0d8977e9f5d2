// Package normalize centralizes input normalization for fields that are
// stored or compared case-insensitively. Handlers and stores should run
// values through these helpers before persisting or querying so lookups
// behave consistently regardless of how the caller typed them.
package normalize

import "strings"

// Email lowercases and trims an email address. Uniqueness on users.email
// is case-insensitive because every write path goes through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value ("student" | "faculty").
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Status lowercases and trims an enrollment status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Code uppercases and trims a classroom join code. Codes are stored
// uppercase, so lookups fold user input the same way.
func Code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
