package api

import (
	"net/http"
	"net/mail"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// parseUUIDParam reads a path parameter as a UUID. Non-UUID ids are a 400,
// never a 404.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// strongPassword applies the registration policy: at least 8 characters
// with an upper, a lower, a digit and a symbol.
func strongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
