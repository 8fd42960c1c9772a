// Package common holds the error taxonomy shared by repositories, services
// and the HTTP layer.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// repository specific errors
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email is already in use")

	// service specific errors
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrNoteNotFound       = fmt.Errorf("note %w", ErrNotFound)
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// auth gate errors
	ErrMissingToken = errors.New("bearer token not provided")
	ErrInvalidToken = errors.New("bearer token is invalid or expired")

	// request errors
	ErrMalformedBody = errors.New("the request body is malformed or contains invalid data")
	ErrEmptyBody     = errors.New("the request body is empty or not provided")
	ErrInvalidID     = errors.New("invalid id")
)

// ValidationError carries one message per offending request field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation error: " + strings.Join(keys, ", ")
}
