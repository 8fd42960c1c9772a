// Package services holds the business rules for accounts and notes.
package services

import (
	"strings"
	"time"
)

// Postgres keeps microseconds; truncating here makes in-memory and stored
// values compare equal.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
