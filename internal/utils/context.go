package utils

import (
	"context"

	"github.com/google/uuid"
)

type identityKey struct{}

// Identity is the authenticated caller attached by the auth gate.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// GetUserIDFromContext returns uuid.Nil when the request is anonymous.
func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := IdentityFromContext(ctx)
	return id.UserID
}
