package middleware

import (
	"context"

	"github.com/google/uuid"
)

// Context key type to avoid collisions
type contextKey string

const (
	// IdentityKey is the context key for the authenticated identity
	IdentityKey contextKey = "identity"
)

// Identity is the per-request authenticated caller, derived from token
// claims. It lives only in the request context and is never persisted.
type Identity struct {
	UserID uuid.UUID
	RoleID uuid.UUID
}

// GetIdentityFromContext retrieves the authenticated identity from context
func GetIdentityFromContext(ctx context.Context) *Identity {
	if val := ctx.Value(IdentityKey); val != nil {
		if identity, ok := val.(*Identity); ok {
			return identity
		}
	}
	return nil
}

// WithIdentity adds an authenticated identity to the context
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
