package auth

import "context"

// Identity is the authenticated caller as the access gate sees it:
// the username and granted role, nothing more.
type Identity struct {
	Username string
	Role     string
}

type contextKey string

const identityKey = contextKey("identity")

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the authenticated identity from ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
