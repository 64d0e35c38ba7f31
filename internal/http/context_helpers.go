package httpx

import (
	"context"

	domainauth "github.com/datalabs-io/platform-api/internal/domain/auth"
)

// identityKey is an unexported context key type for the authorized identity.
type identityKey struct{}

// SetIdentityInContext stores the authorized identity in the request context.
func SetIdentityInContext(ctx context.Context, identity domainauth.Context) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext retrieves the authorized identity from the request
// context. The second return value is false when no identity was attached,
// i.e. the handler was reached without passing RequireAuth.
func IdentityFromContext(ctx context.Context) (domainauth.Context, bool) {
	identity, ok := ctx.Value(identityKey{}).(domainauth.Context)
	return identity, ok
}
