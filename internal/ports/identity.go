package ports

import (
	"context"

	"github.com/renato0307/gitlink/internal/domain"
)

// IdentityProvider performs the redirect-based sign in with the hosted service
type IdentityProvider interface {
	// InitiateAuth starts the handshake and returns the redirect marker that stands
	// for "returned from the authorization page"
	InitiateAuth(ctx context.Context) (string, error)
	// Exchange trades the redirect marker for a session
	Exchange(ctx context.Context, marker string) (domain.AuthGrant, error)
}

// RedirectMarkerStore holds the redirect marker between the two handshake steps
type RedirectMarkerStore interface {
	Clear() error
	Get() (string, bool)
	Set(marker string) error
}
