package fake

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/renato0307/gitlink/internal/domain"
	"github.com/renato0307/gitlink/internal/ports"
)

// CallbackMarker prefixes every redirect marker, mirroring the "#github-callback"
// fragment the hosted IDE uses
const CallbackMarker = "github-callback"

// AccountSource supplies the account the fake provider signs in as
type AccountSource interface {
	Account(ctx context.Context) (domain.Account, error)
}

// Identity is an identity provider that approves every sign in. Each redirect marker can
// be exchanged exactly once.
type Identity struct {
	accounts AccountSource
	mu       sync.Mutex
	issued   map[string]bool
}

var _ ports.IdentityProvider = (*Identity)(nil)

// NewIdentity creates a fake identity provider
func NewIdentity(accounts AccountSource) *Identity {
	return &Identity{
		accounts: accounts,
		issued:   make(map[string]bool),
	}
}

// InitiateAuth issues a fresh redirect marker
func (i *Identity) InitiateAuth(ctx context.Context) (string, error) {
	marker := fmt.Sprintf("%s?state=%s", CallbackMarker, uuid.NewString())

	i.mu.Lock()
	i.issued[marker] = true
	i.mu.Unlock()
	return marker, nil
}

// Exchange trades an issued marker for a session
func (i *Identity) Exchange(ctx context.Context, marker string) (domain.AuthGrant, error) {
	i.mu.Lock()
	ok := i.issued[marker]
	delete(i.issued, marker)
	i.mu.Unlock()

	if !ok {
		return domain.AuthGrant{}, fmt.Errorf("unknown redirect marker: %w", domain.ErrAuthDenied)
	}

	account, err := i.accounts.Account(ctx)
	if err != nil {
		return domain.AuthGrant{}, err
	}
	return domain.AuthGrant{Account: account, Token: "gho_" + uuid.NewString()}, nil
}

// StaticAccount is an AccountSource returning a fixed account
type StaticAccount domain.Account

func (a StaticAccount) Account(ctx context.Context) (domain.Account, error) {
	return domain.Account(a), nil
}
