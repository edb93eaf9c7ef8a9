package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

// PrincipalResolver turns verified claims into the live principal record.
// Nothing is cached: every call reads the store, so deactivation applies on
// the next request even while the token is still valid.
type PrincipalResolver struct {
	store ports.CredentialStore
}

func NewPrincipalResolver(store ports.CredentialStore) *PrincipalResolver {
	return &PrincipalResolver{store: store}
}

// Resolve loads the principal named by claims and checks that it is active
// and of the claimed kind.
func (r *PrincipalResolver) Resolve(ctx context.Context, claims Claims) (domain.Principal, error) {
	if !claims.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown principal kind %q", domain.ErrInvalidCredential, claims.Kind)
	}

	p, err := r.store.FindByUsername(ctx, claims.Kind, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, domain.ErrUnknownPrincipal
		}
		return nil, fmt.Errorf("resolve principal: %w", err)
	}

	if p.Kind() != claims.Kind {
		return nil, fmt.Errorf("%w: kind mismatch", domain.ErrInvalidCredential)
	}
	if !p.Credentials().Active {
		return nil, domain.ErrInactiveAccount
	}
	return p, nil
}
