package service

import (
	"context"
	"fmt"

	"github.com/homerent/rental-api/internal/core/domain"
)

// TokenDecoder decodes a bearer token into claims.
type TokenDecoder interface {
	Decode(token string) (Claims, error)
}

// Policy describes what a caller must be. The zero Policy admits any active
// principal; Kind restricts the variant and Capabilities must all be held.
type Policy struct {
	Kind         domain.Kind
	Capabilities []domain.Capability
}

var (
	PolicyAnyActive = Policy{}
	PolicyRenter    = Policy{Kind: domain.KindRenter}
	PolicyAgent     = Policy{Kind: domain.KindAgent}
	PolicyAdmin     = Policy{Kind: domain.KindRenter, Capabilities: []domain.Capability{domain.CapabilityAdmin}}
)

// Guard authorizes a bearer token against a Policy. It holds no mutable state
// and is safe for concurrent use.
//
// Every decode or resolve failure is reported as domain.ErrUnauthenticated and
// every policy failure as domain.ErrForbidden. The underlying cause stays in
// the error chain for logging and tests; transports must only expose the outer
// kind.
type Guard struct {
	decoder  TokenDecoder
	resolver *PrincipalResolver
}

func NewGuard(decoder TokenDecoder, resolver *PrincipalResolver) *Guard {
	return &Guard{decoder: decoder, resolver: resolver}
}

// Authorize is the single guard code path.
func (g *Guard) Authorize(ctx context.Context, token string, policy Policy) (domain.Principal, error) {
	p, err := g.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if !p.Credentials().Active {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrInactiveAccount)
	}
	if policy.Kind != "" && p.Kind() != policy.Kind {
		return nil, fmt.Errorf("%w: requires %s", domain.ErrForbidden, policy.Kind)
	}
	for _, c := range policy.Capabilities {
		if !p.Has(c) {
			return nil, fmt.Errorf("%w: requires %s capability", domain.ErrForbidden, c)
		}
	}
	return p, nil
}

// AuthenticatedAny decodes the token and resolves its principal.
func (g *Guard) AuthenticatedAny(ctx context.Context, token string) (domain.Principal, error) {
	return g.authenticate(ctx, token)
}

// ActiveAny is AuthenticatedAny with an explicit active check.
func (g *Guard) ActiveAny(ctx context.Context, token string) (domain.Principal, error) {
	return g.Authorize(ctx, token, PolicyAnyActive)
}

// RequireKind admits only active principals of kind k.
func (g *Guard) RequireKind(ctx context.Context, token string, k domain.Kind) (domain.Principal, error) {
	return g.Authorize(ctx, token, Policy{Kind: k})
}

// RequireAdmin admits only active renters holding the admin capability.
func (g *Guard) RequireAdmin(ctx context.Context, token string) (*domain.Renter, error) {
	p, err := g.Authorize(ctx, token, PolicyAdmin)
	if err != nil {
		return nil, err
	}
	return p.(*domain.Renter), nil
}

func (g *Guard) authenticate(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := g.decoder.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	p, err := g.resolver.Resolve(ctx, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	return p, nil
}
