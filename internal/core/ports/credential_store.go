package ports

import (
	"context"
	"time"

	"github.com/homerent/rental-api/internal/core/domain"
)

// CredentialStore is the persistence boundary the authentication core depends on.
// Lookups return domain.ErrPrincipalNotFound when no record of the given kind matches.
type CredentialStore interface {
	FindByUsername(ctx context.Context, kind domain.Kind, username string) (domain.Principal, error)
	FindByEmail(ctx context.Context, kind domain.Kind, email string) (domain.Principal, error)
	// Save creates the principal when its ID is empty and overwrites it
	// otherwise, keeping an agent's stored rating and review count. It returns
	// the principal as stored.
	// Unique-key collisions (username, email, license number) yield domain.ErrPrincipalExists.
	Save(ctx context.Context, p domain.Principal) (domain.Principal, error)
}

// AgentFilter narrows an agent directory listing.
type AgentFilter struct {
	City      string // matched against service areas
	Specialty string
	Skip      int
	Limit     int
}

// PrincipalRepository extends CredentialStore with the lookups used by the
// account, review and dashboard use cases.
type PrincipalRepository interface {
	CredentialStore
	FindRenterByID(ctx context.Context, id string) (*domain.Renter, error)
	FindAgentByID(ctx context.Context, id string) (*domain.Agent, error)
	ListAgents(ctx context.Context, filter AgentFilter) ([]*domain.Agent, error)
	ListRenters(ctx context.Context, skip, limit int) ([]*domain.Renter, error)
	// Count returns the number of principals of kind created at or after since.
	// A zero since counts every record.
	Count(ctx context.Context, kind domain.Kind, since time.Time) (int64, error)
	UpdateAgentRating(ctx context.Context, agentID string, rating float64, totalReviews int) error
	AverageAgentRating(ctx context.Context) (float64, error)
}
