package ports

import (
	"context"

	"github.com/homerent/rental-api/internal/core/domain"
)

// ListingFilter carries every supported search criterion. Nil pointers and
// empty strings mean "no constraint".
type ListingFilter struct {
	AgentID       string
	City          string // case-insensitive substring
	State         string // case-insensitive substring
	MinPrice      *float64
	MaxPrice      *float64
	MinBedrooms   *int
	MaxBedrooms   *int
	MinBathrooms  *float64
	MaxBathrooms  *float64
	PropertyType  string
	PetPolicy     string
	Parking       string
	AvailableOnly bool
	Offset        int
	Limit         int
}

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	// Update leaves the view counter as stored and refreshes l from the store.
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter ListingFilter) ([]*domain.Listing, error)
	IncrementViews(ctx context.Context, id string) error
	// Totals aggregates listing counts and the rent of rented (unavailable)
	// listings. An empty agentID aggregates across all agents.
	Totals(ctx context.Context, agentID string) (ListingTotals, error)
}

// ListingTotals is the aggregate used by the dashboards.
type ListingTotals struct {
	Total     int64
	Available int64
	Rented    int64
	Revenue   float64
}

// ViewDeduper decides whether a listing view should be counted.
// FirstView returns true the first time viewerKey views listingID within the
// dedup window.
type ViewDeduper interface {
	FirstView(ctx context.Context, listingID, viewerKey string) (bool, error)
}
