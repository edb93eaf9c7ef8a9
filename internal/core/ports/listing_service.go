package ports

import (
	"context"
	"time"

	"github.com/homerent/rental-api/internal/core/domain"
)

// ListingInput carries the writable fields of a listing. On update, nil
// pointers and nil slices leave the stored value untouched.
type ListingInput struct {
	Title           *string
	Description     *string
	Address         *string
	City            *string
	State           *string
	ZipCode         *string
	Country         *string
	Latitude        *float64
	Longitude       *float64
	PropertyType    *string
	Bedrooms        *int
	Bathrooms       *float64
	SquareFeet      *int
	LotSize         *float64
	YearBuilt       *int
	RentPrice       *float64
	SecurityDeposit *float64
	LeaseTerm       *string
	AvailableDate   *time.Time
	Amenities       []string
	Features        []string
	PetPolicy       *string
	Parking         *string
	Images          []string
	VirtualTourURL  *string
	FloorPlanURL    *string
	Available       *bool
	Featured        *bool
}

// ListingService defines the listing use cases.
type ListingService interface {
	Create(ctx context.Context, agent *domain.Agent, in ListingInput) (*domain.Listing, error)
	// Get returns the listing and records a view by viewerKey.
	Get(ctx context.Context, id, viewerKey string) (*domain.Listing, error)
	Search(ctx context.Context, filter ListingFilter) ([]*domain.Listing, error)
	ListAvailable(ctx context.Context, skip, limit int) ([]*domain.Listing, error)
	ListByAgent(ctx context.Context, agentID string, skip, limit int) ([]*domain.Listing, error)
	Update(ctx context.Context, agent *domain.Agent, id string, in ListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, agent *domain.Agent, id string) error
}
