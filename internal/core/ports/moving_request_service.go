package ports

import (
	"context"
	"time"

	"github.com/homerent/rental-api/internal/core/domain"
)

// AddressInput holds one end of a move.
type AddressInput struct {
	Address string
	City    string
	State   string
	Zip     string
}

// MovingRequestInput carries the renter-editable fields of a moving request.
// On update, nil pointers and nil slices leave the stored value untouched.
type MovingRequestInput struct {
	Pickup              *AddressInput
	Delivery            *AddressInput
	PreferredDate       *time.Time
	FlexibleDates       *string
	FurnitureList       []string
	SpecialInstructions *string
	ContactPhone        *string
	ContactEmail        *string
}

// MovingStatusUpdate is the back-office update applied by an admin.
type MovingStatusUpdate struct {
	Status          domain.MovingStatus
	EstimatedHours  *float64
	EstimatedCost   *float64
	FinalCost       *float64
	AssignedCompany *string
	TrackingNumber  *string
	ScheduledDate   *time.Time
}

// MovingRequestService defines the moving request use cases.
type MovingRequestService interface {
	Create(ctx context.Context, renter *domain.Renter, in MovingRequestInput) (*domain.MovingRequest, error)
	ListMine(ctx context.Context, renter *domain.Renter) ([]*domain.MovingRequest, error)
	Get(ctx context.Context, renter *domain.Renter, id string) (*domain.MovingRequest, error)
	Update(ctx context.Context, renter *domain.Renter, id string, in MovingRequestInput) (*domain.MovingRequest, error)
	Delete(ctx context.Context, renter *domain.Renter, id string) error
	ListAll(ctx context.Context, filter MovingRequestFilter) ([]*domain.MovingRequest, error)
	UpdateStatus(ctx context.Context, id string, in MovingStatusUpdate) (*domain.MovingRequest, error)
}
