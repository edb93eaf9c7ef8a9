package ports

import (
	"context"

	"github.com/homerent/rental-api/internal/core/domain"
)

// MovingRequestFilter narrows a moving request listing.
type MovingRequestFilter struct {
	RenterID string // empty = every renter (admin)
	Status   string
	Skip     int
	Limit    int
}

// MovingRequestRepository defines persistence operations for moving requests.
type MovingRequestRepository interface {
	Create(ctx context.Context, r *domain.MovingRequest) error
	FindByID(ctx context.Context, id string) (*domain.MovingRequest, error)
	List(ctx context.Context, filter MovingRequestFilter) ([]*domain.MovingRequest, error)
	Update(ctx context.Context, r *domain.MovingRequest) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
