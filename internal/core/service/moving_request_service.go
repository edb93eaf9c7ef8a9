package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

type MovingRequestService struct {
	repo   ports.MovingRequestRepository
	logger zerolog.Logger
}

func NewMovingRequestService(repo ports.MovingRequestRepository, logger zerolog.Logger) *MovingRequestService {
	return &MovingRequestService{repo: repo, logger: logger}
}

// Create files a new pending moving request for renter.
func (s *MovingRequestService) Create(ctx context.Context, renter *domain.Renter, in ports.MovingRequestInput) (*domain.MovingRequest, error) {
	if in.Pickup == nil || in.Delivery == nil {
		return nil, fmt.Errorf("%w: pickup and delivery addresses are required", domain.ErrInvalidInput)
	}
	if len(in.FurnitureList) == 0 {
		return nil, fmt.Errorf("%w: furniture list cannot be empty", domain.ErrInvalidInput)
	}
	if in.ContactPhone == nil || in.ContactEmail == nil {
		return nil, fmt.Errorf("%w: contact phone and email are required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	r := &domain.MovingRequest{
		RenterID:  renter.ID,
		Status:    domain.MovingPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyMovingInput(r, in); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create moving request: %w", err)
	}
	s.logger.Info().Str("request_id", r.ID).Str("renter_id", renter.ID).Msg("moving request created")
	return r, nil
}

func (s *MovingRequestService) ListMine(ctx context.Context, renter *domain.Renter) ([]*domain.MovingRequest, error) {
	return s.repo.List(ctx, ports.MovingRequestFilter{RenterID: renter.ID, Limit: maxPageSize})
}

func (s *MovingRequestService) Get(ctx context.Context, renter *domain.Renter, id string) (*domain.MovingRequest, error) {
	return s.owned(ctx, renter, id)
}

// Update edits the renter-owned fields. Status and pricing are back-office only.
func (s *MovingRequestService) Update(ctx context.Context, renter *domain.Renter, id string, in ports.MovingRequestInput) (*domain.MovingRequest, error) {
	r, err := s.owned(ctx, renter, id)
	if err != nil {
		return nil, err
	}
	if err := applyMovingInput(r, in); err != nil {
		return nil, err
	}
	r.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update moving request: %w", err)
	}
	return r, nil
}

func (s *MovingRequestService) Delete(ctx context.Context, renter *domain.Renter, id string) error {
	if _, err := s.owned(ctx, renter, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete moving request: %w", err)
	}
	return nil
}

func (s *MovingRequestService) ListAll(ctx context.Context, filter ports.MovingRequestFilter) ([]*domain.MovingRequest, error) {
	if filter.Status != "" && !domain.MovingStatus(filter.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, filter.Status)
	}
	filter.Skip, filter.Limit = page(filter.Skip, filter.Limit)
	return s.repo.List(ctx, filter)
}

// UpdateStatus applies a back-office update. A status change must follow the
// moving request state machine; repeating the current status is allowed so
// pricing can be amended without moving the request forward.
func (s *MovingRequestService) UpdateStatus(ctx context.Context, id string, in ports.MovingStatusUpdate) (*domain.MovingRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if in.Status != "" && in.Status != r.Status {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
		}
		if !r.Status.CanTransitionTo(in.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, r.Status, in.Status)
		}
		s.logger.Info().
			Str("request_id", id).
			Str("from", string(r.Status)).
			Str("to", string(in.Status)).
			Msg("moving request status changed")
		r.Status = in.Status
	}

	if in.EstimatedHours != nil {
		r.EstimatedHours = in.EstimatedHours
	}
	if in.EstimatedCost != nil {
		r.EstimatedCost = in.EstimatedCost
	}
	if in.FinalCost != nil {
		r.FinalCost = in.FinalCost
	}
	setString(&r.AssignedCompany, in.AssignedCompany)
	setString(&r.TrackingNumber, in.TrackingNumber)
	if in.ScheduledDate != nil {
		r.ScheduledDate = in.ScheduledDate
	}

	switch r.Status {
	case domain.MovingScheduled:
		if r.ScheduledDate == nil {
			r.ScheduledDate = &now
		}
	case domain.MovingCompleted:
		if r.CompletedDate == nil {
			r.CompletedDate = &now
		}
	}
	r.UpdatedAt = now

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update moving request status: %w", err)
	}
	return r, nil
}

func (s *MovingRequestService) owned(ctx context.Context, renter *domain.Renter, id string) (*domain.MovingRequest, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.RenterID != renter.ID {
		return nil, fmt.Errorf("%w: moving request belongs to another renter", domain.ErrForbidden)
	}
	return r, nil
}

func applyMovingInput(r *domain.MovingRequest, in ports.MovingRequestInput) error {
	if in.Pickup != nil {
		addr, err := postalAddress("pickup", *in.Pickup)
		if err != nil {
			return err
		}
		r.Pickup = addr
	}
	if in.Delivery != nil {
		addr, err := postalAddress("delivery", *in.Delivery)
		if err != nil {
			return err
		}
		r.Delivery = addr
	}
	if in.PreferredDate != nil {
		r.PreferredDate = in.PreferredDate
	}
	setString(&r.FlexibleDates, in.FlexibleDates)
	if in.FurnitureList != nil {
		if len(in.FurnitureList) == 0 {
			return fmt.Errorf("%w: furniture list cannot be empty", domain.ErrInvalidInput)
		}
		r.FurnitureList = in.FurnitureList
	}
	setString(&r.SpecialInstructions, in.SpecialInstructions)
	setString(&r.ContactPhone, in.ContactPhone)
	if in.ContactEmail != nil {
		email, err := bareEmail(*in.ContactEmail)
		if err != nil {
			return fmt.Errorf("%w: invalid contact email", domain.ErrInvalidInput)
		}
		r.ContactEmail = email
	}
	return nil
}

func postalAddress(which string, in ports.AddressInput) (domain.PostalAddress, error) {
	if strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.City) == "" {
		return domain.PostalAddress{}, fmt.Errorf("%w: %s address and city are required", domain.ErrInvalidInput, which)
	}
	return domain.PostalAddress{
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Zip:     in.Zip,
	}, nil
}
