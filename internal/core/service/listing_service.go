package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
	"github.com/homerent/rental-api/internal/pkg/metrics"
)

type ListingService struct {
	repo   ports.ListingRepository
	dedup  ports.ViewDeduper
	logger zerolog.Logger
}

// NewListingService wires the listing use cases. dedup may be nil, in which
// case every view is counted.
func NewListingService(repo ports.ListingRepository, dedup ports.ViewDeduper, logger zerolog.Logger) *ListingService {
	return &ListingService{repo: repo, dedup: dedup, logger: logger}
}

// Create stores a new listing owned by agent. Title, city, property type,
// bedrooms, bathrooms and rent are required.
func (s *ListingService) Create(ctx context.Context, agent *domain.Agent, in ports.ListingInput) (*domain.Listing, error) {
	if err := requireListingFields(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l := &domain.Listing{
		AgentID:   agent.ID,
		Available: true,
		Amenities: []string{},
		Features:  []string{},
		Images:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyListing(l, in)
	if err := validateListing(l); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	s.logger.Info().Str("listing_id", l.ID).Str("agent_id", agent.ID).Msg("listing created")
	return l, nil
}

// Get returns the listing and counts the view once per viewer per dedup window.
// A dedup failure never hides the listing; the view is counted instead.
func (s *ListingService) Get(ctx context.Context, id, viewerKey string) (*domain.Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count := true
	if s.dedup != nil && viewerKey != "" {
		first, err := s.dedup.FirstView(ctx, id, viewerKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("listing_id", id).Msg("view dedup failed")
		} else {
			count = first
		}
	}
	if !count {
		metrics.ListingViewsTotal.WithLabelValues("duplicate").Inc()
		return l, nil
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("listing_id", id).Msg("increment views failed")
		return l, nil
	}
	l.ViewsCount++
	metrics.ListingViewsTotal.WithLabelValues("counted").Inc()
	return l, nil
}

func (s *ListingService) Search(ctx context.Context, filter ports.ListingFilter) ([]*domain.Listing, error) {
	filter.Offset, filter.Limit = page(filter.Offset, filter.Limit)
	return s.repo.Search(ctx, filter)
}

func (s *ListingService) ListAvailable(ctx context.Context, skip, limit int) ([]*domain.Listing, error) {
	return s.Search(ctx, ports.ListingFilter{AvailableOnly: true, Offset: skip, Limit: limit})
}

func (s *ListingService) ListByAgent(ctx context.Context, agentID string, skip, limit int) ([]*domain.Listing, error) {
	return s.Search(ctx, ports.ListingFilter{AgentID: agentID, Offset: skip, Limit: limit})
}

// Update applies a partial update. Only the owning agent may update.
func (s *ListingService) Update(ctx context.Context, agent *domain.Agent, id string, in ports.ListingInput) (*domain.Listing, error) {
	l, err := s.owned(ctx, agent, id)
	if err != nil {
		return nil, err
	}
	applyListing(l, in)
	if err := validateListing(l); err != nil {
		return nil, err
	}
	l.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return l, nil
}

// Delete removes a listing. Only the owning agent may delete.
func (s *ListingService) Delete(ctx context.Context, agent *domain.Agent, id string) error {
	if _, err := s.owned(ctx, agent, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	s.logger.Info().Str("listing_id", id).Str("agent_id", agent.ID).Msg("listing deleted")
	return nil
}

func (s *ListingService) owned(ctx context.Context, agent *domain.Agent, id string) (*domain.Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.AgentID != agent.ID {
		return nil, fmt.Errorf("%w: listing belongs to another agent", domain.ErrForbidden)
	}
	return l, nil
}

func requireListingFields(in ports.ListingInput) error {
	var missing []string
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		missing = append(missing, "title")
	}
	if in.City == nil || strings.TrimSpace(*in.City) == "" {
		missing = append(missing, "city")
	}
	if in.PropertyType == nil || *in.PropertyType == "" {
		missing = append(missing, "property_type")
	}
	if in.Bedrooms == nil {
		missing = append(missing, "bedrooms")
	}
	if in.Bathrooms == nil {
		missing = append(missing, "bathrooms")
	}
	if in.RentPrice == nil {
		missing = append(missing, "rent_price")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func validateListing(l *domain.Listing) error {
	switch {
	case l.RentPrice <= 0:
		return fmt.Errorf("%w: rent price must be positive", domain.ErrInvalidInput)
	case l.Bedrooms < 0:
		return fmt.Errorf("%w: bedrooms cannot be negative", domain.ErrInvalidInput)
	case l.Bathrooms < 0:
		return fmt.Errorf("%w: bathrooms cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}

func applyListing(l *domain.Listing, in ports.ListingInput) {
	setString(&l.Title, in.Title)
	setString(&l.Description, in.Description)
	setString(&l.Location.Address, in.Address)
	setString(&l.Location.City, in.City)
	setString(&l.Location.State, in.State)
	setString(&l.Location.ZipCode, in.ZipCode)
	setString(&l.Location.Country, in.Country)
	if in.Latitude != nil {
		l.Location.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		l.Location.Longitude = in.Longitude
	}
	setString(&l.PropertyType, in.PropertyType)
	if in.Bedrooms != nil {
		l.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		l.Bathrooms = *in.Bathrooms
	}
	if in.SquareFeet != nil {
		l.SquareFeet = in.SquareFeet
	}
	if in.LotSize != nil {
		l.LotSize = in.LotSize
	}
	if in.YearBuilt != nil {
		l.YearBuilt = in.YearBuilt
	}
	if in.RentPrice != nil {
		l.RentPrice = *in.RentPrice
	}
	if in.SecurityDeposit != nil {
		l.SecurityDeposit = in.SecurityDeposit
	}
	setString(&l.LeaseTerm, in.LeaseTerm)
	if in.AvailableDate != nil {
		l.AvailableDate = in.AvailableDate
	}
	if in.Amenities != nil {
		l.Amenities = in.Amenities
	}
	if in.Features != nil {
		l.Features = in.Features
	}
	setString(&l.PetPolicy, in.PetPolicy)
	setString(&l.Parking, in.Parking)
	if in.Images != nil {
		l.Images = in.Images
	}
	setString(&l.VirtualTourURL, in.VirtualTourURL)
	setString(&l.FloorPlanURL, in.FloorPlanURL)
	if in.Available != nil {
		l.Available = *in.Available
	}
	if in.Featured != nil {
		l.Featured = *in.Featured
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
