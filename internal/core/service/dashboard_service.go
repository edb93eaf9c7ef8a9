package service

import (
	"context"
	"fmt"
	"time"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

// recentWindow bounds the "recent sign-ups" figures on the admin dashboard.
const recentWindow = 30 * 24 * time.Hour

type DashboardService struct {
	principals ports.PrincipalRepository
	listings   ports.ListingRepository
	moving     ports.MovingRequestRepository
	now        func() time.Time
}

func NewDashboardService(principals ports.PrincipalRepository, listings ports.ListingRepository, moving ports.MovingRequestRepository) *DashboardService {
	return &DashboardService{principals: principals, listings: listings, moving: moving, now: time.Now}
}

func (s *DashboardService) AgentStats(ctx context.Context, agent *domain.Agent) (*ports.AgentDashboard, error) {
	totals, err := s.listings.Totals(ctx, agent.ID)
	if err != nil {
		return nil, fmt.Errorf("agent dashboard: %w", err)
	}
	return &ports.AgentDashboard{
		TotalProperties:     totals.Total,
		AvailableProperties: totals.Available,
		TotalRevenue:        totals.Revenue,
		Rating:              agent.Rating,
		YearsExperience:     agent.YearsExperience,
	}, nil
}

func (s *DashboardService) AgentProperties(ctx context.Context, agent *domain.Agent) ([]*domain.Listing, error) {
	return s.listings.Search(ctx, ports.ListingFilter{AgentID: agent.ID, Limit: maxPageSize})
}

func (s *DashboardService) AdminStats(ctx context.Context) (*ports.AdminDashboard, error) {
	since := s.now().Add(-recentWindow)
	var (
		d   ports.AdminDashboard
		err error
	)

	if d.TotalRenters, err = s.principals.Count(ctx, domain.KindRenter, time.Time{}); err != nil {
		return nil, fmt.Errorf("count renters: %w", err)
	}
	if d.RecentRenters, err = s.principals.Count(ctx, domain.KindRenter, since); err != nil {
		return nil, fmt.Errorf("count recent renters: %w", err)
	}
	if d.TotalAgents, err = s.principals.Count(ctx, domain.KindAgent, time.Time{}); err != nil {
		return nil, fmt.Errorf("count agents: %w", err)
	}
	if d.RecentAgents, err = s.principals.Count(ctx, domain.KindAgent, since); err != nil {
		return nil, fmt.Errorf("count recent agents: %w", err)
	}

	totals, err := s.listings.Totals(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing totals: %w", err)
	}
	d.TotalProperties = totals.Total
	d.AvailableProperties = totals.Available
	d.RentedProperties = totals.Rented
	d.TotalRevenue = totals.Revenue

	if d.AverageRating, err = s.principals.AverageAgentRating(ctx); err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	if d.TotalMovingRequests, err = s.moving.Count(ctx); err != nil {
		return nil, fmt.Errorf("count moving requests: %w", err)
	}
	return &d, nil
}

func (s *DashboardService) AdminProperties(ctx context.Context, skip, limit int) ([]*domain.Listing, error) {
	skip, limit = page(skip, limit)
	return s.listings.Search(ctx, ports.ListingFilter{Offset: skip, Limit: limit})
}

func (s *DashboardService) AdminRenters(ctx context.Context, skip, limit int) ([]*domain.Renter, error) {
	skip, limit = page(skip, limit)
	return s.principals.ListRenters(ctx, skip, limit)
}

func (s *DashboardService) AdminAgents(ctx context.Context, skip, limit int) ([]*domain.Agent, error) {
	skip, limit = page(skip, limit)
	return s.principals.ListAgents(ctx, ports.AgentFilter{Skip: skip, Limit: limit})
}
