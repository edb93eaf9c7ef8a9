package ports

import (
	"context"

	"github.com/homerent/rental-api/internal/core/domain"
)

// AgentDashboard summarises an agent's portfolio.
type AgentDashboard struct {
	TotalProperties     int64
	AvailableProperties int64
	TotalRevenue        float64
	Rating              float64
	YearsExperience     int
}

// AdminDashboard summarises the whole marketplace.
type AdminDashboard struct {
	TotalRenters        int64
	RecentRenters       int64
	TotalAgents         int64
	RecentAgents        int64
	TotalProperties     int64
	AvailableProperties int64
	RentedProperties    int64
	TotalRevenue        float64
	AverageRating       float64
	TotalMovingRequests int64
}

// DashboardService aggregates figures for the agent and admin dashboards.
type DashboardService interface {
	AgentStats(ctx context.Context, agent *domain.Agent) (*AgentDashboard, error)
	AgentProperties(ctx context.Context, agent *domain.Agent) ([]*domain.Listing, error)
	AdminStats(ctx context.Context) (*AdminDashboard, error)
	AdminProperties(ctx context.Context, skip, limit int) ([]*domain.Listing, error)
	AdminRenters(ctx context.Context, skip, limit int) ([]*domain.Renter, error)
	AdminAgents(ctx context.Context, skip, limit int) ([]*domain.Agent, error)
}
