package ports

import (
	"context"

	"github.com/homerent/rental-api/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	ListByAgent(ctx context.Context, agentID string) ([]*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id string) error
}

// AgentStatsRepository defines persistence operations for agent stats.
// There is at most one stats document per agent.
type AgentStatsRepository interface {
	FindByAgent(ctx context.Context, agentID string) (*domain.AgentStats, error)
	Upsert(ctx context.Context, s *domain.AgentStats) error
	DeleteByAgent(ctx context.Context, agentID string) error
}
