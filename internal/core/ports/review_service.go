package ports

import (
	"context"

	"github.com/homerent/rental-api/internal/core/domain"
)

// ReviewInput carries the writable fields of a review.
type ReviewInput struct {
	AgentID string
	Rating  int
	Date    string
	Comment string
}

// AgentRatingEvent asks for an agent's aggregate rating to be recomputed.
type AgentRatingEvent struct {
	AgentID string
}

// ReviewService defines the review use cases.
type ReviewService interface {
	Create(ctx context.Context, author *domain.Renter, in ReviewInput) (*domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	ListByAgent(ctx context.Context, agentID string) ([]*domain.Review, error)
	Update(ctx context.Context, caller domain.Principal, id string, in ReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, caller domain.Principal, id string) error
}

// RatingService recomputes agent ratings from their reviews.
type RatingService interface {
	Refresh(ctx context.Context, event AgentRatingEvent) error
}

// AgentStatsInput carries the writable fields of agent stats.
type AgentStatsInput struct {
	TotalRentals        int
	AverageResponseTime string
	ClientSatisfaction  string
	RepeatClients       string
}

// AgentStatsService defines the agent stats use cases.
type AgentStatsService interface {
	Get(ctx context.Context, agentID string) (*domain.AgentStats, error)
	Create(ctx context.Context, agentID string, in AgentStatsInput) (*domain.AgentStats, error)
	Update(ctx context.Context, agentID string, in AgentStatsInput) (*domain.AgentStats, error)
	Delete(ctx context.Context, agentID string) error
}

// RatingDispatcher queues rating refreshes for asynchronous processing.
type RatingDispatcher interface {
	Enqueue(ctx context.Context, event AgentRatingEvent) error
}
