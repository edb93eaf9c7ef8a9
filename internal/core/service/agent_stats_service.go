package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

type AgentStatsService struct {
	stats      ports.AgentStatsRepository
	principals ports.PrincipalRepository
}

func NewAgentStatsService(stats ports.AgentStatsRepository, principals ports.PrincipalRepository) *AgentStatsService {
	return &AgentStatsService{stats: stats, principals: principals}
}

func (s *AgentStatsService) Get(ctx context.Context, agentID string) (*domain.AgentStats, error) {
	return s.stats.FindByAgent(ctx, agentID)
}

// Create stores the first stats record of an existing agent.
func (s *AgentStatsService) Create(ctx context.Context, agentID string, in ports.AgentStatsInput) (*domain.AgentStats, error) {
	if _, err := s.principals.FindAgentByID(ctx, agentID); err != nil {
		return nil, err
	}
	_, err := s.stats.FindByAgent(ctx, agentID)
	switch {
	case err == nil:
		return nil, domain.ErrAgentStatsExists
	case !errors.Is(err, domain.ErrAgentStatsNotFound):
		return nil, err
	}
	return s.save(ctx, &domain.AgentStats{AgentID: agentID}, in)
}

func (s *AgentStatsService) Update(ctx context.Context, agentID string, in ports.AgentStatsInput) (*domain.AgentStats, error) {
	existing, err := s.stats.FindByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, existing, in)
}

func (s *AgentStatsService) Delete(ctx context.Context, agentID string) error {
	return s.stats.DeleteByAgent(ctx, agentID)
}

func (s *AgentStatsService) save(ctx context.Context, st *domain.AgentStats, in ports.AgentStatsInput) (*domain.AgentStats, error) {
	if in.TotalRentals < 0 {
		return nil, fmt.Errorf("%w: total rentals cannot be negative", domain.ErrInvalidInput)
	}
	st.TotalRentals = in.TotalRentals
	st.AverageResponseTime = in.AverageResponseTime
	st.ClientSatisfaction = in.ClientSatisfaction
	st.RepeatClients = in.RepeatClients
	st.UpdatedAt = time.Now().UTC()

	if err := s.stats.Upsert(ctx, st); err != nil {
		return nil, fmt.Errorf("save agent stats: %w", err)
	}
	return st, nil
}
