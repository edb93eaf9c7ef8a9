package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
	"github.com/homerent/rental-api/internal/pkg/metrics"
)

type ReviewService struct {
	reviews    ports.ReviewRepository
	principals ports.PrincipalRepository
	dispatcher ports.RatingDispatcher
	logger     zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, principals ports.PrincipalRepository, dispatcher ports.RatingDispatcher, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, principals: principals, dispatcher: dispatcher, logger: logger}
}

// Create stores a review written by author about an existing agent.
func (s *ReviewService) Create(ctx context.Context, author *domain.Renter, in ports.ReviewInput) (*domain.Review, error) {
	if err := validateReview(in); err != nil {
		return nil, err
	}
	if _, err := s.principals.FindAgentByID(ctx, in.AgentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &domain.Review{
		AgentID:   in.AgentID,
		AuthorID:  author.ID,
		Author:    author.FullName,
		Rating:    in.Rating,
		Date:      reviewDate(in.Date, now),
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	s.refresh(ctx, r.AgentID)
	return r, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

func (s *ReviewService) ListByAgent(ctx context.Context, agentID string) ([]*domain.Review, error) {
	return s.reviews.ListByAgent(ctx, agentID)
}

// Update lets the author edit rating, date and comment. The reviewed agent is fixed.
func (s *ReviewService) Update(ctx context.Context, caller domain.Principal, id string, in ports.ReviewInput) (*domain.Review, error) {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAuthor(caller, r) {
		return nil, fmt.Errorf("%w: only the author may edit a review", domain.ErrForbidden)
	}
	in.AgentID = r.AgentID
	if err := validateReview(in); err != nil {
		return nil, err
	}

	r.Rating = in.Rating
	if in.Date != "" {
		r.Date = in.Date
	}
	r.Comment = in.Comment
	r.UpdatedAt = time.Now().UTC()

	if err := s.reviews.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	s.refresh(ctx, r.AgentID)
	return r, nil
}

// Delete removes a review. The author and admins may delete.
func (s *ReviewService) Delete(ctx context.Context, caller domain.Principal, id string) error {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAuthor(caller, r) && !caller.Has(domain.CapabilityAdmin) {
		return fmt.Errorf("%w: only the author or an admin may delete a review", domain.ErrForbidden)
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	s.refresh(ctx, r.AgentID)
	return nil
}

func (s *ReviewService) refresh(ctx context.Context, agentID string) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Enqueue(ctx, ports.AgentRatingEvent{AgentID: agentID}); err != nil {
		s.logger.Warn().Err(err).Str("agent_id", agentID).Msg("rating refresh not queued")
	}
}

func isAuthor(caller domain.Principal, r *domain.Review) bool {
	return domain.MatchPrincipal(caller,
		func(rn *domain.Renter) bool { return rn.ID == r.AuthorID },
		func(*domain.Agent) bool { return false },
	)
}

func validateReview(in ports.ReviewInput) error {
	if strings.TrimSpace(in.AgentID) == "" {
		return fmt.Errorf("%w: agent id is required", domain.ErrInvalidInput)
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if strings.TrimSpace(in.Comment) == "" {
		return fmt.Errorf("%w: comment is required", domain.ErrInvalidInput)
	}
	return nil
}

func reviewDate(date string, now time.Time) string {
	if date != "" {
		return date
	}
	return now.Format(time.DateOnly)
}

// RatingRefresher recomputes an agent's rating and review count from the
// stored reviews. It is driven by the rating dispatcher.
type RatingRefresher struct {
	reviews    ports.ReviewRepository
	principals ports.PrincipalRepository
}

func NewRatingRefresher(reviews ports.ReviewRepository, principals ports.PrincipalRepository) *RatingRefresher {
	return &RatingRefresher{reviews: reviews, principals: principals}
}

func (r *RatingRefresher) Refresh(ctx context.Context, event ports.AgentRatingEvent) error {
	list, err := r.reviews.ListByAgent(ctx, event.AgentID)
	if err != nil {
		metrics.RatingRefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("list reviews: %w", err)
	}

	var sum int
	for _, rv := range list {
		sum += rv.Rating
	}
	var avg float64
	if len(list) > 0 {
		avg = math.Round(float64(sum)/float64(len(list))*10) / 10
	}

	if err := r.principals.UpdateAgentRating(ctx, event.AgentID, avg, len(list)); err != nil {
		metrics.RatingRefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("update agent rating: %w", err)
	}
	metrics.RatingRefreshTotal.WithLabelValues("ok").Inc()
	return nil
}
