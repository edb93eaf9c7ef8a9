package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

func TestReviewHandler_Create(t *testing.T) {
	stub := &stubReviewService{
		createFn: func(ctx context.Context, author *domain.Renter, in ports.ReviewInput) (*domain.Review, error) {
			if author.ID != "renter-1" || in.AgentID != "agent-1" || in.Rating != 5 {
				t.Fatalf("unexpected args: %s %+v", author.ID, in)
			}
			return &domain.Review{ID: "r1", AgentID: in.AgentID, AuthorID: author.ID, Rating: in.Rating}, nil
		},
	}
	handler := NewReviewHandler(stub, &stubStatsService{})

	c, rec := newRequest(http.MethodPost, "/api/v1/reviews", `{"agent_id":"agent-1","rating":5,"comment":"Found us a great place"}`)
	if err := as(testRenter(), handler.Create)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestReviewHandler_Create_RatingOutOfRange(t *testing.T) {
	handler := NewReviewHandler(&stubReviewService{}, &stubStatsService{})

	c, _ := newRequest(http.MethodPost, "/api/v1/reviews", `{"agent_id":"agent-1","rating":6,"comment":"x"}`)
	if code := httpCode(t, as(testRenter(), handler.Create)(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestReviewHandler_DeletePassesCaller(t *testing.T) {
	admin := testRenter()
	admin.Admin = true
	var got domain.Principal
	stub := &stubReviewService{
		deleteFn: func(ctx context.Context, caller domain.Principal, id string) error {
			got = caller
			return nil
		},
	}
	handler := NewReviewHandler(stub, &stubStatsService{})

	c, rec := newRequest(http.MethodDelete, "/api/v1/reviews/r1", "")
	if err := as(admin, handler.Delete)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got == nil || !got.Has(domain.CapabilityAdmin) {
		t.Fatalf("caller not forwarded: %+v", got)
	}
}

func TestReviewHandler_UpdateNotAuthor(t *testing.T) {
	stub := &stubReviewService{
		updateFn: func(ctx context.Context, caller domain.Principal, id string, in ports.ReviewInput) (*domain.Review, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewReviewHandler(stub, &stubStatsService{})

	c, _ := newRequest(http.MethodPut, "/api/v1/reviews/r1", `{"agent_id":"agent-1","rating":3,"comment":"ok"}`)
	if err := as(testAgent(), handler.Update)(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestReviewHandler_CreateStats(t *testing.T) {
	stub := &stubStatsService{
		createFn: func(ctx context.Context, agentID string, in ports.AgentStatsInput) (*domain.AgentStats, error) {
			if agentID != "agent-1" || in.TotalRentals != 42 || in.ClientSatisfaction != "98%" {
				t.Fatalf("unexpected args: %s %+v", agentID, in)
			}
			return &domain.AgentStats{AgentID: agentID, TotalRentals: in.TotalRentals}, nil
		},
	}
	handler := NewReviewHandler(&stubReviewService{}, stub)

	c, rec := newRequest(http.MethodPost, "/api/v1/agent-stats/agent-1", `{"total_rentals":42,"client_satisfaction":"98%"}`)
	c.SetParamNames("agent_id")
	c.SetParamValues("agent-1")
	if err := handler.CreateStats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestReviewHandler_GetStatsNotFound(t *testing.T) {
	handler := NewReviewHandler(&stubReviewService{}, &stubStatsService{})

	c, _ := newRequest(http.MethodGet, "/api/v1/agent-stats/agent-9", "")
	if err := handler.GetStats(c); !errors.Is(err, domain.ErrAgentStatsNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
