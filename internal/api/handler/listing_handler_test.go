package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

func TestListingHandler_Search_Defaults(t *testing.T) {
	stub := &stubListingService{
		searchFn: func(ctx context.Context, f ports.ListingFilter) ([]*domain.Listing, error) {
			if !f.AvailableOnly {
				t.Fatalf("available_only must default to true")
			}
			if f.City != "Austin" || f.Limit != defaultLimit {
				t.Fatalf("unexpected filter: %+v", f)
			}
			if f.MinPrice != nil || f.MaxBedrooms != nil {
				t.Fatalf("absent bounds must stay nil: %+v", f)
			}
			return []*domain.Listing{}, nil
		},
	}
	handler := NewListingHandler(stub)

	c, rec := newRequest(http.MethodGet, "/api/v1/houses/search?city=Austin", "")
	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListingHandler_Search_Ranges(t *testing.T) {
	stub := &stubListingService{
		searchFn: func(ctx context.Context, f ports.ListingFilter) ([]*domain.Listing, error) {
			if f.AvailableOnly {
				t.Fatalf("available_only=false not applied")
			}
			if f.MinPrice == nil || *f.MinPrice != 1500 || f.MaxBedrooms == nil || *f.MaxBedrooms != 3 {
				t.Fatalf("unexpected ranges: %+v", f)
			}
			if f.MinBathrooms == nil || *f.MinBathrooms != 1.5 {
				t.Fatalf("unexpected bathrooms: %+v", f)
			}
			return []*domain.Listing{}, nil
		},
	}
	handler := NewListingHandler(stub)

	c, _ := newRequest(http.MethodGet, "/api/v1/houses/search?min_price=1500&max_bedrooms=3&min_bathrooms=1.5&available_only=false", "")
	if err := handler.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestListingHandler_Search_BadNumber(t *testing.T) {
	handler := NewListingHandler(&stubListingService{})

	c, _ := newRequest(http.MethodGet, "/api/v1/houses/search?min_bedrooms=two", "")
	if code := httpCode(t, handler.Search(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestListingHandler_Get_UsesClientAddress(t *testing.T) {
	var viewer string
	stub := &stubListingService{
		getFn: func(ctx context.Context, id, viewerKey string) (*domain.Listing, error) {
			viewer = viewerKey
			return &domain.Listing{ID: id, ViewsCount: 1}, nil
		},
	}
	handler := NewListingHandler(stub)

	c, _ := newRequest(http.MethodGet, "/api/v1/houses/l1", "")
	c.SetParamNames("id")
	c.SetParamValues("l1")
	c.Request().Header.Set("X-Real-IP", "203.0.113.7")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if viewer != "203.0.113.7" {
		t.Fatalf("unexpected viewer key %q", viewer)
	}
}

func TestListingHandler_Create(t *testing.T) {
	stub := &stubListingService{
		createFn: func(ctx context.Context, a *domain.Agent, in ports.ListingInput) (*domain.Listing, error) {
			if a.ID != "agent-1" {
				t.Fatalf("unexpected agent %s", a.ID)
			}
			if in.Title == nil || *in.Title != "Modern Downtown Loft" || in.RentPrice == nil || *in.RentPrice != 2500 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if len(in.Amenities) != 2 {
				t.Fatalf("amenities not forwarded: %v", in.Amenities)
			}
			return &domain.Listing{ID: "l1", AgentID: a.ID}, nil
		},
	}
	handler := NewListingHandler(stub)

	c, rec := newRequest(http.MethodPost, "/api/v1/houses",
		`{"title":"Modern Downtown Loft","city":"Austin","property_type":"apartment","bedrooms":2,"bathrooms":2,"rent_price":2500,"amenities":["Gym","Pool"]}`)
	if err := as(testAgent(), handler.Create)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestListingHandler_Create_RejectsNegativeRent(t *testing.T) {
	handler := NewListingHandler(&stubListingService{})

	c, _ := newRequest(http.MethodPost, "/api/v1/houses", `{"title":"x","rent_price":-1}`)
	if code := httpCode(t, as(testAgent(), handler.Create)(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestListingHandler_Delete_NotOwner(t *testing.T) {
	stub := &stubListingService{
		deleteFn: func(ctx context.Context, a *domain.Agent, id string) error {
			return domain.ErrForbidden
		},
	}
	handler := NewListingHandler(stub)

	c, _ := newRequest(http.MethodDelete, "/api/v1/houses/l1", "")
	if err := as(testAgent(), handler.Delete)(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
