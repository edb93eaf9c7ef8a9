package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/api/middleware"
	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
	"github.com/homerent/rental-api/internal/core/service"
)

// newRequest builds an echo context with the production validator. A body
// starting with "{" is sent as JSON, anything else as a form.
func newRequest(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if strings.HasPrefix(body, "{") {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// fixedAuthorizer admits every request as one principal.
type fixedAuthorizer struct{ p domain.Principal }

func (f fixedAuthorizer) Authorize(context.Context, string, service.Policy) (domain.Principal, error) {
	return f.p, nil
}

// as runs h behind the auth middleware with p as the caller.
func as(p domain.Principal, h echo.HandlerFunc) echo.HandlerFunc {
	return middleware.Authorize(fixedAuthorizer{p}, service.PolicyAnyActive)(h)
}

func testRenter() *domain.Renter {
	return &domain.Renter{Account: domain.Account{ID: "renter-1", Username: "johnsmith", Email: "john.smith@email.com", Active: true}}
}

func testAgent() *domain.Agent {
	return &domain.Agent{
		Account:       domain.Account{ID: "agent-1", Username: "sarahjohnson", Email: "sarah.johnson@realty.com", Active: true},
		LicenseNumber: "RE123456",
	}
}

type stubAuthService struct {
	loginFn func(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*ports.AccessToken, error)
}

func (s *stubAuthService) Login(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*ports.AccessToken, error) {
	return s.loginFn(ctx, kind, usernameOrEmail, password)
}

type stubAccountService struct {
	registerRenterFn func(context.Context, ports.RegisterRenterInput) (*domain.Renter, error)
	registerAgentFn  func(context.Context, ports.RegisterAgentInput) (*domain.Agent, error)
	updateRenterFn   func(context.Context, *domain.Renter, ports.ProfileUpdate) (*domain.Renter, error)
	updateAgentFn    func(context.Context, *domain.Agent, ports.AgentProfileUpdate) (*domain.Agent, error)
	setActiveFn      func(context.Context, domain.Kind, string, bool) (domain.Principal, error)
	getAgentFn       func(context.Context, string) (*domain.Agent, error)
	listAgentsFn     func(context.Context, ports.AgentFilter) ([]*domain.Agent, error)
}

func (s *stubAccountService) RegisterRenter(ctx context.Context, in ports.RegisterRenterInput) (*domain.Renter, error) {
	return s.registerRenterFn(ctx, in)
}

func (s *stubAccountService) RegisterAgent(ctx context.Context, in ports.RegisterAgentInput) (*domain.Agent, error) {
	return s.registerAgentFn(ctx, in)
}

func (s *stubAccountService) UpdateRenterProfile(ctx context.Context, r *domain.Renter, in ports.ProfileUpdate) (*domain.Renter, error) {
	return s.updateRenterFn(ctx, r, in)
}

func (s *stubAccountService) UpdateAgentProfile(ctx context.Context, a *domain.Agent, in ports.AgentProfileUpdate) (*domain.Agent, error) {
	return s.updateAgentFn(ctx, a, in)
}

func (s *stubAccountService) SetActive(ctx context.Context, kind domain.Kind, id string, active bool) (domain.Principal, error) {
	return s.setActiveFn(ctx, kind, id, active)
}

func (s *stubAccountService) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return s.getAgentFn(ctx, id)
}

func (s *stubAccountService) ListAgents(ctx context.Context, f ports.AgentFilter) ([]*domain.Agent, error) {
	return s.listAgentsFn(ctx, f)
}

type stubListingService struct {
	createFn        func(context.Context, *domain.Agent, ports.ListingInput) (*domain.Listing, error)
	getFn           func(context.Context, string, string) (*domain.Listing, error)
	searchFn        func(context.Context, ports.ListingFilter) ([]*domain.Listing, error)
	listAvailableFn func(context.Context, int, int) ([]*domain.Listing, error)
	listByAgentFn   func(context.Context, string, int, int) ([]*domain.Listing, error)
	updateFn        func(context.Context, *domain.Agent, string, ports.ListingInput) (*domain.Listing, error)
	deleteFn        func(context.Context, *domain.Agent, string) error
}

func (s *stubListingService) Create(ctx context.Context, a *domain.Agent, in ports.ListingInput) (*domain.Listing, error) {
	return s.createFn(ctx, a, in)
}

func (s *stubListingService) Get(ctx context.Context, id, viewerKey string) (*domain.Listing, error) {
	return s.getFn(ctx, id, viewerKey)
}

func (s *stubListingService) Search(ctx context.Context, f ports.ListingFilter) ([]*domain.Listing, error) {
	return s.searchFn(ctx, f)
}

func (s *stubListingService) ListAvailable(ctx context.Context, skip, limit int) ([]*domain.Listing, error) {
	return s.listAvailableFn(ctx, skip, limit)
}

func (s *stubListingService) ListByAgent(ctx context.Context, agentID string, skip, limit int) ([]*domain.Listing, error) {
	return s.listByAgentFn(ctx, agentID, skip, limit)
}

func (s *stubListingService) Update(ctx context.Context, a *domain.Agent, id string, in ports.ListingInput) (*domain.Listing, error) {
	return s.updateFn(ctx, a, id, in)
}

func (s *stubListingService) Delete(ctx context.Context, a *domain.Agent, id string) error {
	return s.deleteFn(ctx, a, id)
}

type stubReviewService struct {
	createFn func(context.Context, *domain.Renter, ports.ReviewInput) (*domain.Review, error)
	updateFn func(context.Context, domain.Principal, string, ports.ReviewInput) (*domain.Review, error)
	deleteFn func(context.Context, domain.Principal, string) error
}

func (s *stubReviewService) Create(ctx context.Context, author *domain.Renter, in ports.ReviewInput) (*domain.Review, error) {
	return s.createFn(ctx, author, in)
}

func (s *stubReviewService) Get(context.Context, string) (*domain.Review, error) {
	return nil, domain.ErrReviewNotFound
}

func (s *stubReviewService) ListByAgent(context.Context, string) ([]*domain.Review, error) {
	return []*domain.Review{}, nil
}

func (s *stubReviewService) Update(ctx context.Context, caller domain.Principal, id string, in ports.ReviewInput) (*domain.Review, error) {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubReviewService) Delete(ctx context.Context, caller domain.Principal, id string) error {
	return s.deleteFn(ctx, caller, id)
}

type stubStatsService struct {
	createFn func(context.Context, string, ports.AgentStatsInput) (*domain.AgentStats, error)
}

func (s *stubStatsService) Get(context.Context, string) (*domain.AgentStats, error) {
	return nil, domain.ErrAgentStatsNotFound
}

func (s *stubStatsService) Create(ctx context.Context, agentID string, in ports.AgentStatsInput) (*domain.AgentStats, error) {
	return s.createFn(ctx, agentID, in)
}

func (s *stubStatsService) Update(context.Context, string, ports.AgentStatsInput) (*domain.AgentStats, error) {
	return nil, domain.ErrAgentStatsNotFound
}

func (s *stubStatsService) Delete(context.Context, string) error {
	return nil
}

type stubMovingService struct {
	createFn       func(context.Context, *domain.Renter, ports.MovingRequestInput) (*domain.MovingRequest, error)
	listAllFn      func(context.Context, ports.MovingRequestFilter) ([]*domain.MovingRequest, error)
	updateFn       func(context.Context, *domain.Renter, string, ports.MovingRequestInput) (*domain.MovingRequest, error)
	updateStatusFn func(context.Context, string, ports.MovingStatusUpdate) (*domain.MovingRequest, error)
}

func (s *stubMovingService) Create(ctx context.Context, r *domain.Renter, in ports.MovingRequestInput) (*domain.MovingRequest, error) {
	return s.createFn(ctx, r, in)
}

func (s *stubMovingService) ListMine(context.Context, *domain.Renter) ([]*domain.MovingRequest, error) {
	return []*domain.MovingRequest{}, nil
}

func (s *stubMovingService) Get(context.Context, *domain.Renter, string) (*domain.MovingRequest, error) {
	return nil, domain.ErrMovingRequestNotFound
}

func (s *stubMovingService) Update(ctx context.Context, r *domain.Renter, id string, in ports.MovingRequestInput) (*domain.MovingRequest, error) {
	return s.updateFn(ctx, r, id, in)
}

func (s *stubMovingService) Delete(context.Context, *domain.Renter, string) error {
	return nil
}

func (s *stubMovingService) ListAll(ctx context.Context, f ports.MovingRequestFilter) ([]*domain.MovingRequest, error) {
	return s.listAllFn(ctx, f)
}

func (s *stubMovingService) UpdateStatus(ctx context.Context, id string, in ports.MovingStatusUpdate) (*domain.MovingRequest, error) {
	return s.updateStatusFn(ctx, id, in)
}

type stubDashboardService struct {
	agent *ports.AgentDashboard
	admin *ports.AdminDashboard
}

func (s *stubDashboardService) AgentStats(context.Context, *domain.Agent) (*ports.AgentDashboard, error) {
	return s.agent, nil
}

func (s *stubDashboardService) AgentProperties(context.Context, *domain.Agent) ([]*domain.Listing, error) {
	return []*domain.Listing{}, nil
}

func (s *stubDashboardService) AdminStats(context.Context) (*ports.AdminDashboard, error) {
	return s.admin, nil
}

func (s *stubDashboardService) AdminProperties(context.Context, int, int) ([]*domain.Listing, error) {
	return []*domain.Listing{}, nil
}

func (s *stubDashboardService) AdminRenters(context.Context, int, int) ([]*domain.Renter, error) {
	return []*domain.Renter{}, nil
}

func (s *stubDashboardService) AdminAgents(context.Context, int, int) ([]*domain.Agent, error) {
	return []*domain.Agent{}, nil
}
