package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/homerent/rental-api/docs"
	"github.com/homerent/rental-api/internal/api/handler"
	"github.com/homerent/rental-api/internal/api/middleware"
	"github.com/homerent/rental-api/internal/core/ports"
	"github.com/homerent/rental-api/internal/core/service"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Listings   ports.ListingService
	Reviews    ports.ReviewService
	AgentStats ports.AgentStatsService
	Moving     ports.MovingRequestService
	Dashboard  ports.DashboardService
}

type RouterConfig struct {
	Logger      zerolog.Logger
	CORSOrigins []string
	// Guard authorizes bearer tokens on protected routes.
	Guard middleware.Authorizer
	// Checks back the readiness probe.
	Checks []handler.DependencyCheck
	// Registerer and Gatherer default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the Echo instance with every route registered under /api/v1.
func NewRouter(cfg RouterConfig, svc Services) *echo.Echo {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(cfg.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: cfg.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(cfg.Checks...).Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Guards ---
	anyActive := middleware.Authorize(cfg.Guard, service.PolicyAnyActive)
	renterOnly := middleware.Authorize(cfg.Guard, service.PolicyRenter)
	agentOnly := middleware.Authorize(cfg.Guard, service.PolicyAgent)
	adminOnly := middleware.Authorize(cfg.Guard, service.PolicyAdmin)

	v1 := e.Group("/api/v1")

	auth := handler.NewAuthHandler(svc.Auth)
	v1.POST("/auth/renter/login", auth.RenterLogin)
	v1.POST("/auth/user/login", auth.RenterLogin)
	v1.POST("/auth/agent/login", auth.AgentLogin)

	accounts := handler.NewAccountHandler(svc.Accounts)
	v1.POST("/users", accounts.RegisterRenter)
	v1.GET("/users/me", accounts.RenterMe, renterOnly)
	v1.PUT("/users/me", accounts.UpdateRenterMe, renterOnly)
	v1.POST("/agents", accounts.RegisterAgent)
	v1.GET("/agents", accounts.ListAgents)
	v1.GET("/agents/me", accounts.AgentMe, agentOnly)
	v1.PUT("/agents/me", accounts.UpdateAgentMe, agentOnly)
	v1.GET("/agents/:id", accounts.GetAgent)

	listings := handler.NewListingHandler(svc.Listings)
	v1.GET("/houses", listings.List)
	v1.GET("/houses/search", listings.Search)
	v1.GET("/houses/agent/:agent_id", listings.ListByAgent)
	v1.GET("/houses/:id", listings.Get)
	v1.POST("/houses", listings.Create, agentOnly)
	v1.PUT("/houses/:id", listings.Update, agentOnly)
	v1.DELETE("/houses/:id", listings.Delete, agentOnly)

	reviews := handler.NewReviewHandler(svc.Reviews, svc.AgentStats)
	v1.POST("/reviews", reviews.Create, renterOnly)
	v1.GET("/reviews/agent/:agent_id", reviews.ListByAgent)
	v1.GET("/reviews/:id", reviews.Get)
	v1.PUT("/reviews/:id", reviews.Update, anyActive)
	v1.DELETE("/reviews/:id", reviews.Delete, anyActive)

	v1.GET("/agent-stats/:agent_id", reviews.GetStats)
	v1.POST("/agent-stats/:agent_id", reviews.CreateStats, adminOnly)
	v1.PUT("/agent-stats/:agent_id", reviews.UpdateStats, adminOnly)
	v1.DELETE("/agent-stats/:agent_id", reviews.DeleteStats, adminOnly)

	moving := handler.NewMovingRequestHandler(svc.Moving)
	v1.POST("/furniture-requests", moving.Create, renterOnly)
	v1.GET("/furniture-requests", moving.ListAll, adminOnly)
	v1.GET("/furniture-requests/my-requests", moving.ListMine, renterOnly)
	v1.GET("/furniture-requests/:id", moving.Get, renterOnly)
	v1.PUT("/furniture-requests/:id", moving.Update, renterOnly)
	v1.DELETE("/furniture-requests/:id", moving.Delete, renterOnly)
	v1.PATCH("/furniture-requests/:id/status", moving.UpdateStatus, adminOnly)

	dashboard := handler.NewDashboardHandler(svc.Dashboard)
	agentDash := v1.Group("/dashboard/agent", agentOnly)
	agentDash.GET("/stats", dashboard.AgentStats)
	agentDash.GET("/properties", dashboard.AgentProperties)
	adminDash := v1.Group("/dashboard/admin", adminOnly)
	adminDash.GET("/stats", dashboard.AdminStats)
	adminDash.GET("/properties", dashboard.AdminProperties)
	adminDash.GET("/users", dashboard.AdminRenters)
	adminDash.GET("/agents", dashboard.AdminAgents)

	admin := v1.Group("/admin", adminOnly)
	admin.PATCH("/renters/:id/active", accounts.SetRenterActive)
	admin.PATCH("/agents/:id/active", accounts.SetAgentActive)

	return e
}

// requestLogger writes one zerolog line per request. Errors are handed to the
// HTTP error handler first so the logged status is the one sent.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		HandleError:  true,
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
