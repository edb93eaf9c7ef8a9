package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type agentDashboardResponse struct {
	TotalProperties     int64   `json:"total_properties"`
	AvailableProperties int64   `json:"available_properties"`
	RentedProperties    int64   `json:"rented_properties"`
	TotalRevenue        float64 `json:"total_revenue"`
	Rating              float64 `json:"rating"`
	YearsExperience     int     `json:"years_experience"`
}

type adminDashboardResponse struct {
	TotalRenters        int64   `json:"total_users"`
	RecentRenters       int64   `json:"recent_users"`
	TotalAgents         int64   `json:"total_agents"`
	RecentAgents        int64   `json:"recent_agents"`
	TotalProperties     int64   `json:"total_properties"`
	AvailableProperties int64   `json:"available_properties"`
	RentedProperties    int64   `json:"rented_properties"`
	TotalRevenue        float64 `json:"total_revenue"`
	AverageRating       float64 `json:"average_agent_rating"`
	TotalMovingRequests int64   `json:"total_furniture_requests"`
}

// AgentStats handles GET /dashboard/agent/stats.
//
// @Summary      Agent dashboard figures
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  agentDashboardResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/dashboard/agent/stats [get]
func (h *DashboardHandler) AgentStats(c echo.Context) error {
	agent, err := ctxAgent(c)
	if err != nil {
		return err
	}
	d, err := h.service.AgentStats(c.Request().Context(), agent)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agentDashboardResponse{
		TotalProperties:     d.TotalProperties,
		AvailableProperties: d.AvailableProperties,
		RentedProperties:    d.TotalProperties - d.AvailableProperties,
		TotalRevenue:        d.TotalRevenue,
		Rating:              d.Rating,
		YearsExperience:     d.YearsExperience,
	})
}

// AgentProperties handles GET /dashboard/agent/properties.
//
// @Summary      The current agent's listings
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Listing
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/dashboard/agent/properties [get]
func (h *DashboardHandler) AgentProperties(c echo.Context) error {
	agent, err := ctxAgent(c)
	if err != nil {
		return err
	}
	listings, err := h.service.AgentProperties(c.Request().Context(), agent)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// AdminStats handles GET /dashboard/admin/stats.
//
// @Summary      Marketplace figures
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminDashboardResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/dashboard/admin/stats [get]
func (h *DashboardHandler) AdminStats(c echo.Context) error {
	d, err := h.service.AdminStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminDashboardResponse{
		TotalRenters:        d.TotalRenters,
		RecentRenters:       d.RecentRenters,
		TotalAgents:         d.TotalAgents,
		RecentAgents:        d.RecentAgents,
		TotalProperties:     d.TotalProperties,
		AvailableProperties: d.AvailableProperties,
		RentedProperties:    d.RentedProperties,
		TotalRevenue:        d.TotalRevenue,
		AverageRating:       d.AverageRating,
		TotalMovingRequests: d.TotalMovingRequests,
	})
}

// AdminProperties handles GET /dashboard/admin/properties.
//
// @Summary      All listings
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {array}   domain.Listing
// @Failure      403    {object}  ErrorResponse
// @Router       /api/v1/dashboard/admin/properties [get]
func (h *DashboardHandler) AdminProperties(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	listings, err := h.service.AdminProperties(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// AdminRenters handles GET /dashboard/admin/users.
//
// @Summary      All renters
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {array}   domain.Renter
// @Failure      403    {object}  ErrorResponse
// @Router       /api/v1/dashboard/admin/users [get]
func (h *DashboardHandler) AdminRenters(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	renters, err := h.service.AdminRenters(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, renters)
}

// AdminAgents handles GET /dashboard/admin/agents.
//
// @Summary      All agents
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {array}   domain.Agent
// @Failure      403    {object}  ErrorResponse
// @Router       /api/v1/dashboard/admin/agents [get]
func (h *DashboardHandler) AdminAgents(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	agents, err := h.service.AdminAgents(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agents)
}
