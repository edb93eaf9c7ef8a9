package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
	stats   ports.AgentStatsService
}

func NewReviewHandler(reviews ports.ReviewService, stats ports.AgentStatsService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, stats: stats}
}

// Create handles POST /reviews.
//
// @Summary      Review an agent
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	renter, err := ctxRenter(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.Create(c.Request().Context(), renter, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}

// Get handles GET /reviews/:id.
//
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review id"
// @Success      200  {object}  domain.Review
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/reviews/{id} [get]
func (h *ReviewHandler) Get(c echo.Context) error {
	review, err := h.reviews.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// ListByAgent handles GET /reviews/agent/:agent_id.
//
// @Summary      List an agent's reviews
// @Tags         reviews
// @Produce      json
// @Param        agent_id  path      string  true  "Agent id"
// @Success      200       {array}   domain.Review
// @Router       /api/v1/reviews/agent/{agent_id} [get]
func (h *ReviewHandler) ListByAgent(c echo.Context) error {
	reviews, err := h.reviews.ListByAgent(c.Request().Context(), c.Param("agent_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Update handles PUT /reviews/:id. Only the author may edit a review.
//
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Review id"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      200   {object}  domain.Review
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/v1/reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.Update(c.Request().Context(), caller, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

// Delete handles DELETE /reviews/:id. The author or an admin may delete.
//
// @Summary      Delete a review
// @Tags         reviews
// @Security     BearerAuth
// @Param        id   path  string  true  "Review id"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	caller, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetStats handles GET /agent-stats/:agent_id.
//
// @Summary      Get agent stats
// @Tags         agent-stats
// @Produce      json
// @Param        agent_id  path      string  true  "Agent id"
// @Success      200       {object}  domain.AgentStats
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/agent-stats/{agent_id} [get]
func (h *ReviewHandler) GetStats(c echo.Context) error {
	stats, err := h.stats.Get(c.Request().Context(), c.Param("agent_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// CreateStats handles POST /agent-stats/:agent_id.
//
// @Summary      Create agent stats
// @Tags         agent-stats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        agent_id  path      string             true  "Agent id"
// @Param        body      body      agentStatsRequest  true  "Stats"
// @Success      201       {object}  domain.AgentStats
// @Failure      404       {object}  ErrorResponse
// @Failure      409       {object}  ErrorResponse
// @Router       /api/v1/agent-stats/{agent_id} [post]
func (h *ReviewHandler) CreateStats(c echo.Context) error {
	var req agentStatsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	stats, err := h.stats.Create(c.Request().Context(), c.Param("agent_id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stats)
}

// UpdateStats handles PUT /agent-stats/:agent_id.
//
// @Summary      Update agent stats
// @Tags         agent-stats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        agent_id  path      string             true  "Agent id"
// @Param        body      body      agentStatsRequest  true  "Stats"
// @Success      200       {object}  domain.AgentStats
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/agent-stats/{agent_id} [put]
func (h *ReviewHandler) UpdateStats(c echo.Context) error {
	var req agentStatsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	stats, err := h.stats.Update(c.Request().Context(), c.Param("agent_id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// DeleteStats handles DELETE /agent-stats/:agent_id.
//
// @Summary      Delete agent stats
// @Tags         agent-stats
// @Security     BearerAuth
// @Param        agent_id  path  string  true  "Agent id"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/agent-stats/{agent_id} [delete]
func (h *ReviewHandler) DeleteStats(c echo.Context) error {
	if err := h.stats.Delete(c.Request().Context(), c.Param("agent_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r reviewRequest) toInput() ports.ReviewInput {
	return ports.ReviewInput{
		AgentID: r.AgentID,
		Rating:  r.Rating,
		Date:    r.Date,
		Comment: r.Comment,
	}
}

func (r agentStatsRequest) toInput() ports.AgentStatsInput {
	return ports.AgentStatsInput{
		TotalRentals:        r.TotalRentals,
		AverageResponseTime: r.AverageResponseTime,
		ClientSatisfaction:  r.ClientSatisfaction,
		RepeatClients:       r.RepeatClients,
	}
}
