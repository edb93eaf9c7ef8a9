package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/ports"
)

// MovingRequestHandler serves /furniture-requests.
type MovingRequestHandler struct {
	service ports.MovingRequestService
}

func NewMovingRequestHandler(service ports.MovingRequestService) *MovingRequestHandler {
	return &MovingRequestHandler{service: service}
}

// Create handles POST /furniture-requests.
//
// @Summary      Request a furniture move
// @Tags         furniture-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movingRequestRequest  true  "Moving request"
// @Success      201   {object}  domain.MovingRequest
// @Failure      403   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/furniture-requests [post]
func (h *MovingRequestHandler) Create(c echo.Context) error {
	renter, err := ctxRenter(c)
	if err != nil {
		return err
	}
	var req movingRequestRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	mr, err := h.service.Create(c.Request().Context(), renter, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, mr)
}

// ListMine handles GET /furniture-requests/my-requests.
//
// @Summary      List my moving requests
// @Tags         furniture-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.MovingRequest
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/furniture-requests/my-requests [get]
func (h *MovingRequestHandler) ListMine(c echo.Context) error {
	renter, err := ctxRenter(c)
	if err != nil {
		return err
	}
	requests, err := h.service.ListMine(c.Request().Context(), renter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// ListAll handles GET /furniture-requests (admin only).
//
// @Summary      List all moving requests
// @Tags         furniture-requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Param        skip    query     int     false  "Offset"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {array}   domain.MovingRequest
// @Failure      403     {object}  ErrorResponse
// @Failure      422     {object}  ErrorResponse
// @Router       /api/v1/furniture-requests [get]
func (h *MovingRequestHandler) ListAll(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	requests, err := h.service.ListAll(c.Request().Context(), ports.MovingRequestFilter{
		Status: c.QueryParam("status"),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Get handles GET /furniture-requests/:id.
//
// @Summary      Get one of my moving requests
// @Tags         furniture-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.MovingRequest
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/furniture-requests/{id} [get]
func (h *MovingRequestHandler) Get(c echo.Context) error {
	renter, err := ctxRenter(c)
	if err != nil {
		return err
	}
	mr, err := h.service.Get(c.Request().Context(), renter, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mr)
}

// Update handles PUT /furniture-requests/:id.
//
// @Summary      Update one of my moving requests
// @Tags         furniture-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Request id"
// @Param        body  body      movingRequestRequest  true  "Fields to change"
// @Success      200   {object}  domain.MovingRequest
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/furniture-requests/{id} [put]
func (h *MovingRequestHandler) Update(c echo.Context) error {
	renter, err := ctxRenter(c)
	if err != nil {
		return err
	}
	var req movingRequestRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	mr, err := h.service.Update(c.Request().Context(), renter, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mr)
}

// Delete handles DELETE /furniture-requests/:id.
//
// @Summary      Delete one of my moving requests
// @Tags         furniture-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/furniture-requests/{id} [delete]
func (h *MovingRequestHandler) Delete(c echo.Context) error {
	renter, err := ctxRenter(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), renter, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "furniture request deleted"})
}

// UpdateStatus handles PATCH /furniture-requests/:id/status (admin only).
//
// @Summary      Advance a moving request
// @Tags         furniture-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Request id"
// @Param        body  body      movingStatusRequest  true  "Status and quote"
// @Success      200   {object}  domain.MovingRequest
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/furniture-requests/{id}/status [patch]
func (h *MovingRequestHandler) UpdateStatus(c echo.Context) error {
	var req movingStatusRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	mr, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mr)
}
