package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/ports"
)

// ListingHandler handles HTTP requests for house listings.
type ListingHandler struct {
	service ports.ListingService
}

func NewListingHandler(service ports.ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// List handles GET /houses.
//
// @Summary      List available houses
// @Tags         houses
// @Produce      json
// @Param        skip   query     int  false  "Offset"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {array}   domain.Listing
// @Router       /api/v1/houses [get]
func (h *ListingHandler) List(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	listings, err := h.service.ListAvailable(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Search handles GET /houses/search.
//
// @Summary      Search houses
// @Tags         houses
// @Produce      json
// @Param        city            query     string  false  "City (case-insensitive substring)"
// @Param        state           query     string  false  "State (case-insensitive substring)"
// @Param        min_price       query     number  false  "Minimum monthly rent"
// @Param        max_price       query     number  false  "Maximum monthly rent"
// @Param        min_bedrooms    query     int     false  "Minimum bedrooms"
// @Param        max_bedrooms    query     int     false  "Maximum bedrooms"
// @Param        min_bathrooms   query     number  false  "Minimum bathrooms"
// @Param        max_bathrooms   query     number  false  "Maximum bathrooms"
// @Param        property_type   query     string  false  "Property type"
// @Param        pet_policy      query     string  false  "Pet policy"
// @Param        parking         query     string  false  "Parking"
// @Param        available_only  query     bool    false  "Only available houses (default true)"
// @Param        offset          query     int     false  "Offset"
// @Param        limit           query     int     false  "Page size (max 100)"
// @Success      200             {array}   domain.Listing
// @Failure      400             {object}  ErrorResponse
// @Router       /api/v1/houses/search [get]
func (h *ListingHandler) Search(c echo.Context) error {
	filter, err := searchFilter(c)
	if err != nil {
		return err
	}
	listings, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Get handles GET /houses/:id. Each client address counts once per dedup window.
//
// @Summary      Get a house
// @Tags         houses
// @Produce      json
// @Param        id   path      string  true  "House id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/houses/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.service.Get(c.Request().Context(), c.Param("id"), c.RealIP())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// ListByAgent handles GET /houses/agent/:agent_id.
//
// @Summary      List an agent's houses
// @Tags         houses
// @Produce      json
// @Param        agent_id  path      string  true   "Agent id"
// @Param        skip      query     int     false  "Offset"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {array}   domain.Listing
// @Router       /api/v1/houses/agent/{agent_id} [get]
func (h *ListingHandler) ListByAgent(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}
	listings, err := h.service.ListByAgent(c.Request().Context(), c.Param("agent_id"), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Create handles POST /houses.
//
// @Summary      Create a house listing
// @Tags         houses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      listingRequest  true  "Listing"
// @Success      201   {object}  domain.Listing
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/houses [post]
func (h *ListingHandler) Create(c echo.Context) error {
	agent, err := ctxAgent(c)
	if err != nil {
		return err
	}
	var req listingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	listing, err := h.service.Create(c.Request().Context(), agent, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, listing)
}

// Update handles PUT /houses/:id. Only the owning agent may update.
//
// @Summary      Update a house listing
// @Tags         houses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "House id"
// @Param        body  body      listingRequest  true  "Fields to change"
// @Success      200   {object}  domain.Listing
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/houses/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	agent, err := ctxAgent(c)
	if err != nil {
		return err
	}
	var req listingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	listing, err := h.service.Update(c.Request().Context(), agent, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Delete handles DELETE /houses/:id. Only the owning agent may delete.
//
// @Summary      Delete a house listing
// @Tags         houses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "House id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/houses/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	agent, err := ctxAgent(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), agent, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "house listing deleted"})
}
