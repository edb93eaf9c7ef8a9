package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

// AccountHandler serves renter and agent sign-up, profiles, the public agent
// directory and admin activation.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRenter handles POST /users.
//
// @Summary      Register a renter
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRenterRequest  true  "Renter details"
// @Success      201   {object}  domain.Renter
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/users [post]
func (h *AccountHandler) RegisterRenter(c echo.Context) error {
	var req registerRenterRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	renter, err := h.service.RegisterRenter(c.Request().Context(), ports.RegisterRenterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Bio:      req.Bio,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, renter)
}

// RenterMe handles GET /users/me.
//
// @Summary      Current renter profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Renter
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/users/me [get]
func (h *AccountHandler) RenterMe(c echo.Context) error {
	renter, err := ctxRenter(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, renter)
}

// UpdateRenterMe handles PUT /users/me.
//
// @Summary      Update the current renter profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileUpdateRequest  true  "Fields to change"
// @Success      200   {object}  domain.Renter
// @Failure      401   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/users/me [put]
func (h *AccountHandler) UpdateRenterMe(c echo.Context) error {
	renter, err := ctxRenter(c)
	if err != nil {
		return err
	}
	var req profileUpdateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateRenterProfile(c.Request().Context(), renter, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// RegisterAgent handles POST /agents.
//
// @Summary      Register a listing agent
// @Tags         agents
// @Accept       json
// @Produce      json
// @Param        body  body      registerAgentRequest  true  "Agent details"
// @Success      201   {object}  domain.Agent
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/agents [post]
func (h *AccountHandler) RegisterAgent(c echo.Context) error {
	var req registerAgentRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	agent, err := h.service.RegisterAgent(c.Request().Context(), ports.RegisterAgentInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		FullName:        req.FullName,
		Title:           req.Title,
		Phone:           req.Phone,
		LicenseNumber:   req.LicenseNumber,
		Company:         req.Company,
		Bio:             req.Bio,
		YearsExperience: req.YearsExperience,
		Specialties:     req.Specialties,
		ServiceAreas:    req.ServiceAreas,
		Languages:       req.Languages,
		Certifications:  req.Certifications,
		Achievements:    req.Achievements,
		ProfilePicture:  req.ProfilePicture,
		Avatar:          req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, agent)
}

// AgentMe handles GET /agents/me.
//
// @Summary      Current agent profile
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Agent
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/v1/agents/me [get]
func (h *AccountHandler) AgentMe(c echo.Context) error {
	agent, err := ctxAgent(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agent)
}

// UpdateAgentMe handles PUT /agents/me.
//
// @Summary      Update the current agent profile
// @Tags         agents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      agentProfileUpdateRequest  true  "Fields to change"
// @Success      200   {object}  domain.Agent
// @Failure      401   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/v1/agents/me [put]
func (h *AccountHandler) UpdateAgentMe(c echo.Context) error {
	agent, err := ctxAgent(c)
	if err != nil {
		return err
	}
	var req agentProfileUpdateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	updated, err := h.service.UpdateAgentProfile(c.Request().Context(), agent, ports.AgentProfileUpdate{
		ProfileUpdate:   req.toInput(),
		Company:         req.Company,
		YearsExperience: req.YearsExperience,
		Specialties:     req.Specialties,
		ServiceAreas:    req.ServiceAreas,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// ListAgents handles GET /agents.
//
// @Summary      Agent directory
// @Tags         agents
// @Produce      json
// @Param        city       query     string  false  "Service area (case-insensitive)"
// @Param        specialty  query     string  false  "Specialty (case-insensitive)"
// @Param        skip       query     int     false  "Offset"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {array}   domain.Agent
// @Router       /api/v1/agents [get]
func (h *AccountHandler) ListAgents(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	agents, err := h.service.ListAgents(c.Request().Context(), ports.AgentFilter{
		City:      c.QueryParam("city"),
		Specialty: c.QueryParam("specialty"),
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agents)
}

// GetAgent handles GET /agents/:id.
//
// @Summary      Get an agent
// @Tags         agents
// @Produce      json
// @Param        id   path      string  true  "Agent id"
// @Success      200  {object}  domain.Agent
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/agents/{id} [get]
func (h *AccountHandler) GetAgent(c echo.Context) error {
	agent, err := h.service.GetAgent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agent)
}

// SetRenterActive handles PATCH /admin/renters/:id/active.
//
// @Summary      Activate or deactivate a renter
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Renter id"
// @Param        body  body      activationRequest  true  "Desired state"
// @Success      200   {object}  domain.Renter
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/v1/admin/renters/{id}/active [patch]
func (h *AccountHandler) SetRenterActive(c echo.Context) error {
	return h.setActive(c, domain.KindRenter)
}

// SetAgentActive handles PATCH /admin/agents/:id/active.
//
// @Summary      Activate or deactivate an agent
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Agent id"
// @Param        body  body      activationRequest  true  "Desired state"
// @Success      200   {object}  domain.Agent
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/v1/admin/agents/{id}/active [patch]
func (h *AccountHandler) SetAgentActive(c echo.Context) error {
	return h.setActive(c, domain.KindAgent)
}

func (h *AccountHandler) setActive(c echo.Context, kind domain.Kind) error {
	var req activationRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	p, err := h.service.SetActive(c.Request().Context(), kind, c.Param("id"), *req.Active)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (r profileUpdateRequest) toInput() ports.ProfileUpdate {
	return ports.ProfileUpdate{
		Username:       r.Username,
		Email:          r.Email,
		FullName:       r.FullName,
		Phone:          r.Phone,
		Bio:            r.Bio,
		ProfilePicture: r.ProfilePicture,
	}
}
