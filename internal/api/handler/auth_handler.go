package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// loginRequest accepts JSON or an OAuth2 password-grant style form.
// username may hold either the username or the email address. Missing
// fields are reported as invalid credentials, like any other failed login.
type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RenterLogin authenticates a renter.
//
// @Summary      Renter login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Username or email, and password"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/v1/auth/renter/login [post]
func (h *AuthHandler) RenterLogin(c echo.Context) error {
	return h.login(c, domain.KindRenter)
}

// AgentLogin authenticates a listing agent.
//
// @Summary      Agent login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Username or email, and password"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/v1/auth/agent/login [post]
func (h *AuthHandler) AgentLogin(c echo.Context) error {
	return h.login(c, domain.KindAgent)
}

func (h *AuthHandler) login(c echo.Context, kind domain.Kind) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return domain.ErrInvalidCredential
	}

	tok, err := h.authService.Login(c.Request().Context(), kind, req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: tok.Token,
		TokenType:   tok.TokenType,
		ExpiresAt:   tok.ExpiresAt,
	})
}
