package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/api/middleware"
	"github.com/homerent/rental-api/internal/core/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Each accessor fails fast with 401 when the route was mounted without the
// matching Authorize middleware; the principal's presence proves the guard ran.

func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, nil
}

func ctxRenter(c echo.Context) (*domain.Renter, error) {
	r, ok := middleware.RenterFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return r, nil
}

func ctxAgent(c echo.Context) (*domain.Agent, error) {
	a, ok := middleware.AgentFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return a, nil
}

// bindValid decodes the request into req and runs the registered validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// pageParams reads skip and limit from the query string. limit defaults to
// defaultLimit and is capped at maxLimit.
func pageParams(c echo.Context) (skip, limit int, err error) {
	limit = defaultLimit
	if err := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError(); err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "skip and limit must be integers")
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit, nil
}
