package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/service"
	"github.com/homerent/rental-api/internal/pkg/metrics"
)

const principalKey = "principal"

// Authorizer checks a bearer token against a policy.
// *service.Guard is the production implementation.
type Authorizer interface {
	Authorize(ctx context.Context, token string, policy service.Policy) (domain.Principal, error)
}

// Authorize resolves the bearer token through the guard and stores the
// principal in the echo context. Failures are counted as guard rejections
// and returned unchanged so the central error handler can map them to 401
// or 403.
func Authorize(guard Authorizer, policy service.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := guard.Authorize(c.Request().Context(), bearerToken(c), policy)
			if err != nil {
				recordRejection(err)
				return err
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

func recordRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.GuardRejectionsTotal.WithLabelValues("unauthenticated").Inc()
	case errors.Is(err, domain.ErrForbidden):
		metrics.GuardRejectionsTotal.WithLabelValues("forbidden").Inc()
	}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or uses another scheme.
func bearerToken(c echo.Context) string {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// PrincipalFrom returns the principal stored by Authorize.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok && p != nil
}

// RenterFrom returns the authenticated renter, if the caller is one.
func RenterFrom(c echo.Context) (*domain.Renter, bool) {
	r, ok := c.Get(principalKey).(*domain.Renter)
	return r, ok
}

// AgentFrom returns the authenticated agent, if the caller is one.
func AgentFrom(c echo.Context) (*domain.Agent, bool) {
	a, ok := c.Get(principalKey).(*domain.Agent)
	return a, ok
}
