package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homerent/rental-api/internal/api/handler"
	"github.com/homerent/rental-api/internal/core/domain"
)

func serveError(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/api/v1/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unauthenticated", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrExpiredToken), http.StatusUnauthorized, "could not validate credentials"},
		{"inactive", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrInactiveAccount), http.StatusUnauthorized, "could not validate credentials"},
		{"forbidden", fmt.Errorf("%w: requires agent", domain.ErrForbidden), http.StatusForbidden, "access forbidden"},
		{"bad login", domain.ErrInvalidCredential, http.StatusUnauthorized, "invalid credentials"},
		{"listing missing", fmt.Errorf("get listing: %w", domain.ErrListingNotFound), http.StatusNotFound, "house not found"},
		{"principal exists", domain.ErrPrincipalExists, http.StatusConflict, "username, email or license number already registered"},
		{"stats exist", domain.ErrAgentStatsExists, http.StatusConflict, "agent stats already exist"},
		{"transition", fmt.Errorf("%w: completed -> pending", domain.ErrInvalidTransition), http.StatusUnprocessableEntity, "invalid status transition: completed -> pending"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("socket closed"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveError(t, http.MethodGet, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body handler.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_UnauthorizedCarriesChallenge(t *testing.T) {
	rec := serveError(t, http.MethodGet, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrInvalidSignature))
	if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
	}

	rec = serveError(t, http.MethodGet, domain.ErrForbidden)
	if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "" {
		t.Fatalf("forbidden must not challenge, got %q", got)
	}
}

func TestHTTPErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := serveError(t, http.MethodHead, domain.ErrReviewNotFound)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}
