package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
)

func TestAuthHandler_AgentLogin_Success(t *testing.T) {
	expires := time.Date(2026, 10, 16, 12, 30, 0, 0, time.UTC)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*ports.AccessToken, error) {
			if kind != domain.KindAgent || usernameOrEmail != "sarahjohnson" || password != "agent123" {
				t.Fatalf("unexpected args: %s %s %s", kind, usernameOrEmail, password)
			}
			return &ports.AccessToken{Token: "token123", TokenType: "bearer", ExpiresAt: expires}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newRequest(http.MethodPost, "/api/v1/auth/agent/login", `{"username":"sarahjohnson","password":"agent123"}`)
	if err := handler.AgentLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "token123" || resp.TokenType != "bearer" || !resp.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
}

func TestAuthHandler_RenterLogin_Form(t *testing.T) {
	var gotKind domain.Kind
	var gotUser string
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*ports.AccessToken, error) {
			gotKind, gotUser = kind, usernameOrEmail
			return &ports.AccessToken{Token: "t", TokenType: "bearer"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newRequest(http.MethodPost, "/api/v1/auth/renter/login", "username=john.smith%40email.com&password=password123")
	if err := handler.RenterLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotKind != domain.KindRenter || gotUser != "john.smith@email.com" {
		t.Fatalf("unexpected login args: %s %s", gotKind, gotUser)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*ports.AccessToken, error) {
			return nil, domain.ErrInvalidCredential
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newRequest(http.MethodPost, "/api/v1/auth/agent/login", `{"username":"sarahjohnson","password":"bad"}`)
	if err := handler.AgentLogin(c); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*ports.AccessToken, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newRequest(http.MethodPost, "/api/v1/auth/renter/login", `{"username":"johnsmith"}`)
	if err := handler.RenterLogin(c); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*ports.AccessToken, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newRequest(http.MethodPost, "/api/v1/auth/renter/login", "{")
	err := handler.RenterLogin(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
