package ports

import (
	"context"
	"time"

	"github.com/homerent/rental-api/internal/core/domain"
)

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

// AuthService authenticates a principal of a given kind and issues a bearer token.
type AuthService interface {
	Login(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*AccessToken, error)
}
