package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/homerent/rental-api/internal/core/domain"
	"github.com/homerent/rental-api/internal/core/ports"
	"github.com/homerent/rental-api/internal/pkg/metrics"
)

const tokenTypeBearer = "bearer"

// AuthService implements login for both principal kinds.
type AuthService struct {
	store  ports.CredentialStore
	hasher PasswordHasher
	codec  *TokenCodec
	logger zerolog.Logger

	// dummyDigest is compared against on the not-found path so it costs the
	// same single verification as a wrong password.
	dummyDigest string
}

func NewAuthService(store ports.CredentialStore, hasher PasswordHasher, codec *TokenCodec, logger zerolog.Logger) *AuthService {
	s := &AuthService{store: store, hasher: hasher, codec: codec, logger: logger}
	d, err := hasher.Hash("timing-equalisation-placeholder")
	if err != nil {
		logger.Warn().Err(err).Msg("failed to prepare dummy digest")
	}
	s.dummyDigest = d
	return s
}

// Login authenticates usernameOrEmail against principals of kind. The username
// match wins over an email match. Unknown principal and wrong password both
// return domain.ErrInvalidCredential after one digest comparison each.
func (s *AuthService) Login(ctx context.Context, kind domain.Kind, usernameOrEmail, password string) (*ports.AccessToken, error) {
	if !kind.Valid() || usernameOrEmail == "" || password == "" {
		s.recordLogin(kind, "invalid_credentials")
		return nil, domain.ErrInvalidCredential
	}

	p, err := s.lookup(ctx, kind, usernameOrEmail)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			s.recordLogin(kind, "invalid_credentials")
			s.logger.Info().Str("kind", string(kind)).Msg("login rejected")
			return nil, domain.ErrInvalidCredential
		}
		s.recordLogin(kind, "error")
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, p.Credentials().PasswordHash) {
		s.recordLogin(kind, "invalid_credentials")
		s.logger.Info().Str("kind", string(kind)).Msg("login rejected")
		return nil, domain.ErrInvalidCredential
	}

	token, claims, err := s.codec.Issue(p.Credentials().Username, kind, s.codec.TTL())
	if err != nil {
		s.recordLogin(kind, "error")
		return nil, fmt.Errorf("login: %w", err)
	}

	s.recordLogin(kind, "success")
	s.logger.Info().
		Str("kind", string(kind)).
		Str("principal_id", p.Credentials().ID).
		Time("expires_at", claims.ExpiresAt).
		Msg("login succeeded")

	return &ports.AccessToken{
		Token:     token,
		TokenType: tokenTypeBearer,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (s *AuthService) lookup(ctx context.Context, kind domain.Kind, identifier string) (domain.Principal, error) {
	p, err := s.store.FindByUsername(ctx, kind, identifier)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, err
	}
	return s.store.FindByEmail(ctx, kind, identifier)
}

func (s *AuthService) recordLogin(kind domain.Kind, result string) {
	label := string(kind)
	if !kind.Valid() {
		label = "unknown"
	}
	metrics.LoginsTotal.WithLabelValues(label, result).Inc()
}
