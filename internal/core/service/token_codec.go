package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/homerent/rental-api/internal/core/domain"
)

// DefaultTokenTTL is the access token lifetime used when none is configured.
const DefaultTokenTTL = 30 * time.Minute

// TokenConfig is the process-wide signing configuration, fixed at start-up.
type TokenConfig struct {
	Secret    string
	Algorithm string // HS256, HS384 or HS512; empty means HS256
	TTL       time.Duration
}

// Claims is the decoded content of a bearer token.
type Claims struct {
	Subject   string
	Kind      domain.Kind
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the JWT wire shape: registered claims plus the principal kind.
type tokenClaims struct {
	jwt.RegisteredClaims
	Kind string `json:"kind"`
}

// TokenCodec issues and decodes signed, time-bounded bearer tokens.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec validates cfg and returns a codec bound to it.
func NewTokenCodec(cfg TokenConfig) (*TokenCodec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token codec: signing secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("token codec: unsupported signing algorithm %q", alg)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL returns the configured default token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a token for subject/kind that expires ttl from now.
func (c *TokenCodec) Issue(subject string, kind domain.Kind, ttl time.Duration) (string, Claims, error) {
	if subject == "" || kind == "" {
		return "", Claims{}, domain.ErrMalformedToken
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	now := c.now()
	wire := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind: string(kind),
	}

	signed, err := jwt.NewWithClaims(c.method, wire).SignedString(c.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, toClaims(wire), nil
}

// Decode verifies the signature and expiry of token and returns its claims.
// Failures wrap domain.ErrInvalidCredential through one of
// domain.ErrInvalidSignature, domain.ErrMalformedToken or domain.ErrExpiredToken.
func (c *TokenCodec) Decode(token string) (Claims, error) {
	var wire tokenClaims
	_, err := jwt.ParseWithClaims(token, &wire,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, domain.ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, domain.ErrInvalidSignature
		default:
			return Claims{}, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
		}
	}

	if wire.Subject == "" || wire.Kind == "" {
		return Claims{}, domain.ErrMalformedToken
	}
	return toClaims(wire), nil
}

func toClaims(w tokenClaims) Claims {
	cl := Claims{
		Subject: w.Subject,
		Kind:    domain.Kind(w.Kind),
		ID:      w.ID,
	}
	if w.IssuedAt != nil {
		cl.IssuedAt = w.IssuedAt.Time
	}
	if w.ExpiresAt != nil {
		cl.ExpiresAt = w.ExpiresAt.Time
	}
	return cl
}
