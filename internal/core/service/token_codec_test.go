package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homerent/rental-api/internal/core/domain"
)

func newTestCodec(t *testing.T, secret string) *TokenCodec {
	t.Helper()
	c, err := NewTokenCodec(TokenConfig{Secret: secret, Algorithm: "HS256", TTL: 30 * time.Minute})
	require.NoError(t, err)
	return c
}

func TestNewTokenCodec_Validation(t *testing.T) {
	_, err := NewTokenCodec(TokenConfig{})
	assert.Error(t, err, "empty secret must be rejected")

	_, err = NewTokenCodec(TokenConfig{Secret: "s", Algorithm: "RS256"})
	assert.Error(t, err, "non-HMAC algorithm must be rejected")

	c, err := NewTokenCodec(TokenConfig{Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, c.TTL())
	assert.Equal(t, "HS256", c.method.Alg())
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t, "round-trip-secret")
	before := time.Now()

	token, issued, err := c.Issue("sarahjohnson", domain.KindAgent, 10*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := c.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "sarahjohnson", claims.Subject)
	assert.Equal(t, domain.KindAgent, claims.Kind)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, issued.ID, claims.ID)
	assert.True(t, issued.ExpiresAt.Equal(claims.ExpiresAt))
	assert.True(t, issued.IssuedAt.Equal(claims.IssuedAt))
	assert.WithinDuration(t, before.Add(10*time.Minute), claims.ExpiresAt, 2*time.Second)
}

func TestTokenCodec_IssueUsesDefaultTTL(t *testing.T) {
	c := newTestCodec(t, "ttl-secret")
	_, claims, err := c.Issue("johnsmith", domain.KindRenter, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt, 2*time.Second)
}

func TestTokenCodec_IssueRejectsEmptySubject(t *testing.T) {
	c := newTestCodec(t, "secret")
	_, _, err := c.Issue("", domain.KindRenter, time.Minute)
	assert.ErrorIs(t, err, domain.ErrMalformedToken)
}

func TestTokenCodec_Expired(t *testing.T) {
	c := newTestCodec(t, "expiry-secret")
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return issuedAt }

	token, _, err := c.Issue("johnsmith", domain.KindRenter, time.Minute)
	require.NoError(t, err)

	c.now = func() time.Time { return issuedAt.Add(59 * time.Second) }
	_, err = c.Decode(token)
	require.NoError(t, err, "token must be valid before expiry")

	c.now = func() time.Time { return issuedAt.Add(time.Minute) }
	_, err = c.Decode(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken, "expiry <= now must fail")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)

	c.now = func() time.Time { return issuedAt.Add(time.Hour) }
	_, err = c.Decode(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestTokenCodec_TamperedSignature(t *testing.T) {
	c := newTestCodec(t, "tamper-secret")
	token, _, err := c.Issue("johnsmith", domain.KindRenter, time.Minute)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = c.Decode(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestTokenCodec_TamperedPayload(t *testing.T) {
	c := newTestCodec(t, "tamper-secret")
	renterToken, _, err := c.Issue("johnsmith", domain.KindRenter, time.Minute)
	require.NoError(t, err)
	agentToken, _, err := c.Issue("johnsmith", domain.KindAgent, time.Minute)
	require.NoError(t, err)

	r := strings.Split(renterToken, ".")
	a := strings.Split(agentToken, ".")
	// agent claims under the renter signature
	forged := r[0] + "." + a[1] + "." + r[2]

	_, err = c.Decode(forged)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := newTestCodec(t, "secret-one")
	verifier := newTestCodec(t, "secret-two")

	token, _, err := issuer.Issue("johnsmith", domain.KindRenter, time.Minute)
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	c := newTestCodec(t, "alg-secret")

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "johnsmith",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Kind: "renter",
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("alg-secret"))
	require.NoError(t, err)
	_, err = c.Decode(hs512)
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Decode(none)
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestTokenCodec_Malformed(t *testing.T) {
	c := newTestCodec(t, "malformed-secret")

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := c.Decode(token)
		assert.ErrorIs(t, err, domain.ErrInvalidCredential, "token %q", token)
		assert.False(t, errors.Is(err, domain.ErrExpiredToken), "token %q", token)
	}
}

func TestTokenCodec_MissingClaims(t *testing.T) {
	c := newTestCodec(t, "claims-secret")
	sign := func(cl tokenClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte("claims-secret"))
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Minute))

	_, err := c.Decode(sign(tokenClaims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}, Kind: "renter"}))
	assert.ErrorIs(t, err, domain.ErrMalformedToken, "missing subject")

	_, err = c.Decode(sign(tokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "johnsmith", ExpiresAt: exp}}))
	assert.ErrorIs(t, err, domain.ErrMalformedToken, "missing kind")

	_, err = c.Decode(sign(tokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "johnsmith"}, Kind: "renter"}))
	assert.ErrorIs(t, err, domain.ErrMalformedToken, "missing expiry")
}
