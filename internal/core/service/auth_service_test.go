package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/homerent/rental-api/internal/core/domain"
)

type authFixture struct {
	repo  *stubPrincipalRepo
	codec *TokenCodec
	auth  *AuthService
	guard *Guard
	john  *domain.Renter
	sarah *domain.Agent
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	repo := newStubPrincipalRepo()
	john, sarah := seedMarketplace(repo)
	codec := newTestCodec(t, "auth-secret")
	return &authFixture{
		repo:  repo,
		codec: codec,
		auth:  NewAuthService(repo, NewBcryptHasher(bcrypt.MinCost), codec, zerolog.Nop()),
		guard: NewGuard(codec, NewPrincipalResolver(repo)),
		john:  john,
		sarah: sarah,
	}
}

func TestAuthService_AgentLoginThenRequireKind(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tok, err := f.auth.Login(ctx, domain.KindAgent, "sarahjohnson", "agent123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), tok.ExpiresAt, 2*time.Second)

	p, err := f.guard.RequireKind(ctx, tok.Token, domain.KindAgent)
	require.NoError(t, err)

	license := domain.MatchPrincipal(p,
		func(*domain.Renter) string { return "" },
		func(a *domain.Agent) string { return a.LicenseNumber },
	)
	assert.Equal(t, "RE123456", license)
	assert.Equal(t, "Sarah Johnson", p.Credentials().FullName)
}

func TestAuthService_EmailFallback(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	byEmail, err := f.auth.Login(ctx, domain.KindRenter, "john.smith@email.com", "password123")
	require.NoError(t, err)
	byUsername, err := f.auth.Login(ctx, domain.KindRenter, "johnsmith", "password123")
	require.NoError(t, err)

	for _, tok := range []string{byEmail.Token, byUsername.Token} {
		claims, err := f.codec.Decode(tok)
		require.NoError(t, err)
		assert.Equal(t, "johnsmith", claims.Subject, "subject is always the username")
		assert.Equal(t, domain.KindRenter, claims.Kind)

		p, err := f.guard.RequireKind(ctx, tok, domain.KindRenter)
		require.NoError(t, err)
		assert.Equal(t, f.john.ID, p.Credentials().ID)
	}
}

func TestAuthService_UsernameMatchTakesPrecedence(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	// A renter whose username equals another renter's email.
	_, err := f.repo.Save(ctx, &domain.Renter{Account: domain.Account{
		Username:     "john.smith@email.com",
		Email:        "impostor@email.com",
		PasswordHash: mustDigest("impostor-pass"),
		Active:       true,
	}})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, domain.KindRenter, "john.smith@email.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential, "username match must win; no OR-query")

	tok, err := f.auth.Login(ctx, domain.KindRenter, "john.smith@email.com", "impostor-pass")
	require.NoError(t, err)
	claims, err := f.codec.Decode(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "john.smith@email.com", claims.Subject)
}

func TestAuthService_WrongPasswordAndUnknownUserAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, wrongPassword := f.auth.Login(ctx, domain.KindRenter, "johnsmith", "not-the-password")
	_, unknownUser := f.auth.Login(ctx, domain.KindRenter, "nobody", "password123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, domain.ErrInvalidCredential, wrongPassword)
	assert.Equal(t, wrongPassword, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_UnknownUserStillComparesADigest(t *testing.T) {
	f := newAuthFixture(t)
	h := &countingHasher{PasswordHasher: NewBcryptHasher(bcrypt.MinCost)}
	f.auth = NewAuthService(f.repo, h, f.codec, zerolog.Nop())

	_, err := f.auth.Login(context.Background(), domain.KindAgent, "ghost", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
	assert.Equal(t, 1, h.verifies)

	_, err = f.auth.Login(context.Background(), domain.KindAgent, "sarahjohnson", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
	assert.Equal(t, 2, h.verifies)
}

func TestAuthService_KindIsRespected(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.auth.Login(context.Background(), domain.KindRenter, "sarahjohnson", "agent123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential, "agent credentials must not log in as a renter")

	_, err = f.auth.Login(context.Background(), domain.Kind("admin"), "johnsmith", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
}

func TestAuthService_NonAdminRenterIsForbiddenFromAdmin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tok, err := f.auth.Login(ctx, domain.KindRenter, "johnsmith", "password123")
	require.NoError(t, err)

	_, err = f.guard.RequireAdmin(ctx, tok.Token)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthService_InactivePrincipalCannotPassGuard(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.john.Active = false
	_, err := f.repo.Save(ctx, f.john)
	require.NoError(t, err)

	// Login itself does not check activation.
	tok, err := f.auth.Login(ctx, domain.KindRenter, "johnsmith", "password123")
	require.NoError(t, err)

	_, err = f.guard.ActiveAny(ctx, tok.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestAuthService_NoLockout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := f.auth.Login(ctx, domain.KindRenter, "johnsmith", "bad")
		require.ErrorIs(t, err, domain.ErrInvalidCredential)
	}
	_, err := f.auth.Login(ctx, domain.KindRenter, "johnsmith", "password123")
	assert.NoError(t, err)
}

func TestAuthService_StoreFailureIsNotInvalidCredential(t *testing.T) {
	f := newAuthFixture(t)
	f.repo.lookupErr = errStoreDown

	_, err := f.auth.Login(context.Background(), domain.KindRenter, "johnsmith", "password123")
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredential)
}

type countingHasher struct {
	PasswordHasher
	verifies int
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	h.verifies++
	return h.PasswordHasher.Verify(plaintext, digest)
}

type recordingHasher struct {
	PasswordHasher
	hashes   int
	verifies []string
}

func (h *recordingHasher) Hash(plaintext string) (string, error) {
	h.hashes++
	return h.PasswordHasher.Hash(plaintext)
}

func (h *recordingHasher) Verify(plaintext, digest string) bool {
	h.verifies = append(h.verifies, digest)
	return h.PasswordHasher.Verify(plaintext, digest)
}

func TestAuthService_UnknownUserCostsOneVerification(t *testing.T) {
	repo := newStubPrincipalRepo()
	seedMarketplace(repo)
	hasher := &recordingHasher{PasswordHasher: NewBcryptHasher(bcrypt.MinCost)}
	auth := NewAuthService(repo, hasher, newTestCodec(t, "auth-secret"), zerolog.Nop())
	require.Equal(t, 1, hasher.hashes, "dummy digest is prepared at construction")

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := auth.Login(ctx, domain.KindRenter, "ghost", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredential)
	}
	_, err := auth.Login(ctx, domain.KindRenter, "johnsmith", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)

	assert.Equal(t, 1, hasher.hashes, "logins never hash")
	require.Len(t, hasher.verifies, 3)
	assert.NotEmpty(t, hasher.verifies[0])
	assert.Equal(t, hasher.verifies[0], hasher.verifies[1])
}
