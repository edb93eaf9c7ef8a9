package domain

import (
	"errors"
	"fmt"
)

// Authentication and authorization.
var (
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrInvalidSignature  = fmt.Errorf("%w: token signature invalid", ErrInvalidCredential)
	ErrMalformedToken    = fmt.Errorf("%w: token malformed", ErrInvalidCredential)
	ErrExpiredToken      = fmt.Errorf("%w: token expired", ErrInvalidCredential)

	ErrUnknownPrincipal = errors.New("unknown principal")
	ErrInactiveAccount  = errors.New("inactive account")

	// ErrUnauthenticated and ErrForbidden are the only two outcomes the access
	// guard exposes; every other auth error is folded into one of them.
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrForbidden       = errors.New("access forbidden")
)

// Persistence and validation.
var (
	ErrPrincipalNotFound     = errors.New("principal not found")
	ErrPrincipalExists       = errors.New("principal already exists")
	ErrInvalidInput          = errors.New("invalid input")
	ErrListingNotFound       = errors.New("listing not found")
	ErrReviewNotFound        = errors.New("review not found")
	ErrMovingRequestNotFound = errors.New("moving request not found")
	ErrAgentStatsNotFound    = errors.New("agent stats not found")
	ErrAgentStatsExists      = errors.New("agent stats already exist")
	ErrInvalidTransition     = errors.New("invalid status transition")
)
