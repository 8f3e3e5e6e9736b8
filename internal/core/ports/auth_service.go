package ports

import (
	"context"

	"github.com/datapulse/identity-api/internal/core/domain"
)

// AuthService is the unified authentication surface over both principal
// stores: credential login, token refresh, and access-token resolution.
type AuthService interface {
	// Login resolves a credential pair to exactly one principal and mints a
	// token pair for it. Every failure is domain.ErrInvalidCredentials except
	// a tripped throttle (domain.ErrTooManyLoginAttempts).
	Login(ctx context.Context, email, password string) (*domain.TokenPair, domain.Principal, error)
	// Refresh exchanges a valid refresh token for a new access token. The
	// refresh token is not rotated.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// ResolveAccess validates an access token and re-derives the live
	// principal it names.
	ResolveAccess(ctx context.Context, accessToken string) (domain.Principal, error)
}

// TokenIssuer mints a signed access/refresh pair for an already-resolved
// principal. Used by flows that grant tokens without a credential check
// (set-initial-password).
type TokenIssuer interface {
	IssuePair(principal domain.Principal) (*domain.TokenPair, error)
}

// LoginRateLimiter throttles credential guessing per identifier. Allow is
// consulted before any store lookup, RecordFailure after a rejected attempt,
// Reset after a successful login.
type LoginRateLimiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
	RecordFailure(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}
