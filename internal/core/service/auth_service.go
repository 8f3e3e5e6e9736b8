package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

// AuthService glues the credential authenticator, the token service and the
// login throttle into the surface the HTTP layer consumes. It is stateless
// per request; every operation is a pure function of its input plus the
// backing stores.
type AuthService struct {
	authenticator *Authenticator
	tokens        *TokenService
	clients       ports.ClientUserStore
	limiter       ports.LoginRateLimiter
	audit         ports.AuditRecorder
	log           zerolog.Logger
}

func NewAuthService(authenticator *Authenticator, tokens *TokenService, clients ports.ClientUserStore, limiter ports.LoginRateLimiter, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
		clients:       clients,
		limiter:       limiter,
		audit:         audit,
		log:           log,
	}
}

// Login authenticates a credential pair and mints a token pair. The client
// user's last_login is written before issuance; concurrent logins race on it
// and last write wins, which is fine because nothing depends on ordering.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, domain.Principal, error) {
	identifier := domain.NormalizeEmail(email)

	if s.limiter != nil && identifier != "" {
		allowed, err := s.limiter.Allow(ctx, identifier)
		if err != nil {
			// Throttle storage being down must not lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle unavailable, failing open")
		} else if !allowed {
			s.record(domain.AuditEvent{Subject: identifier, Action: domain.AuditLoginFailed, Detail: "throttled"})
			return nil, nil, domain.ErrTooManyLoginAttempts
		}
	}

	principal, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) && s.limiter != nil && identifier != "" {
			if lerr := s.limiter.RecordFailure(ctx, identifier); lerr != nil {
				s.log.Warn().Err(lerr).Msg("recording login failure")
			}
		}
		s.record(domain.AuditEvent{Subject: identifier, Action: domain.AuditLoginFailed})
		return nil, nil, err
	}

	if user, ok := principal.(*domain.ClientUser); ok {
		now := time.Now().UTC()
		if err := s.clients.UpdateLastLogin(ctx, user.ID, now); err != nil {
			// Login still succeeds; last_login is advisory.
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("updating last_login")
		} else {
			user.LastLoginAt = &now
		}
	}

	pair, err := s.tokens.IssuePair(principal)
	if err != nil {
		return nil, nil, err
	}

	if s.limiter != nil && identifier != "" {
		if err := s.limiter.Reset(ctx, identifier); err != nil {
			s.log.Warn().Err(err).Msg("resetting login throttle")
		}
	}

	s.record(domain.AuditEvent{
		Subject: principal.Subject(),
		Kind:    string(principal.Kind()),
		Action:  domain.AuditLogin,
		Success: true,
	})
	return pair, principal, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	access, err := s.tokens.RefreshAccess(ctx, refreshToken)
	if err != nil {
		s.record(domain.AuditEvent{Action: domain.AuditRefresh})
		return "", err
	}
	s.record(domain.AuditEvent{Action: domain.AuditRefresh, Success: true})
	return access, nil
}

// ResolveAccess validates an access token and re-derives its live principal.
func (s *AuthService) ResolveAccess(ctx context.Context, accessToken string) (domain.Principal, error) {
	return s.tokens.Resolve(ctx, accessToken, domain.TokenAccess)
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	s.audit.Record(event)
}
