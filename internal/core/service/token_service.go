package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenService mints and resolves the HS256 token pairs that carry principal
// identity between requests. Resolution never trusts the snapshot claims:
// the subject is re-resolved against the live stores on every call, so a
// principal deactivated after issuance loses access before token expiry.
type TokenService struct {
	teammates  ports.TeammateStore
	clients    ports.ClientUserStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewTokenService(teammates ports.TeammateStore, clients ports.ClientUserStore, secret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		teammates:  teammates,
		clients:    clients,
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// IssuePair builds a signed access/refresh pair for a resolved principal.
// The role and activity claims are snapshots at issue time; the resolver
// re-derives them from the store and never trusts these copies.
func (s *TokenService) IssuePair(p domain.Principal) (*domain.TokenPair, error) {
	access, err := s.sign(p, domain.TokenAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(p, domain.TokenRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *TokenService) sign(p domain.Principal, typ domain.TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        p.Subject(),
		"kind":       string(p.Kind()),
		"role":       p.RoleTag(),
		"is_active":  p.IsActive(),
		"token_type": string(typ),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Resolve validates a raw token of the expected type and re-derives the live
// principal behind its subject. Signature and expiry are checked before any
// store I/O. Expired, malformed and bad-signature tokens are distinguished
// only in logs; callers always see domain.ErrInvalidToken.
func (s *TokenService) Resolve(ctx context.Context, raw string, typ domain.TokenType) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.log.Debug().Str("token_type", string(typ)).Msg("token expired")
		} else {
			s.log.Debug().Err(err).Str("token_type", string(typ)).Msg("token rejected")
		}
		return nil, domain.ErrInvalidToken
	}

	if tokenType, _ := claims["token_type"].(string); tokenType != string(typ) {
		s.log.Debug().Str("got", tokenType).Str("want", string(typ)).Msg("token type mismatch")
		return nil, domain.ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		s.log.Debug().Msg("token carries no subject")
		return nil, domain.ErrInvalidToken
	}

	return s.resolveSubject(ctx, subject)
}

// resolveSubject tries the teammate store first, then the client-user store.
// A subject that matches a record in either store is terminal there: a
// matched-but-inactive teammate never falls through to the client store.
func (s *TokenService) resolveSubject(ctx context.Context, subject string) (domain.Principal, error) {
	teammate, err := s.teammates.FindByID(ctx, subject)
	switch {
	case err == nil:
		if !teammate.Active {
			s.log.Debug().Str("subject", subject).Msg("teammate deactivated since issuance")
			return nil, domain.ErrInvalidToken
		}
		return teammate, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	user, err := s.clients.FindByID(ctx, subject)
	switch {
	case err == nil:
		if !user.IsActive() {
			s.log.Debug().Str("subject", subject).Str("status", user.Status).Msg("client user not active")
			return nil, domain.ErrInvalidToken
		}
		return user, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	s.log.Debug().Str("subject", subject).Msg("token subject resolves to no principal")
	return nil, domain.ErrInvalidToken
}

// RefreshAccess exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated and no credential is re-verified; the
// liveness re-check in Resolve is what stops deactivated principals.
func (s *TokenService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	principal, err := s.Resolve(ctx, refreshToken, domain.TokenRefresh)
	if err != nil {
		return "", err
	}
	return s.sign(principal, domain.TokenAccess, s.accessTTL)
}
