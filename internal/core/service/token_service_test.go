package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/datapulse/identity-api/internal/core/domain"
)

func newTestTokenService(teammates *stubTeammateStore, clients *stubClientStore) *TokenService {
	return NewTokenService(teammates, clients, "test-secret", time.Minute, time.Hour, zerolog.Nop())
}

func TestTokenService_RoundTrip(t *testing.T) {
	teammates := newStubTeammateStore()
	teammates.add(&domain.Teammate{ID: "tm1", Email: "a@x.com", Role: domain.RoleAdmin, Active: true})
	clients := newStubClientStore()
	clients.add(&domain.ClientUser{ID: "cu1", Email: "b@x.com", Status: domain.StatusActive, Type: domain.ClientTypeClient})
	svc := newTestTokenService(teammates, clients)

	for _, p := range []domain.Principal{
		&domain.Teammate{ID: "tm1", Email: "a@x.com", Role: domain.RoleAdmin, Active: true},
		&domain.ClientUser{ID: "cu1", Email: "b@x.com", Status: domain.StatusActive, Type: domain.ClientTypeClient},
	} {
		pair, err := svc.IssuePair(p)
		if err != nil {
			t.Fatalf("issue pair: %v", err)
		}
		resolved, err := svc.Resolve(context.Background(), pair.Access, domain.TokenAccess)
		if err != nil {
			t.Fatalf("resolve access: %v", err)
		}
		if resolved.Subject() != p.Subject() || resolved.Kind() != p.Kind() {
			t.Fatalf("round trip mismatch: got %s/%s want %s/%s",
				resolved.Kind(), resolved.Subject(), p.Kind(), p.Subject())
		}
	}
}

func TestTokenService_ClaimsShape(t *testing.T) {
	svc := newTestTokenService(newStubTeammateStore(), newStubClientStore())
	pair, err := svc.IssuePair(&domain.Teammate{ID: "tm1", Role: domain.RoleSuperuser, Active: true})
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(pair.Access, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}); err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims["sub"] != "tm1" || claims["kind"] != "teammate" || claims["role"] != domain.RoleSuperuser {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if claims["token_type"] != "access" {
		t.Fatalf("expected access token_type, got %v", claims["token_type"])
	}
	if claims["is_active"] != true {
		t.Fatalf("expected is_active snapshot, got %v", claims["is_active"])
	}
}

func TestTokenService_DeactivationBeatsSnapshot(t *testing.T) {
	teammates := newStubTeammateStore()
	teammates.add(&domain.Teammate{ID: "tm1", Email: "a@x.com", Role: domain.RoleAdmin, Active: true})
	clients := newStubClientStore()
	clients.add(&domain.ClientUser{ID: "cu1", Email: "b@x.com", Status: domain.StatusActive, Type: domain.ClientTypeClient})
	svc := newTestTokenService(teammates, clients)

	tmPair, _ := svc.IssuePair(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})
	cuPair, _ := svc.IssuePair(&domain.ClientUser{ID: "cu1", Status: domain.StatusActive, Type: domain.ClientTypeClient})

	// Flip both live records to inactive after issuance.
	teammates.teammates["tm1"].Active = false
	clients.users["cu1"].Status = domain.StatusSuspended

	if _, err := svc.Resolve(context.Background(), tmPair.Access, domain.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for deactivated teammate, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), cuPair.Access, domain.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for suspended client, got %v", err)
	}
}

func TestTokenService_InactiveTeammateIsTerminal(t *testing.T) {
	// Same id present in both stores: once the teammate record matches, an
	// inactive teammate must not fall through to the client store.
	teammates := newStubTeammateStore()
	teammates.add(&domain.Teammate{ID: "shared", Email: "a@x.com", Role: domain.RoleAdmin, Active: false})
	clients := newStubClientStore()
	clients.add(&domain.ClientUser{ID: "shared", Email: "b@x.com", Status: domain.StatusActive, Type: domain.ClientTypeClient})
	svc := newTestTokenService(teammates, clients)

	pair, _ := svc.IssuePair(&domain.Teammate{ID: "shared", Active: true, Role: domain.RoleAdmin})
	if _, err := svc.Resolve(context.Background(), pair.Access, domain.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_UnresolvableSubject(t *testing.T) {
	svc := newTestTokenService(newStubTeammateStore(), newStubClientStore())
	pair, _ := svc.IssuePair(&domain.Teammate{ID: "ghost", Active: true, Role: domain.RoleDeveloper})

	if _, err := svc.Resolve(context.Background(), pair.Access, domain.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_MalformedAndBadSignature(t *testing.T) {
	svc := newTestTokenService(newStubTeammateStore(), newStubClientStore())

	if _, err := svc.Resolve(context.Background(), "not-a-token", domain.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tm1", "token_type": "access", "exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := other.SignedString([]byte("wrong-secret"))
	if _, err := svc.Resolve(context.Background(), signed, domain.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	teammates := newStubTeammateStore()
	teammates.add(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})
	svc := NewTokenService(teammates, newStubClientStore(), "test-secret", -time.Minute, -time.Minute, zerolog.Nop())

	pair, err := svc.IssuePair(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	if _, err := svc.Resolve(context.Background(), pair.Access, domain.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired access token, got %v", err)
	}
	if _, err := svc.RefreshAccess(context.Background(), pair.Refresh); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired refresh token, got %v", err)
	}
}

func TestTokenService_TokenTypeEnforced(t *testing.T) {
	teammates := newStubTeammateStore()
	teammates.add(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})
	svc := newTestTokenService(teammates, newStubClientStore())

	pair, _ := svc.IssuePair(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})

	if _, err := svc.Resolve(context.Background(), pair.Refresh, domain.TokenAccess); err != domain.ErrInvalidToken {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := svc.RefreshAccess(context.Background(), pair.Access); err != domain.ErrInvalidToken {
		t.Fatalf("access token accepted as refresh token: %v", err)
	}
}

func TestTokenService_RefreshIssuesNewAccess(t *testing.T) {
	teammates := newStubTeammateStore()
	teammates.add(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})
	svc := newTestTokenService(teammates, newStubClientStore())

	pair, _ := svc.IssuePair(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})
	access, err := svc.RefreshAccess(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	resolved, err := svc.Resolve(context.Background(), access, domain.TokenAccess)
	if err != nil {
		t.Fatalf("resolve refreshed access: %v", err)
	}
	if resolved.Subject() != "tm1" {
		t.Fatalf("unexpected subject %s", resolved.Subject())
	}
}

func TestTokenService_RefreshAfterDeactivationFails(t *testing.T) {
	teammates := newStubTeammateStore()
	teammates.add(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})
	svc := newTestTokenService(teammates, newStubClientStore())

	pair, _ := svc.IssuePair(&domain.Teammate{ID: "tm1", Active: true, Role: domain.RoleAdmin})
	teammates.teammates["tm1"].Active = false

	if _, err := svc.RefreshAccess(context.Background(), pair.Refresh); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
