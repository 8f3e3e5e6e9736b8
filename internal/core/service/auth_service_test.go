package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/datapulse/identity-api/internal/core/domain"
)

func newTestAuthService(teammates *stubTeammateStore, clients *stubClientStore, limiter *stubLimiter, audit *stubAudit) *AuthService {
	tokens := NewTokenService(teammates, clients, "test-secret", time.Minute, time.Hour, zerolog.Nop())
	auth := NewAuthenticator(teammates, clients)
	svc := &AuthService{
		authenticator: auth,
		tokens:        tokens,
		clients:       clients,
		log:           zerolog.Nop(),
	}
	// Assign through locals to keep typed-nil pointers out of the interfaces.
	if limiter != nil {
		svc.limiter = limiter
	}
	if audit != nil {
		svc.audit = audit
	}
	return svc
}

func TestAuthService_LoginUpdatesLastLogin(t *testing.T) {
	clients := newStubClientStore()
	clients.add(&domain.ClientUser{
		ID: "cu1", Email: "bob@x.com", Status: domain.StatusActive,
		Type: domain.ClientTypeClient, SecretHash: mustHash(t, "secret"),
	})
	svc := newTestAuthService(newStubTeammateStore(), clients, nil, nil)

	pair, principal, err := svc.Login(context.Background(), "bob@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
	if principal.Kind() != domain.KindClient {
		t.Fatalf("expected client principal, got %s", principal.Kind())
	}
	if clients.users["cu1"].LastLoginAt == nil {
		t.Fatalf("last_login not updated")
	}
}

func TestAuthService_TeammateLoginSkipsLastLogin(t *testing.T) {
	teammates := newStubTeammateStore()
	teammates.add(&domain.Teammate{
		ID: "tm1", Email: "ann@x.com", Role: domain.RoleAdmin, Active: true,
		SecretHash: mustHash(t, "secret"),
	})
	svc := newTestAuthService(teammates, newStubClientStore(), nil, nil)

	_, principal, err := svc.Login(context.Background(), "ann@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if principal.Kind() != domain.KindTeammate {
		t.Fatalf("expected teammate, got %s", principal.Kind())
	}
}

func TestAuthService_ThrottleDenies(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	svc := newTestAuthService(newStubTeammateStore(), newStubClientStore(), limiter, nil)

	if _, _, err := svc.Login(context.Background(), "bob@x.com", "secret"); err != domain.ErrTooManyLoginAttempts {
		t.Fatalf("expected ErrTooManyLoginAttempts, got %v", err)
	}
}

func TestAuthService_ThrottleBookkeeping(t *testing.T) {
	clients := newStubClientStore()
	clients.add(&domain.ClientUser{
		ID: "cu1", Email: "bob@x.com", Status: domain.StatusActive,
		Type: domain.ClientTypeClient, SecretHash: mustHash(t, "secret"),
	})
	limiter := &stubLimiter{allowed: true}
	svc := newTestAuthService(newStubTeammateStore(), clients, limiter, nil)

	if _, _, err := svc.Login(context.Background(), "bob@x.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", limiter.failures)
	}

	if _, _, err := svc.Login(context.Background(), "bob@x.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected throttle reset after success, got %d", limiter.resets)
	}
}

func TestAuthService_LoginEmitsAudit(t *testing.T) {
	clients := newStubClientStore()
	clients.add(&domain.ClientUser{
		ID: "cu1", Email: "bob@x.com", Status: domain.StatusActive,
		Type: domain.ClientTypeClient, SecretHash: mustHash(t, "secret"),
	})
	audit := &stubAudit{}
	svc := newTestAuthService(newStubTeammateStore(), clients, nil, audit)

	if _, _, err := svc.Login(context.Background(), "bob@x.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(audit.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(audit.events))
	}
	ev := audit.events[0]
	if ev.Action != domain.AuditLogin || !ev.Success || ev.Subject != "cu1" {
		t.Fatalf("unexpected audit event: %+v", ev)
	}
	if ev.OccurredAt.IsZero() {
		t.Fatalf("audit event missing timestamp")
	}
}

func TestAuthService_RefreshRoundTrip(t *testing.T) {
	clients := newStubClientStore()
	clients.add(&domain.ClientUser{
		ID: "cu1", Email: "bob@x.com", Status: domain.StatusActive,
		Type: domain.ClientTypeClient, SecretHash: mustHash(t, "secret"),
	})
	svc := newTestAuthService(newStubTeammateStore(), clients, nil, nil)

	pair, _, err := svc.Login(context.Background(), "bob@x.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	access, err := svc.Refresh(context.Background(), pair.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	principal, err := svc.ResolveAccess(context.Background(), access)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if principal.Subject() != "cu1" {
		t.Fatalf("unexpected subject %s", principal.Subject())
	}
}
