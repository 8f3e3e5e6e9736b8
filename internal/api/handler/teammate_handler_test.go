package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/datapulse/identity-api/internal/api/middleware"
	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

type stubTeammateService struct {
	registerFn func(ctx context.Context, reg ports.TeammateRegistration) (*domain.Teammate, error)
	getByIDFn  func(ctx context.Context, id string) (*domain.Teammate, error)
}

func (s *stubTeammateService) Register(ctx context.Context, reg ports.TeammateRegistration) (*domain.Teammate, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubTeammateService) GetByID(ctx context.Context, id string) (*domain.Teammate, error) {
	return s.getByIDFn(ctx, id)
}

func TestTeammateHandler_Register(t *testing.T) {
	stub := &stubTeammateService{
		registerFn: func(ctx context.Context, reg ports.TeammateRegistration) (*domain.Teammate, error) {
			if reg.Email != "ops@example.com" || reg.Role != "admin" {
				t.Fatalf("unexpected registration: %+v", reg)
			}
			return &domain.Teammate{ID: "t1", Email: reg.Email, Name: reg.Name, Role: reg.Role, Active: true}, nil
		},
	}
	h := NewTeammateHandler(stub)

	body := `{"email":"ops@example.com","name":"Ops Person","password":"secret1","role":"admin"}`
	c, rec := newTestContext(t, http.MethodPost, "/teammates/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTeammateHandler_Register_SuperuserRejected(t *testing.T) {
	stub := &stubTeammateService{
		registerFn: func(ctx context.Context, reg ports.TeammateRegistration) (*domain.Teammate, error) {
			t.Fatalf("service must not be called for a superuser role")
			return nil, nil
		},
	}
	h := NewTeammateHandler(stub)

	body := `{"email":"ops@example.com","name":"Ops Person","password":"secret1","role":"superuser"}`
	c, _ := newTestContext(t, http.MethodPost, "/teammates/register", body)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTeammateHandler_Me(t *testing.T) {
	h := NewTeammateHandler(&stubTeammateService{})

	c, rec := newTestContext(t, http.MethodGet, "/teammates/me", "")
	c.Set(middleware.PrincipalContextKey, &domain.Teammate{ID: "t1", Email: "ops@example.com", Role: domain.RoleDeveloper, Active: true})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTeammateHandler_Me_ClientToken(t *testing.T) {
	h := NewTeammateHandler(&stubTeammateService{})

	c, _ := newTestContext(t, http.MethodGet, "/teammates/me", "")
	c.Set(middleware.PrincipalContextKey, &domain.ClientUser{ID: "u1", Status: domain.StatusActive})

	if err := h.Me(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
