package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

// ClientUserService manages external client accounts: self-registration,
// teammate-managed creation, profile updates, and the password lifecycle.
type ClientUserService struct {
	store  ports.ClientUserStore
	issuer ports.TokenIssuer
	audit  ports.AuditRecorder
}

func NewClientUserService(store ports.ClientUserStore, issuer ports.TokenIssuer, audit ports.AuditRecorder) *ClientUserService {
	return &ClientUserService{store: store, issuer: issuer, audit: audit}
}

// Register creates a client user. Password may be empty: teammate-managed
// creation leaves the account unauthenticatable until SetInitialPassword.
func (s *ClientUserService) Register(ctx context.Context, reg ports.ClientUserRegistration) (*domain.ClientUser, error) {
	if reg.Email == "" || reg.FirstName == "" || reg.LastName == "" {
		return nil, domain.ErrInvalidCredentials
	}
	typ := reg.Type
	if typ == "" {
		typ = domain.ClientTypeClient
	}
	if !domain.ValidClientType(typ) {
		return nil, domain.ErrInvalidCredentials
	}

	var secretHash string
	if reg.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		secretHash = string(hash)
	}

	user := &domain.ClientUser{
		ID:                 uuid.NewString(),
		Email:              domain.NormalizeEmail(reg.Email),
		FirstName:          reg.FirstName,
		LastName:           reg.LastName,
		Phone:              reg.Phone,
		Status:             domain.StatusActive,
		Type:               typ,
		SecretHash:         secretHash,
		EmailNotifications: reg.EmailNotifications,
		JoinedAt:           time.Now().UTC(),
	}
	return s.store.Create(ctx, user)
}

func (s *ClientUserService) GetByID(ctx context.Context, id string) (*domain.ClientUser, error) {
	return s.store.FindByID(ctx, id)
}

func (s *ClientUserService) GetByEmail(ctx context.Context, email string) (*domain.ClientUser, error) {
	return s.store.FindByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *ClientUserService) ListActive(ctx context.Context) ([]domain.ClientUser, error) {
	return s.store.ListByStatus(ctx, domain.StatusActive)
}

func (s *ClientUserService) UpdateProfile(ctx context.Context, id string, upd ports.ClientUserProfileUpdate) (*domain.ClientUser, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FirstName = upd.FirstName
	user.LastName = upd.LastName
	user.Phone = upd.Phone
	user.EmailNotifications = upd.EmailNotifications
	if err := s.store.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Deactivate flips the account to inactive. Outstanding tokens stop working
// at the next resolution because the resolver re-checks liveness.
func (s *ClientUserService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	return s.store.UpdateStatus(ctx, id, domain.StatusInactive)
}

// SetInitialPassword claims a teammate-created account. It only applies to
// active accounts that have never had a usable secret; anything else must go
// through UpdatePassword. On success a fresh token pair is returned so the
// user is logged in immediately.
func (s *ClientUserService) SetInitialPassword(ctx context.Context, email, password string) (*domain.TokenPair, *domain.ClientUser, error) {
	user, err := s.store.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive() {
		return nil, nil, domain.ErrUserNotFound
	}
	if user.HasUsableSecret() {
		return nil, nil, domain.ErrPasswordAlreadySet
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.UpdateSecretHash(ctx, user.ID, string(hash)); err != nil {
		return nil, nil, err
	}
	user.SecretHash = string(hash)

	pair, err := s.issuer.IssuePair(user)
	if err != nil {
		return nil, nil, err
	}
	s.record(domain.AuditEvent{Subject: user.ID, Kind: string(domain.KindClient), Action: domain.AuditPasswordSet, Success: true})
	return pair, user, nil
}

// UpdatePassword replaces the secret of an account that already has one set.
// The current secret is verified whenever the account has a usable secret.
func (s *ClientUserService) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.HasUsableSecret() && !user.VerifySecret(currentPassword) {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.store.UpdateSecretHash(ctx, id, string(hash)); err != nil {
		return err
	}
	s.record(domain.AuditEvent{Subject: id, Kind: string(domain.KindClient), Action: domain.AuditPasswordUpdate, Success: true})
	return nil
}

func (s *ClientUserService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	s.audit.Record(event)
}
