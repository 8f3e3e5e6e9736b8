package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

// TeammateService manages internal staff accounts.
type TeammateService struct {
	store ports.TeammateStore
}

func NewTeammateService(store ports.TeammateStore) *TeammateService {
	return &TeammateService{store: store}
}

// Register creates a teammate with role developer unless another non-superuser
// role is requested. Superuser teammates are only created through bootstrap.
func (s *TeammateService) Register(ctx context.Context, reg ports.TeammateRegistration) (*domain.Teammate, error) {
	if reg.Email == "" || reg.Name == "" || reg.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := reg.Role
	if role == "" {
		role = domain.RoleDeveloper
	}
	if role == domain.RoleSuperuser || !domain.ValidTeammateRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	teammate := &domain.Teammate{
		Email:      domain.NormalizeEmail(reg.Email),
		Name:       reg.Name,
		Role:       role,
		Active:     true,
		SecretHash: string(hash),
		JoinedAt:   time.Now().UTC(),
	}
	return s.store.Create(ctx, teammate)
}

func (s *TeammateService) GetByID(ctx context.Context, id string) (*domain.Teammate, error) {
	return s.store.FindByID(ctx, id)
}
