package ports

import (
	"context"
	"time"

	"github.com/datapulse/identity-api/internal/core/domain"
)

// TeammateStore is the persistence contract for internal staff principals.
// Lookup misses are domain.ErrUserNotFound, never a fault.
type TeammateStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.Teammate, error)
	FindByID(ctx context.Context, id string) (*domain.Teammate, error)
	Create(ctx context.Context, teammate *domain.Teammate) (*domain.Teammate, error)
}

// ClientUserStore is the persistence contract for external client principals.
// Single-record updates are atomic; nothing here spans multiple records.
type ClientUserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.ClientUser, error)
	FindByID(ctx context.Context, id string) (*domain.ClientUser, error)
	ListByStatus(ctx context.Context, status string) ([]domain.ClientUser, error)
	Create(ctx context.Context, user *domain.ClientUser) (*domain.ClientUser, error)
	UpdateProfile(ctx context.Context, user *domain.ClientUser) error
	UpdateSecretHash(ctx context.Context, id, secretHash string) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
