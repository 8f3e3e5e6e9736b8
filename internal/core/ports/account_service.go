package ports

import (
	"context"

	"github.com/datapulse/identity-api/internal/core/domain"
)

// TeammateRegistration carries the fields accepted at teammate sign-up.
type TeammateRegistration struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// TeammateService manages internal staff accounts.
type TeammateService interface {
	// Register creates a teammate. An empty role defaults to developer;
	// superuser is rejected here and only granted through bootstrap.
	Register(ctx context.Context, reg TeammateRegistration) (*domain.Teammate, error)
	GetByID(ctx context.Context, id string) (*domain.Teammate, error)
}

// ClientUserRegistration carries the fields accepted at client sign-up.
// Password is optional: teammate-managed creation leaves it empty and the
// account stays unauthenticatable until set-initial-password.
type ClientUserRegistration struct {
	Email              string
	FirstName          string
	LastName           string
	Phone              string
	Password           string
	Type               string
	EmailNotifications bool
}

// ClientUserProfileUpdate carries the mutable profile fields.
type ClientUserProfileUpdate struct {
	FirstName          string
	LastName           string
	Phone              string
	EmailNotifications bool
}

// ClientUserService manages external client accounts.
type ClientUserService interface {
	Register(ctx context.Context, reg ClientUserRegistration) (*domain.ClientUser, error)
	GetByID(ctx context.Context, id string) (*domain.ClientUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.ClientUser, error)
	ListActive(ctx context.Context) ([]domain.ClientUser, error)
	UpdateProfile(ctx context.Context, id string, upd ClientUserProfileUpdate) (*domain.ClientUser, error)
	// Deactivate is the only deletion this system knows: a status transition
	// to inactive, never row removal.
	Deactivate(ctx context.Context, id string) error
	// SetInitialPassword activates password auth for an account created
	// without one, and returns a fresh token pair for the claimed account.
	SetInitialPassword(ctx context.Context, email, password string) (*domain.TokenPair, *domain.ClientUser, error)
	// UpdatePassword replaces an existing secret; the current one is verified
	// whenever the account has a usable secret.
	UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error
}
