package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin     = "admin"
	RoleSuperuser = "superuser"
	RoleDeveloper = "developer"
)

// ValidTeammateRole reports whether role is one of the known teammate roles.
func ValidTeammateRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSuperuser, RoleDeveloper:
		return true
	}
	return false
}

// Teammate models an internal staff principal.
type Teammate struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Active     bool      `json:"is_active"`
	SecretHash string    `json:"-"`
	JoinedAt   time.Time `json:"date_joined"`
}

func (t *Teammate) Subject() string { return t.ID }
func (t *Teammate) Kind() Kind      { return KindTeammate }
func (t *Teammate) IsActive() bool  { return t.Active }
func (t *Teammate) RoleTag() string { return t.Role }

// IsStaff reports whether the teammate holds an admin-capable role.
func (t *Teammate) IsStaff() bool {
	return t.Role == RoleAdmin || t.Role == RoleSuperuser
}

func (t *Teammate) VerifySecret(plaintext string) bool {
	if t.SecretHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(t.SecretHash), []byte(plaintext)) == nil
}
