package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

const (
	ClientTypeClient  = "client"
	ClientTypePartner = "partner"
)

// ValidClientType reports whether t is one of the known client type tags.
func ValidClientType(t string) bool {
	return t == ClientTypeClient || t == ClientTypePartner
}

// ClientUser models an external customer principal. It may exist without a
// usable secret: teammate-created accounts stay password-less until the user
// claims them through the set-initial-password flow.
type ClientUser struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Phone              string     `json:"phone,omitempty"`
	Status             string     `json:"status"`
	Type               string     `json:"type"`
	SecretHash         string     `json:"-"`
	EmailNotifications bool       `json:"email_notifications"`
	JoinedAt           time.Time  `json:"date_joined"`
	LastLoginAt        *time.Time `json:"last_login,omitempty"`
}

func (u *ClientUser) Subject() string { return u.ID }
func (u *ClientUser) Kind() Kind      { return KindClient }
func (u *ClientUser) IsActive() bool  { return u.Status == StatusActive }
func (u *ClientUser) RoleTag() string { return u.Type }

// FullName joins the name parts, tolerating either being empty.
func (u *ClientUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasUsableSecret reports whether password authentication is possible at all.
func (u *ClientUser) HasUsableSecret() bool {
	return u.SecretHash != ""
}

func (u *ClientUser) VerifySecret(plaintext string) bool {
	if u.SecretHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.SecretHash), []byte(plaintext)) == nil
}
