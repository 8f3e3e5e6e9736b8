package domain

import "strings"

// Kind discriminates the two principal populations behind the single
// authentication surface.
type Kind string

const (
	KindTeammate Kind = "teammate"
	KindClient   Kind = "client"
)

// Principal is an authenticated actor: either an internal Teammate or an
// external ClientUser. The authenticator and token resolver operate only
// through this abstraction, never on the concrete store types.
type Principal interface {
	// Subject returns the opaque identifier embedded in tokens.
	Subject() string
	// Kind reports which store the principal came from.
	Kind() Kind
	// IsActive reports whether the principal may authenticate right now.
	IsActive() bool
	// RoleTag returns the teammate role or the client user type tag.
	RoleTag() string
	// VerifySecret checks a plaintext secret against the stored hash.
	// A principal without a usable secret never verifies.
	VerifySecret(plaintext string) bool
}

// NormalizeEmail lowers and trims an identifier before any store lookup so
// both stores see the same canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
