package service

import (
	"context"
	"errors"

	"github.com/datapulse/identity-api/internal/core/domain"
	"github.com/datapulse/identity-api/internal/core/ports"
)

// Authenticator resolves a credential pair to exactly one principal across
// the two disjoint stores. Teammates are tried first: an email collision
// between the stores always resolves to the teammate when its secret
// verifies. Every failure collapses to domain.ErrInvalidCredentials so a
// caller cannot tell "no such account" from "wrong password".
type Authenticator struct {
	teammates ports.TeammateStore
	clients   ports.ClientUserStore
}

func NewAuthenticator(teammates ports.TeammateStore, clients ports.ClientUserStore) *Authenticator {
	return &Authenticator{teammates: teammates, clients: clients}
}

// Authenticate verifies (email, password) against the teammate store, then
// the client-user store. Empty input fails before any lookup.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (domain.Principal, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	email = domain.NormalizeEmail(email)

	teammate, err := a.teammates.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if teammate.Active && teammate.VerifySecret(password) {
			return teammate, nil
		}
		// A teammate that exists but does not verify is not terminal: the
		// same email may belong to a different client principal.
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	user, err := a.clients.FindByEmail(ctx, email)
	switch {
	case err == nil:
		// Only active client users may authenticate by password.
		if user.IsActive() && user.VerifySecret(password) {
			return user, nil
		}
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	return nil, domain.ErrInvalidCredentials
}
