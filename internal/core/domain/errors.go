package domain

import "errors"

var (
	// ErrInvalidCredentials covers every login failure: missing input, unknown
	// identifier, wrong secret, inactive account. One error for all of them so
	// callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every token resolution failure: bad signature,
	// expired, malformed, unresolvable subject, resolved-but-inactive
	// principal. The distinctions live in logs, not in responses.
	ErrInvalidToken = errors.New("invalid token")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrPasswordAlreadySet = errors.New("password already set")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrForbidden          = errors.New("access forbidden")

	// ErrTooManyLoginAttempts is returned when the login throttle trips.
	ErrTooManyLoginAttempts = errors.New("too many login attempts")
)
