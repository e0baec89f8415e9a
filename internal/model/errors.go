package model

import "errors"

// ErrNotFound is returned by stores when no row matches. Services
// translate it to the caller-facing taxonomy below.
var ErrNotFound = errors.New("not found")

// Caller-facing domain failures. They propagate unchanged to the
// transport layer; infrastructure errors are wrapped and opaque.
var (
	// ErrAuthenticationFailed covers both unknown username and wrong
	// password so callers cannot enumerate accounts.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSessionInvalid covers tokens that fail issuer validation, have
	// no matching session, or belong to a deactivated session.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrUserBlocked means the session is otherwise valid but the
	// owning account is blocked.
	ErrUserBlocked = errors.New("user blocked")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)
