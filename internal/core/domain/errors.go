package domain

import "errors"

var (
	// ErrSessionNotFound is the explicit "absent" result from the session store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials covers bad email/password pairs rejected upstream.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registration hits a duplicate account.
	ErrUserExists = errors.New("user already exists")

	// ErrUpstreamUnauthorized means the backend answered 401 to a protected
	// call: the bearer token is dead and the session must be torn down.
	ErrUpstreamUnauthorized = errors.New("upstream rejected bearer token")
	// ErrForbidden maps upstream 403 responses.
	ErrForbidden = errors.New("access forbidden")
	// ErrNotFound maps upstream 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrPreferencesNotFound is returned when a user has never saved preferences.
	ErrPreferencesNotFound = errors.New("preferences not found")
)
