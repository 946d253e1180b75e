package ports

import (
	"context"

	"github.com/photomarket/gateway/internal/core/domain"
)

// Credentials is the login payload forwarded to the backend. Role is only a
// hint echoed from the login form; the authoritative role comes back in the
// response.
type Credentials struct {
	Email    string
	Password string
	Role     string
}

// Registration is the sign-up payload forwarded to the backend. Password
// confirmation is checked before this struct is ever built.
type Registration struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UpstreamAuth is the decoded result of a successful backend login.
// RoleHints carries the raw role strings found in the response, in contract
// order: top-level role, user.role, data.role. Empty slots stay empty.
type UpstreamAuth struct {
	Token     string
	User      domain.User
	RoleHints [3]string
}

// AuthGateway talks to the backend authentication endpoints.
type AuthGateway interface {
	// Login exchanges credentials for a bearer token and user record.
	// Non-2xx responses surface as typed errors or domain sentinels,
	// never as a panic.
	Login(ctx context.Context, creds Credentials) (*UpstreamAuth, error)
	// Register creates an account upstream.
	Register(ctx context.Context, reg Registration) error
}
