package ports

import (
	"context"

	"github.com/photomarket/gateway/internal/core/domain"
)

// LoginInput carries a validated login form.
type LoginInput struct {
	Email         string
	Password      string
	RequestedRole string
}

// LoginResult is returned once the session is durably stored. LandingPath is
// where the client should navigate next, chosen by the resolved role.
type LoginResult struct {
	Session     *domain.Session
	LandingPath string
}

// RegisterInput carries a validated registration form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// SessionService implements the session lifecycle: credential submission,
// role resolution, atomic persistence, and teardown.
type SessionService interface {
	// Login authenticates upstream, resolves the role, and persists the
	// session before returning. The session is fully written when this
	// returns — callers may immediately hand out the session cookie.
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Register forwards a sign-up to the backend.
	Register(ctx context.Context, in RegisterInput) error
	// Resolve loads a live session by ID, expiring stale ones.
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
	// Logout destroys the session. Idempotent: unknown IDs are a no-op.
	Logout(ctx context.Context, sessionID string) error
	// Teardown destroys the session after an upstream 401. Idempotent.
	Teardown(ctx context.Context, sessionID string) error
}
