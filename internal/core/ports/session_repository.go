package ports

import (
	"context"
	"time"

	"github.com/photomarket/gateway/internal/core/domain"
)

// SessionRepository is the single code path allowed to touch session storage.
// Implementations must persist the whole session as one unit: a reader either
// sees every field (token, user, role) or domain.ErrSessionNotFound — no
// partial state.
type SessionRepository interface {
	// Save persists the session atomically with the given lifetime.
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	// Get returns the session or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Delete removes the session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, id string) error
}
