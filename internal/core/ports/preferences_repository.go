package ports

import (
	"context"

	"github.com/photomarket/gateway/internal/core/domain"
)

// PreferencesRepository persists per-user UI preferences. Preferences live
// outside the session store on purpose: session teardown must not wipe them.
type PreferencesRepository interface {
	// Get returns the user's preferences or domain.ErrPreferencesNotFound.
	Get(ctx context.Context, userID string) (*domain.Preferences, error)
	// Upsert creates or replaces the user's preferences.
	Upsert(ctx context.Context, prefs *domain.Preferences) error
}
