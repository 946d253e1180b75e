package ports

import (
	"context"

	"github.com/photomarket/gateway/internal/core/domain"
)

// ActivityService persists a single session lifecycle event.
type ActivityService interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
}

// ActivityRepository is the storage side of the session audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
	// ListByUser returns the most recent events for a user, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.ActivityEvent, error)
}
