package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/photomarket/gateway/internal/api/metrics"
	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that persists session
// lifecycle events to the audit trail.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Record persists a single event. The timestamp is stamped here when the
// producer left it zero.
func (s *activityService) Record(ctx context.Context, event domain.ActivityEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	metrics.ActivityEventsTotal.WithLabelValues(string(event.Kind)).Inc()
	s.log.Debug().
		Str("user_id", event.UserID).
		Str("kind", string(event.Kind)).
		Msg("activity recorded")

	return nil
}
