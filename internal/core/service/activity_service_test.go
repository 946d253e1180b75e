package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/photomarket/gateway/internal/core/domain"
)

type stubActivityRepo struct {
	inserted  []domain.ActivityEvent
	insertErr error
}

func (r *stubActivityRepo) Insert(_ context.Context, event *domain.ActivityEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *event)
	return nil
}

func (r *stubActivityRepo) ListByUser(_ context.Context, _ string, _ int) ([]domain.ActivityEvent, error) {
	return r.inserted, nil
}

func TestActivityService_Record_StampsTimestamp(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	before := time.Now().UTC()
	err := svc.Record(context.Background(), domain.ActivityEvent{UserID: "u1", Kind: domain.ActivityLogin})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("inserted = %d, want 1", len(repo.inserted))
	}
	at := repo.inserted[0].At
	if at.Before(before) || at.After(time.Now().UTC()) {
		t.Fatalf("timestamp not stamped: %v", at)
	}
}

func TestActivityService_Record_KeepsExplicitTimestamp(t *testing.T) {
	repo := &stubActivityRepo{}
	svc := NewActivityService(repo, zerolog.Nop())

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := svc.Record(context.Background(), domain.ActivityEvent{UserID: "u1", Kind: domain.ActivityLogout, At: at})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if !repo.inserted[0].At.Equal(at) {
		t.Fatalf("timestamp overwritten: %v", repo.inserted[0].At)
	}
}

func TestActivityService_Record_InsertFailure(t *testing.T) {
	repo := &stubActivityRepo{insertErr: errors.New("mongo down")}
	svc := NewActivityService(repo, zerolog.Nop())

	if err := svc.Record(context.Background(), domain.ActivityEvent{UserID: "u1"}); err == nil {
		t.Fatalf("expected error when the repository fails")
	}
}
