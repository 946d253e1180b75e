package middleware

import (
	"context"
	"time"

	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

// stubSessionService backs the middleware tests with an in-memory session map.
type stubSessionService struct {
	sessions   map[string]*domain.Session
	teardowns  int
	resolveErr error
}

func newStubSessionService() *stubSessionService {
	return &stubSessionService{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionService) add(session *domain.Session) {
	s.sessions[session.ID] = session
}

func (s *stubSessionService) Login(_ context.Context, _ ports.LoginInput) (*ports.LoginResult, error) {
	panic("not used in middleware tests")
}

func (s *stubSessionService) Register(_ context.Context, _ ports.RegisterInput) error {
	panic("not used in middleware tests")
}

func (s *stubSessionService) Resolve(_ context.Context, sessionID string) (*domain.Session, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionService) Logout(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *stubSessionService) Teardown(_ context.Context, sessionID string) error {
	s.teardowns++
	delete(s.sessions, sessionID)
	return nil
}

type stubDispatcher struct {
	events []domain.ActivityEvent
}

func (d *stubDispatcher) Enqueue(event domain.ActivityEvent) {
	d.events = append(d.events, event)
}

func testSession(role domain.Role) *domain.Session {
	return domain.NewSession("backend-token", domain.User{ID: "u1", Email: "ana@photomarket.test"}, role, time.Hour)
}
