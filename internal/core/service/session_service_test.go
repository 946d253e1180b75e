package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

type stubAuthGateway struct {
	auth       *ports.UpstreamAuth
	loginErr   error
	loginCalls int
}

func (g *stubAuthGateway) Login(_ context.Context, _ ports.Credentials) (*ports.UpstreamAuth, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.auth, nil
}

func (g *stubAuthGateway) Register(_ context.Context, _ ports.Registration) error {
	return nil
}

type stubSessionRepo struct {
	sessions map[string]*domain.Session
	saveErr  error
	deletes  int
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Save(_ context.Context, session *domain.Session, _ time.Duration) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *stubSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	r.deletes++
	delete(r.sessions, id)
	return nil
}

func newTestService(auth *stubAuthGateway, repo *stubSessionRepo) *SessionService {
	return NewSessionService(auth, repo, time.Hour, zerolog.Nop())
}

func TestSessionService_Login_Success(t *testing.T) {
	auth := &stubAuthGateway{auth: &ports.UpstreamAuth{
		Token:     "t1",
		User:      domain.User{ID: "u1", Email: "ana@photomarket.test"},
		RoleHints: [3]string{"Buyer", "", ""},
	}}
	repo := newStubSessionRepo()
	svc := newTestService(auth, repo)

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "ana@photomarket.test", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Session.Role != domain.RoleBuyer {
		t.Fatalf("role = %q, want buyer", result.Session.Role)
	}
	if result.LandingPath != domain.PathAccount {
		t.Fatalf("landing = %q, want %q", result.LandingPath, domain.PathAccount)
	}

	// The session must already be fully stored when Login returns.
	stored, err := repo.Get(context.Background(), result.Session.ID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if stored.Token != "t1" || stored.User.ID != "u1" || stored.Role != domain.RoleBuyer {
		t.Fatalf("stored session incomplete: %+v", stored)
	}
}

func TestSessionService_Login_NestedRoleHint(t *testing.T) {
	auth := &stubAuthGateway{auth: &ports.UpstreamAuth{
		Token:     "t2",
		User:      domain.User{ID: "u2"},
		RoleHints: [3]string{"", "PhotographerPro", ""},
	}}
	repo := newStubSessionRepo()
	svc := newTestService(auth, repo)

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "x@y.z", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Session.Role != domain.RolePhotographer {
		t.Fatalf("role = %q, want photographer", result.Session.Role)
	}
	if result.LandingPath != domain.PathStudio {
		t.Fatalf("landing = %q, want %q", result.LandingPath, domain.PathStudio)
	}
}

func TestSessionService_Login_TopLevelHintWins(t *testing.T) {
	auth := &stubAuthGateway{auth: &ports.UpstreamAuth{
		Token:     "t3",
		User:      domain.User{ID: "u3"},
		RoleHints: [3]string{"Admin", "buyer", "photographer"},
	}}
	repo := newStubSessionRepo()
	svc := newTestService(auth, repo)

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "x@y.z", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Session.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want admin", result.Session.Role)
	}
}

func TestSessionService_Login_MissingRoleDefaultsToBuyer(t *testing.T) {
	auth := &stubAuthGateway{auth: &ports.UpstreamAuth{
		Token: "t4",
		User:  domain.User{ID: "u4"},
	}}
	repo := newStubSessionRepo()
	svc := newTestService(auth, repo)

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "x@y.z", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Session.Role != domain.RoleBuyer {
		t.Fatalf("role = %q, want buyer default", result.Session.Role)
	}
}

func TestSessionService_Login_UnrecognizedRoleWarns(t *testing.T) {
	auth := &stubAuthGateway{auth: &ports.UpstreamAuth{
		Token:     "t6",
		User:      domain.User{ID: "u6"},
		RoleHints: [3]string{"superuser", "", ""},
	}}
	repo := newStubSessionRepo()

	var logs bytes.Buffer
	svc := NewSessionService(auth, repo, time.Hour, zerolog.New(&logs))

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "x@y.z", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Session.Role != domain.RoleUnrecognized {
		t.Fatalf("role = %q, want unrecognized", result.Session.Role)
	}
	if result.LandingPath != domain.PathRoot {
		t.Fatalf("landing = %q, want %q", result.LandingPath, domain.PathRoot)
	}
	if !strings.Contains(logs.String(), "unrecognized role") {
		t.Fatalf("expected a warning about the unrecognized role, logs: %s", logs.String())
	}
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	auth := &stubAuthGateway{loginErr: domain.ErrInvalidCredentials}
	repo := newStubSessionRepo()
	svc := newTestService(auth, repo)

	_, err := svc.Login(context.Background(), ports.LoginInput{Email: "x@y.z", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("no session may be stored on a failed login")
	}
}

func TestSessionService_Login_SaveFailure(t *testing.T) {
	auth := &stubAuthGateway{auth: &ports.UpstreamAuth{Token: "t5", User: domain.User{ID: "u5"}}}
	repo := newStubSessionRepo()
	repo.saveErr = errors.New("redis down")
	svc := newTestService(auth, repo)

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "x@y.z", Password: "pw"}); err == nil {
		t.Fatalf("expected error when the store is unavailable")
	}
}

func TestSessionService_Resolve_ExpiredSessionIsDestroyed(t *testing.T) {
	repo := newStubSessionRepo()
	svc := newTestService(&stubAuthGateway{}, repo)

	stale := domain.NewSession("tok", domain.User{ID: "u1"}, domain.RoleBuyer, time.Hour)
	stale.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	repo.sessions[stale.ID] = stale

	if _, err := svc.Resolve(context.Background(), stale.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, ok := repo.sessions[stale.ID]; ok {
		t.Fatalf("expired session must be deleted on read")
	}
}

func TestSessionService_Resolve_EmptyID(t *testing.T) {
	svc := newTestService(&stubAuthGateway{}, newStubSessionRepo())
	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_Logout_Idempotent(t *testing.T) {
	repo := newStubSessionRepo()
	svc := newTestService(&stubAuthGateway{}, repo)

	session := domain.NewSession("tok", domain.User{ID: "u1"}, domain.RoleBuyer, time.Hour)
	repo.sessions[session.ID] = session

	for i := 0; i < 3; i++ {
		if err := svc.Logout(context.Background(), session.ID); err != nil {
			t.Fatalf("logout %d returned error: %v", i, err)
		}
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout without a session must be a no-op, got %v", err)
	}
	if _, ok := repo.sessions[session.ID]; ok {
		t.Fatalf("session survived logout")
	}
}

func TestSessionService_Teardown(t *testing.T) {
	repo := newStubSessionRepo()
	svc := newTestService(&stubAuthGateway{}, repo)

	session := domain.NewSession("tok", domain.User{ID: "u1"}, domain.RoleAdmin, time.Hour)
	repo.sessions[session.ID] = session

	if err := svc.Teardown(context.Background(), session.ID); err != nil {
		t.Fatalf("teardown returned error: %v", err)
	}
	if _, ok := repo.sessions[session.ID]; ok {
		t.Fatalf("session survived teardown")
	}
	// Tearing down again, or with no session at all, must not fail.
	if err := svc.Teardown(context.Background(), session.ID); err != nil {
		t.Fatalf("repeat teardown returned error: %v", err)
	}
	if err := svc.Teardown(context.Background(), ""); err != nil {
		t.Fatalf("empty teardown returned error: %v", err)
	}
}
