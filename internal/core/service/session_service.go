package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/photomarket/gateway/internal/api/metrics"
	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

// SessionService implements the session lifecycle. It is the only component
// that writes sessions: login resolves the role and persists the full session
// before returning, so the caller can hand out the cookie knowing the guard
// on the landing page will find a complete session.
type SessionService struct {
	auth     ports.AuthGateway
	sessions ports.SessionRepository
	ttl      time.Duration
	log      zerolog.Logger
}

func NewSessionService(auth ports.AuthGateway, sessions ports.SessionRepository, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{auth: auth, sessions: sessions, ttl: ttl, log: log}
}

func (s *SessionService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	auth, err := s.auth.Login(ctx, ports.Credentials{
		Email:    in.Email,
		Password: in.Password,
		Role:     in.RequestedRole,
	})
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidCredentials) {
			result = "invalid_credentials"
		}
		metrics.LoginsTotal.WithLabelValues("none", result).Inc()
		return nil, err
	}

	role := domain.ResolveRoleHints(auth.RoleHints[:]...)
	if !role.Known() {
		// The login still succeeds; the session just lands on the public
		// root and fails every role guard until the backend is fixed.
		s.log.Warn().
			Str("user_id", auth.User.ID).
			Strs("role_hints", auth.RoleHints[:]).
			Msg("login resolved to unrecognized role")
	}
	session := domain.NewSession(auth.Token, auth.User, role, s.ttl)

	// The session must be durably written before the cookie leaves the
	// building, or the guard on the landing page bounces a valid login.
	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues(string(role), "success").Inc()
	s.log.Info().
		Str("user_id", session.User.ID).
		Str("role", string(role)).
		Msg("login succeeded")

	return &ports.LoginResult{Session: session, LandingPath: role.LandingPath()}, nil
}

func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.auth.Register(ctx, ports.Registration{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
}

// Resolve loads a session by ID. Expired sessions are destroyed on read and
// reported as absent.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, sessionID)
		metrics.SessionTeardownsTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Logout destroys the session. Logging out while logged out is a no-op.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.SessionTeardownsTotal.WithLabelValues("logout").Inc()
	return nil
}

// Teardown destroys the session after the backend rejected its token.
func (s *SessionService) Teardown(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("teardown: %w", err)
	}
	metrics.SessionTeardownsTotal.WithLabelValues("upstream_401").Inc()
	s.log.Warn().Str("session_id", sessionID).Msg("session torn down after upstream 401")
	return nil
}
