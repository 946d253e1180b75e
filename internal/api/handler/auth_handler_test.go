package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/api/middleware"
	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

type stubSessionService struct {
	loginResult   *ports.LoginResult
	loginErr      error
	loginCalls    int
	registerCalls int
	logoutCalls   int
}

func (s *stubSessionService) Login(_ context.Context, _ ports.LoginInput) (*ports.LoginResult, error) {
	s.loginCalls++
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubSessionService) Register(_ context.Context, _ ports.RegisterInput) error {
	s.registerCalls++
	return nil
}

func (s *stubSessionService) Resolve(_ context.Context, _ string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessionService) Logout(_ context.Context, _ string) error {
	s.logoutCalls++
	return nil
}

func (s *stubSessionService) Teardown(_ context.Context, _ string) error {
	return nil
}

type stubActivity struct {
	events []domain.ActivityEvent
}

func (s *stubActivity) Enqueue(event domain.ActivityEvent) {
	s.events = append(s.events, event)
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	session := domain.NewSession("t1", domain.User{ID: "u1", Email: "ana@photomarket.test"}, domain.RoleBuyer, time.Hour)
	svc := &stubSessionService{loginResult: &ports.LoginResult{
		Session:     session,
		LandingPath: domain.PathAccount,
	}}
	activity := &stubActivity{}
	h := NewAuthHandler(svc, activity, "secret", false)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"ana@photomarket.test","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != "u1" || resp.Role != "buyer" || resp.LandingPath != domain.PathAccount {
		t.Fatalf("unexpected response: %+v", resp)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.CookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("session cookie not set")
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}

	if len(activity.events) != 1 || activity.events[0].Kind != domain.ActivityLogin {
		t.Fatalf("expected one login audit event, got %+v", activity.events)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &stubSessionService{loginErr: domain.ErrInvalidCredentials}
	activity := &stubActivity{}
	h := NewAuthHandler(svc, activity, "secret", false)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"ana@photomarket.test","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login must render the 401 itself, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie may be set on a failed login")
	}
	if len(activity.events) != 1 || activity.events[0].Kind != domain.ActivityLoginFailed {
		t.Fatalf("expected one failed-login audit event, got %+v", activity.events)
	}
}

func TestAuthHandler_Login_MalformedEmail(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc, nil, "secret", false)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"not-an-email","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if svc.loginCalls != 0 {
		t.Fatalf("no upstream call may happen for an invalid form")
	}
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc, nil, "secret", false)

	body := `{"username":"ana","email":"ana@photomarket.test","password":"secret1","confirm_password":"secret2"}`
	c, rec := newTestContext(http.MethodPost, "/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "must match") {
		t.Fatalf("error must mention the mismatch, got %s", rec.Body.String())
	}
	if svc.registerCalls != 0 {
		t.Fatalf("a mismatched confirmation must never reach the backend")
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc, nil, "secret", false)

	body := `{"username":"ana","email":"ana@photomarket.test","password":"secret1","confirm_password":"secret1","role":"photographer"}`
	c, rec := newTestContext(http.MethodPost, "/auth/register", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if svc.registerCalls != 1 {
		t.Fatalf("registerCalls = %d, want 1", svc.registerCalls)
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	svc := &stubSessionService{}
	h := NewAuthHandler(svc, nil, "secret", false)

	c, rec := newTestContext(http.MethodPost, "/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout without a session must succeed, got %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != domain.PathLogin {
		t.Fatalf("location = %q, want %q", loc, domain.PathLogin)
	}
	if svc.logoutCalls != 0 {
		t.Fatalf("no session id, no service call")
	}

	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.CookieName && cookie.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("logout must always expire the cookie")
	}
}

func TestAuthHandler_Me_WithoutSession(t *testing.T) {
	h := NewAuthHandler(&stubSessionService{}, nil, "secret", false)

	c, _ := newTestContext(http.MethodGet, "/v1/me", "")
	err := h.Me(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected a 401 HTTPError, got %v", err)
	}
}
