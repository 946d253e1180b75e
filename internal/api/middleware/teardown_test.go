package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/core/domain"
)

func TestTeardown_Upstream401ClearsSessionAndRedirectsOnce(t *testing.T) {
	sessions := newStubSessionService()
	session := testSession(domain.RoleBuyer)
	sessions.add(session)
	dispatcher := &stubDispatcher{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/media", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(sessionContextKey, session)
	c.Set(sessionIDContextKey, session.ID)

	handler := Teardown(sessions, dispatcher)(func(c echo.Context) error {
		return domain.ErrUpstreamUnauthorized
	})
	if err := handler(c); err != nil {
		t.Fatalf("teardown middleware must swallow the 401, got %v", err)
	}

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != domain.PathLogin {
		t.Fatalf("location = %q, want %q", loc, domain.PathLogin)
	}
	if sessions.teardowns != 1 {
		t.Fatalf("teardowns = %d, want exactly 1", sessions.teardowns)
	}
	if _, ok := sessions.sessions[session.ID]; ok {
		t.Fatalf("session survived an upstream 401")
	}

	// Exactly one Set-Cookie clearing the browser handle.
	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == CookieName && cookie.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie was not expired")
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0].Kind != domain.ActivityTeardown401 {
		t.Fatalf("expected one teardown audit event, got %+v", dispatcher.events)
	}
}

func TestTeardown_OtherErrorsPassThrough(t *testing.T) {
	sessions := newStubSessionService()
	session := testSession(domain.RoleBuyer)
	sessions.add(session)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/media", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(sessionContextKey, session)
	c.Set(sessionIDContextKey, session.ID)

	netErr := errors.New("dial tcp: connection refused")
	handler := Teardown(sessions, nil)(func(c echo.Context) error {
		return netErr
	})

	// A network failure is not an authentication failure: the error must
	// propagate and the session must survive.
	if err := handler(c); !errors.Is(err, netErr) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if sessions.teardowns != 0 {
		t.Fatalf("network errors must not tear sessions down")
	}
	if _, ok := sessions.sessions[session.ID]; !ok {
		t.Fatalf("session must survive a network failure")
	}
}

func TestTeardown_SuccessPassesThrough(t *testing.T) {
	sessions := newStubSessionService()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/media", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Teardown(sessions, nil)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestTeardown_401WithoutSessionStillRedirects(t *testing.T) {
	// The cookie resolved to nothing but the route still returned a 401:
	// the redirect happens and nothing panics.
	sessions := newStubSessionService()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/media", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Teardown(sessions, &stubDispatcher{})(func(c echo.Context) error {
		return domain.ErrUpstreamUnauthorized
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != domain.PathLogin {
		t.Fatalf("location = %q, want %q", loc, domain.PathLogin)
	}
}
