package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

// CookieName is the browser handle for the session. The cookie value is a
// signed JWT wrapping the session ID; the session itself lives server-side.
const CookieName = "pm_session"

const (
	sessionContextKey   = "session"
	sessionIDContextKey = "session_id"
)

// Session resolves the cookie into a live session and injects it into the
// request context. A missing, tampered, or expired cookie is not an error
// here — the guards downstream decide what an anonymous visitor may see.
func Session(secret string, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sid, err := parseCookieValue(secret, cookie.Value)
			if err != nil {
				return next(c)
			}

			session, err := sessions.Resolve(c.Request().Context(), sid)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return next(c)
				}
				// A session-store outage is not anonymity: bouncing a valid
				// cookie holder to /login would look like a forced logout.
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session store unavailable")
			}

			c.Set(sessionContextKey, session)
			c.Set(sessionIDContextKey, sid)
			return next(c)
		}
	}
}

// SessionFromContext returns the session injected by the Session middleware.
func SessionFromContext(c echo.Context) (*domain.Session, bool) {
	session, ok := c.Get(sessionContextKey).(*domain.Session)
	return session, ok
}

// SessionIDFromContext returns the raw session ID, when one resolved.
func SessionIDFromContext(c echo.Context) (string, bool) {
	sid, ok := c.Get(sessionIDContextKey).(string)
	return sid, ok
}

// NewSessionCookie signs a cookie for the session, expiring alongside it.
func NewSessionCookie(secret string, session *domain.Session, secure bool) (*http.Cookie, error) {
	claims := jwt.MapClaims{
		"sid": session.ID,
		"exp": session.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ExpiredSessionCookie returns a cookie that deletes the browser handle.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// parseCookieValue verifies the cookie JWT and extracts the session ID.
func parseCookieValue(secret, value string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session cookie")
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", fmt.Errorf("session cookie missing sid")
	}
	return sid, nil
}
