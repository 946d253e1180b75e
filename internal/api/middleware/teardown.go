package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

// ActivityDispatcher is the interface the teardown middleware uses to record
// audit events without blocking the response.
type ActivityDispatcher interface {
	Enqueue(event domain.ActivityEvent)
}

// Teardown converts an upstream 401 into a full session teardown: the stored
// session is destroyed, the cookie is expired, and the user is redirected to
// the login page. The middleware runs once per request, so exactly one
// redirect is issued and loops are impossible. Transient network failures
// pass straight through — they must not log anyone out.
func Teardown(sessions ports.SessionService, activity ActivityDispatcher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil || !errors.Is(err, domain.ErrUpstreamUnauthorized) {
				return err
			}

			sid, _ := SessionIDFromContext(c)
			if err := sessions.Teardown(c.Request().Context(), sid); err != nil {
				// The redirect still happens: an expired cookie plus a
				// stale redis entry beats a live session with a dead token.
				c.Logger().Error(err)
			}

			if session, ok := SessionFromContext(c); ok && activity != nil {
				activity.Enqueue(domain.ActivityEvent{
					UserID:    session.User.ID,
					SessionID: sid,
					Kind:      domain.ActivityTeardown401,
					Role:      session.Role,
				})
			}

			c.SetCookie(ExpiredSessionCookie())
			return c.Redirect(http.StatusSeeOther, domain.PathLogin)
		}
	}
}
