package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/api/metrics"
	"github.com/photomarket/gateway/internal/core/domain"
)

// RequireSession is the first half of the route guard: anonymous visitors are
// silently redirected to the login page and the protected handler never runs.
// The redirect is navigation, not an error — nothing is surfaced to the user.
func RequireSession(activity ActivityDispatcher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := SessionFromContext(c); !ok {
				metrics.GuardRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				recordBounce(activity, c, nil)
				return c.Redirect(http.StatusSeeOther, domain.PathLogin)
			}
			return next(c)
		}
	}
}

// RequireRole is the second half: sessions whose role is outside the allowed
// set are redirected to their own landing page, again silently. Shared views
// pass multiple roles (e.g. photographer and admin).
func RequireRole(activity ActivityDispatcher, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := SessionFromContext(c)
			if !ok {
				metrics.GuardRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				recordBounce(activity, c, nil)
				return c.Redirect(http.StatusSeeOther, domain.PathLogin)
			}
			if _, ok := allowed[session.Role]; !ok {
				metrics.GuardRedirectsTotal.WithLabelValues("wrong_role").Inc()
				recordBounce(activity, c, session)
				return c.Redirect(http.StatusSeeOther, session.Role.LandingPath())
			}
			return next(c)
		}
	}
}

// recordBounce writes the redirect to the audit trail. Anonymous bounces carry
// only the path; authenticated ones name the user and role that was turned away.
func recordBounce(activity ActivityDispatcher, c echo.Context, session *domain.Session) {
	if activity == nil {
		return
	}
	event := domain.ActivityEvent{
		Kind:   domain.ActivityGuardBounce,
		Detail: c.Request().URL.Path,
	}
	if session != nil {
		event.UserID = session.User.ID
		event.Role = session.Role
		event.SessionID, _ = SessionIDFromContext(c)
	}
	activity.Enqueue(event)
}
