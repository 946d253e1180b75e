package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/api/middleware"
	"github.com/photomarket/gateway/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware and
// fast-fails before any upstream call. Handlers behind the route guard always
// find one; its absence means the guard chain was miswired for this route.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}
