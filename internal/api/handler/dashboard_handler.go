package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the role-scoped landing routes the login flow
// navigates to. Each one is protected by the route guard for its role; the
// payload is a summary shell the client fills by calling the /v1 resources.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardResponse struct {
	Dashboard string              `json:"dashboard"`
	User      sessionUserResponse `json:"user"`
	Role      string              `json:"role"`
}

// Admin handles GET /admin.
func (h *DashboardHandler) Admin(c echo.Context) error {
	return h.render(c, "admin")
}

// Studio handles GET /studio — the photographer workspace. Admins may view
// it too (shared view).
func (h *DashboardHandler) Studio(c echo.Context) error {
	return h.render(c, "studio")
}

// Account handles GET /account — the buyer dashboard.
func (h *DashboardHandler) Account(c echo.Context) error {
	return h.render(c, "account")
}

func (h *DashboardHandler) render(c echo.Context, name string) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Dashboard: name,
		User:      toSessionUser(session.User),
		Role:      string(session.Role),
	})
}
