package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/api/middleware"
	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

// ActivityDispatcher is the interface the handlers use to enqueue audit
// events without blocking the response.
type ActivityDispatcher interface {
	Enqueue(event domain.ActivityEvent)
}

// AuthHandler owns the session lifecycle endpoints.
type AuthHandler struct {
	sessions     ports.SessionService
	activity     ActivityDispatcher
	cookieSecret string
	cookieSecure bool
}

func NewAuthHandler(sessions ports.SessionService, activity ActivityDispatcher, cookieSecret string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		activity:     activity,
		cookieSecret: cookieSecret,
		cookieSecure: cookieSecure,
	}
}

// Login authenticates against the PhotoMarket backend and establishes a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	result, err := h.sessions.Login(c.Request().Context(), ports.LoginInput{
		Email:         req.Email,
		Password:      req.Password,
		RequestedRole: req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.record(domain.ActivityEvent{Kind: domain.ActivityLoginFailed, Detail: req.Email})
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
		}
		return err
	}

	// The session is already durable; only now may the cookie leave.
	cookie, err := middleware.NewSessionCookie(h.cookieSecret, result.Session, h.cookieSecure)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	h.record(domain.ActivityEvent{
		UserID:    result.Session.User.ID,
		SessionID: result.Session.ID,
		Kind:      domain.ActivityLogin,
		Role:      result.Session.Role,
	})

	return c.JSON(http.StatusOK, loginResponse{
		User:        toSessionUser(result.Session.User),
		Role:        string(result.Session.Role),
		LandingPath: result.LandingPath,
		ExpiresAt:   result.Session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Register creates a marketplace account through the backend.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	// Validation failures stop here: no upstream call is ever made with a
	// mismatched confirmation or malformed email.
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	if err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "account created"})
}

// Logout destroys the session and returns to the public entry point.
// Calling it without a session is a no-op, not an error.
//
// @Summary      Logout
// @Tags         auth
// @Success      303
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid, ok := middleware.SessionIDFromContext(c); ok {
		if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
		if session, ok := middleware.SessionFromContext(c); ok {
			h.record(domain.ActivityEvent{
				UserID:    session.User.ID,
				SessionID: sid,
				Kind:      domain.ActivityLogout,
				Role:      session.Role,
			})
		}
	}

	c.SetCookie(middleware.ExpiredSessionCookie())
	return c.Redirect(http.StatusSeeOther, domain.PathLogin)
}

// Me returns the cached identity of the current session.
//
// @Summary      Current session identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		User:      toSessionUser(session.User),
		Role:      string(session.Role),
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Home handles GET / — the public entry point and the fallback landing for
// unrecognized roles.
func (h *AuthHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "photomarket-gateway",
	})
}

// LoginPage handles GET /login, the target of every guard redirect. Already
// authenticated visitors are sent to their landing page instead.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if session, ok := middleware.SessionFromContext(c); ok {
		return c.Redirect(http.StatusSeeOther, session.Role.LandingPath())
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "authentication required"})
}

func (h *AuthHandler) record(event domain.ActivityEvent) {
	if h.activity != nil {
		h.activity.Enqueue(event)
	}
}

func toSessionUser(u domain.User) sessionUserResponse {
	return sessionUserResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}
