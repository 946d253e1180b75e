package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/ports"
)

// PreferencesHandler serves per-user UI preferences and the session activity
// trail. Both are gateway-owned data: preferences survive logout by design.
type PreferencesHandler struct {
	prefs    ports.PreferencesRepository
	activity ports.ActivityRepository
}

func NewPreferencesHandler(prefs ports.PreferencesRepository, activity ports.ActivityRepository) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs, activity: activity}
}

// Get handles GET /v1/me/preferences. Users who never saved preferences get
// an empty record, not a 404.
func (h *PreferencesHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	prefs, err := h.prefs.Get(c.Request().Context(), session.User.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			return c.JSON(http.StatusOK, domain.Preferences{UserID: session.User.ID})
		}
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// Put handles PUT /v1/me/preferences.
//
// @Summary      Replace UI preferences
// @Tags         me
// @Accept       json
// @Produce      json
// @Param        body  body      preferencesRequest  true  "Preferences"
// @Success      200   {object}  domain.Preferences
// @Failure      422   {object}  errorResponse
// @Router       /v1/me/preferences [put]
func (h *PreferencesHandler) Put(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req preferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	prefs := &domain.Preferences{
		UserID:    session.User.ID,
		AvatarURL: req.AvatarURL,
		Theme:     req.Theme,
		GridSize:  req.GridSize,
	}
	if err := h.prefs.Upsert(c.Request().Context(), prefs); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// Activity handles GET /v1/me/activity — the user's recent session events.
func (h *PreferencesHandler) Activity(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.activity.ListByUser(c.Request().Context(), session.User.ID, limit)
	if err != nil {
		return err
	}
	if events == nil {
		events = []domain.ActivityEvent{}
	}
	return c.JSON(http.StatusOK, events)
}
