package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/core/ports"
)

// MediaHandler proxies the media catalog. The gateway holds no copy of any
// media record; every read re-fetches from the backend.
type MediaHandler struct {
	market ports.MarketplaceGateway
}

func NewMediaHandler(market ports.MarketplaceGateway) *MediaHandler {
	return &MediaHandler{market: market}
}

// List handles GET /v1/media — browse the catalog.
//
// @Summary      Browse media
// @Tags         media
// @Produce      json
// @Param        q             query  string  false  "Search text"
// @Param        category      query  string  false  "Category filter"
// @Param        photographer  query  string  false  "Photographer ID filter"
// @Param        page          query  int     false  "Page (1-based)"
// @Param        limit         query  int     false  "Page size"
// @Success      200  {object}  object
// @Failure      401  {object}  errorResponse
// @Router       /v1/media [get]
func (h *MediaHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	body, err := h.market.ListMedia(c.Request().Context(), session.Token, ports.MediaFilter{
		Query:        c.QueryParam("q"),
		Category:     c.QueryParam("category"),
		Photographer: c.QueryParam("photographer"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Upload handles POST /v1/media — streams a multipart upload through to the
// backend unchanged. Uploads are never retried.
//
// @Summary      Upload media
// @Tags         media
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  object
// @Failure      401  {object}  errorResponse
// @Router       /v1/media [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	contentType := c.Request().Header.Get("Content-Type")
	if contentType == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing content type"})
	}

	body, err := h.market.UploadMedia(c.Request().Context(), session.Token, ports.UploadInput{
		ContentType: contentType,
		Body:        c.Request().Body,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, body)
}

// Delete handles DELETE /v1/media/:id.
//
// @Summary      Delete media
// @Tags         media
// @Param        id  path  string  true  "Media ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/media/{id} [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.market.DeleteMedia(c.Request().Context(), session.Token, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
