package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/core/ports"
)

// AdminHandler proxies the admin dashboard resources.
type AdminHandler struct {
	market ports.MarketplaceGateway
}

func NewAdminHandler(market ports.MarketplaceGateway) *AdminHandler {
	return &AdminHandler{market: market}
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	body, err := h.market.ListUsers(c.Request().Context(), session.Token, page, limit)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// ListRefunds handles GET /v1/admin/refunds.
func (h *AdminHandler) ListRefunds(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	body, err := h.market.ListRefunds(c.Request().Context(), session.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// ApproveRefund handles POST /v1/admin/refunds/:id/approve. Refund approval
// moves money and is never retried.
func (h *AdminHandler) ApproveRefund(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	body, err := h.market.ApproveRefund(c.Request().Context(), session.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}
