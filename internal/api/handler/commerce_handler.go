package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/core/ports"
)

// CommerceHandler proxies the buyer's cart, purchases, and receipts.
type CommerceHandler struct {
	market ports.MarketplaceGateway
}

func NewCommerceHandler(market ports.MarketplaceGateway) *CommerceHandler {
	return &CommerceHandler{market: market}
}

// GetCart handles GET /v1/cart.
func (h *CommerceHandler) GetCart(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	body, err := h.market.GetCart(c.Request().Context(), session.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// AddCartItem handles POST /v1/cart.
func (h *CommerceHandler) AddCartItem(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	body, err := h.market.AddCartItem(c.Request().Context(), session.Token, ports.CartItemInput{
		MediaID: req.MediaID,
		License: req.License,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, body)
}

// RemoveCartItem handles DELETE /v1/cart/:id.
func (h *CommerceHandler) RemoveCartItem(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.market.RemoveCartItem(c.Request().Context(), session.Token, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Purchase handles POST /v1/purchases — checks out the current cart.
// Money mutations are never retried; a duplicate purchase charges twice.
//
// @Summary      Purchase cart contents
// @Tags         commerce
// @Produce      json
// @Success      201  {object}  object
// @Failure      401  {object}  errorResponse
// @Router       /v1/purchases [post]
func (h *CommerceHandler) Purchase(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	body, err := h.market.Purchase(c.Request().Context(), session.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, body)
}

// ListReceipts handles GET /v1/receipts.
func (h *CommerceHandler) ListReceipts(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	body, err := h.market.ListReceipts(c.Request().Context(), session.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}
