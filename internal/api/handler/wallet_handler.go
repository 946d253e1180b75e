package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photomarket/gateway/internal/core/ports"
)

// WalletHandler proxies the photographer's wallet and payout requests.
type WalletHandler struct {
	market ports.MarketplaceGateway
}

func NewWalletHandler(market ports.MarketplaceGateway) *WalletHandler {
	return &WalletHandler{market: market}
}

// Get handles GET /v1/wallet.
func (h *WalletHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	body, err := h.market.GetWallet(c.Request().Context(), session.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// RequestPayout handles POST /v1/wallet/payouts. Payouts move money and are
// never retried.
//
// @Summary      Request a payout
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        body  body      payoutRequest  true  "Payout details"
// @Success      201   {object}  object
// @Failure      422   {object}  errorResponse
// @Router       /v1/wallet/payouts [post]
func (h *WalletHandler) RequestPayout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req payoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	body, err := h.market.RequestPayout(c.Request().Context(), session.Token, ports.PayoutInput{
		Amount: req.Amount,
		Method: req.Method,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, body)
}
