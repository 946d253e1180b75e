package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/photomarket/gateway/internal/core/ports"
)

// MarketplaceGateway implements ports.MarketplaceGateway as thin pass-through
// calls. Payloads are re-served verbatim; the gateway keeps no copy.
type MarketplaceGateway struct {
	client *Client
}

func NewMarketplaceGateway(client *Client) *MarketplaceGateway {
	return &MarketplaceGateway{client: client}
}

func (g *MarketplaceGateway) ListMedia(ctx context.Context, token string, filter ports.MediaFilter) (json.RawMessage, error) {
	q := url.Values{}
	if filter.Query != "" {
		q.Set("q", filter.Query)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Photographer != "" {
		q.Set("photographer", filter.Photographer)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	return g.client.getJSON(ctx, "/media", token, q)
}

func (g *MarketplaceGateway) UploadMedia(ctx context.Context, token string, in ports.UploadInput) (json.RawMessage, error) {
	return g.client.postStream(ctx, "/media", token, in.ContentType, in.Body)
}

func (g *MarketplaceGateway) DeleteMedia(ctx context.Context, token, mediaID string) error {
	_, err := g.client.postJSON(ctx, http.MethodDelete, "/media/"+url.PathEscape(mediaID), token, nil)
	return err
}

func (g *MarketplaceGateway) GetCart(ctx context.Context, token string) (json.RawMessage, error) {
	return g.client.getJSON(ctx, "/cart", token, nil)
}

func (g *MarketplaceGateway) AddCartItem(ctx context.Context, token string, in ports.CartItemInput) (json.RawMessage, error) {
	payload := map[string]string{"media_id": in.MediaID, "license": in.License}
	return g.client.postJSON(ctx, http.MethodPost, "/cart/items", token, payload)
}

func (g *MarketplaceGateway) RemoveCartItem(ctx context.Context, token, itemID string) error {
	_, err := g.client.postJSON(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(itemID), token, nil)
	return err
}

func (g *MarketplaceGateway) Purchase(ctx context.Context, token string) (json.RawMessage, error) {
	return g.client.postJSON(ctx, http.MethodPost, "/purchases", token, nil)
}

func (g *MarketplaceGateway) ListReceipts(ctx context.Context, token string) (json.RawMessage, error) {
	return g.client.getJSON(ctx, "/receipts", token, nil)
}

func (g *MarketplaceGateway) GetWallet(ctx context.Context, token string) (json.RawMessage, error) {
	return g.client.getJSON(ctx, "/wallet", token, nil)
}

func (g *MarketplaceGateway) RequestPayout(ctx context.Context, token string, in ports.PayoutInput) (json.RawMessage, error) {
	payload := map[string]any{"amount": in.Amount, "method": in.Method}
	return g.client.postJSON(ctx, http.MethodPost, "/wallet/payouts", token, payload)
}

func (g *MarketplaceGateway) ListUsers(ctx context.Context, token string, page, limit int) (json.RawMessage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return g.client.getJSON(ctx, "/admin/users", token, q)
}

func (g *MarketplaceGateway) ListRefunds(ctx context.Context, token string) (json.RawMessage, error) {
	return g.client.getJSON(ctx, "/admin/refunds", token, nil)
}

func (g *MarketplaceGateway) ApproveRefund(ctx context.Context, token, refundID string) (json.RawMessage, error) {
	return g.client.postJSON(ctx, http.MethodPost, "/admin/refunds/"+url.PathEscape(refundID)+"/approve", token, nil)
}
