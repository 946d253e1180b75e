package ports

import (
	"context"
	"encoding/json"
	"io"
)

// MediaFilter carries the query parameters for browsing media.
type MediaFilter struct {
	Query        string
	Category     string
	Photographer string
	Page         int
	Limit        int
}

// UploadInput streams a multipart upload body through to the backend
// unchanged. ContentType must be the original multipart boundary header.
type UploadInput struct {
	ContentType string
	Body        io.Reader
}

// PayoutInput requests a wallet payout for the authenticated photographer.
type PayoutInput struct {
	Amount float64
	Method string
}

// CartItemInput adds one media item to the buyer's cart.
type CartItemInput struct {
	MediaID string
	License string
}

// MarketplaceGateway proxies role-scoped marketplace resources to the
// backend. The gateway holds no authoritative copy of any of these — every
// read re-fetches, and payloads are passed through verbatim as raw JSON.
// All calls attach the session's bearer token; a 401 from any of them maps
// to domain.ErrUpstreamUnauthorized and triggers session teardown.
type MarketplaceGateway interface {
	// Media.
	ListMedia(ctx context.Context, token string, filter MediaFilter) (json.RawMessage, error)
	UploadMedia(ctx context.Context, token string, in UploadInput) (json.RawMessage, error)
	DeleteMedia(ctx context.Context, token, mediaID string) error

	// Buyer commerce.
	GetCart(ctx context.Context, token string) (json.RawMessage, error)
	AddCartItem(ctx context.Context, token string, in CartItemInput) (json.RawMessage, error)
	RemoveCartItem(ctx context.Context, token, itemID string) error
	Purchase(ctx context.Context, token string) (json.RawMessage, error)
	ListReceipts(ctx context.Context, token string) (json.RawMessage, error)

	// Photographer wallet.
	GetWallet(ctx context.Context, token string) (json.RawMessage, error)
	RequestPayout(ctx context.Context, token string, in PayoutInput) (json.RawMessage, error)

	// Admin.
	ListUsers(ctx context.Context, token string, page, limit int) (json.RawMessage, error)
	ListRefunds(ctx context.Context, token string) (json.RawMessage, error)
	ApproveRefund(ctx context.Context, token, refundID string) (json.RawMessage, error)
}
