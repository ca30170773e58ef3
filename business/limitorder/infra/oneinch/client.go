// Package oneinch implements the orderbook port on the 1inch orderbook API.
package oneinch

import (
	"context"
	"strconv"

	"github.com/fd1az/oneinch-nodes/business/limitorder/app"
	"github.com/fd1az/oneinch-nodes/business/limitorder/domain"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
)

// Ensure Client implements OrderbookAPI.
var _ app.OrderbookAPI = (*Client)(nil)

// Client calls the /orderbook/v4.0 endpoints.
type Client struct {
	rest *oneinch.Client
}

// NewClient creates an orderbook client on the shared transport.
func NewClient(cfg oneinch.Config, log logger.LoggerInterface) (*Client, error) {
	rest, err := oneinch.NewClient(cfg, "orderbook", log)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rest}, nil
}

// CreateOrder calls POST /orderbook/v4.0/{chainId}/.
func (c *Client) CreateOrder(ctx context.Context, chainID uint64, req domain.CreateOrderRequest) (*domain.CreateOrderResponse, error) {
	var out domain.CreateOrderResponse
	if err := c.rest.Post(ctx, "create_order", oneinch.Path(oneinch.OrderbookOrder, chainID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllOrders calls GET /all.
func (c *Client) AllOrders(ctx context.Context, chainID uint64, p domain.ListParams) (*domain.OrdersPage, error) {
	var out domain.OrdersPage
	if err := c.rest.Get(ctx, "all_orders", oneinch.Path(oneinch.OrderbookAll, chainID), listQuery(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderCount calls GET /count.
func (c *Client) OrderCount(ctx context.Context, chainID uint64, statuses string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	q := map[string]string{"statuses": statuses}
	if err := c.rest.Get(ctx, "order_count", oneinch.Path(oneinch.OrderbookCount, chainID), q, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// OrdersByAddress calls GET /address/{address}.
func (c *Client) OrdersByAddress(ctx context.Context, chainID uint64, address string, p domain.ListParams) (*domain.OrdersPage, error) {
	var out domain.OrdersPage
	path := oneinch.Path(oneinch.OrderbookByAddress, chainID, "address", address)
	if err := c.rest.Get(ctx, "orders_by_address", path, listQuery(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Events calls GET /events.
func (c *Client) Events(ctx context.Context, chainID uint64, limit int) ([]domain.Event, error) {
	var out struct {
		Items []domain.Event `json:"items"`
	}
	q := map[string]string{"limit": positive(limit)}
	if err := c.rest.Get(ctx, "events", oneinch.Path(oneinch.OrderbookEvents, chainID), q, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// EventsByHash calls GET /events/{orderHash}.
func (c *Client) EventsByHash(ctx context.Context, chainID uint64, orderHash string) ([]domain.Event, error) {
	var out struct {
		Items []domain.Event `json:"items"`
	}
	path := oneinch.Path(oneinch.OrderbookEventsByOrder, chainID, "orderHash", orderHash)
	if err := c.rest.Get(ctx, "events_by_hash", path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// HasActiveOrdersWithPermit calls GET /has-active-orders-with-permit/{wallet}/{token}.
func (c *Client) HasActiveOrdersWithPermit(ctx context.Context, chainID uint64, wallet, token string) (bool, error) {
	var out struct {
		HasActiveOrders bool `json:"hasActiveOrders"`
	}
	path := oneinch.Path(oneinch.OrderbookHasActiveOrders, chainID, "walletAddress", wallet, "tokenAddress", token)
	if err := c.rest.Get(ctx, "has_active_orders", path, nil, &out); err != nil {
		return false, err
	}
	return out.HasActiveOrders, nil
}

func listQuery(p domain.ListParams) map[string]string {
	return map[string]string{
		"page":       positive(p.Page),
		"limit":      positive(p.Limit),
		"sortBy":     p.SortBy,
		"makerAsset": p.MakerAsset,
		"takerAsset": p.TakerAsset,
		"statuses":   p.Statuses,
	}
}

// positive renders n, or "" so the parameter is omitted.
func positive(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
