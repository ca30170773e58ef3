// Package app contains application services and port definitions for the limit order context.
package app

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/limitorder/domain"
)

// OrderbookAPI defines the limit order orderbook.
type OrderbookAPI interface {
	CreateOrder(ctx context.Context, chainID uint64, req domain.CreateOrderRequest) (*domain.CreateOrderResponse, error)
	AllOrders(ctx context.Context, chainID uint64, p domain.ListParams) (*domain.OrdersPage, error)
	OrderCount(ctx context.Context, chainID uint64, statuses string) (int, error)
	OrdersByAddress(ctx context.Context, chainID uint64, address string, p domain.ListParams) (*domain.OrdersPage, error)
	Events(ctx context.Context, chainID uint64, limit int) ([]domain.Event, error)
	EventsByHash(ctx context.Context, chainID uint64, orderHash string) ([]domain.Event, error)
	HasActiveOrdersWithPermit(ctx context.Context, chainID uint64, wallet, token string) (bool, error)
}
