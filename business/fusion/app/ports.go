// Package app contains the Fusion use cases: quoting, submitting and
// tracking gasless and cross-chain orders.
package app

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/fusion/domain"
)

// FusionAPI is the single-chain Fusion quoter, relayer and resolver API.
type FusionAPI interface {
	Quote(ctx context.Context, chainID uint64, p domain.QuoteParams) (*domain.Quote, error)
	AllQuotes(ctx context.Context, chainID uint64, p domain.QuoteParams) ([]domain.Quote, error)
	ReadyToAccept(ctx context.Context, chainID uint64, p domain.QuoteParams) (*domain.ReadyToAccept, error)
	SubmitOrder(ctx context.Context, chainID uint64, o domain.SignedOrder) (*domain.SubmitResponse, error)
	OrderStatus(ctx context.Context, chainID uint64, orderHash string) (*domain.OrderStatus, error)
	OrdersByMaker(ctx context.Context, chainID uint64, maker string, p domain.PageParams) (*domain.OrdersPage, error)
	ActiveOrders(ctx context.Context, chainID uint64, p domain.PageParams) (*domain.OrdersPage, error)
	Resolvers(ctx context.Context, chainID uint64) ([]domain.Resolver, error)
}

// CrossChainAPI is the Fusion+ quoter and relayer API.
type CrossChainAPI interface {
	Quote(ctx context.Context, p domain.CrossChainQuoteParams) (*domain.CrossChainQuote, error)
	SubmitOrder(ctx context.Context, req domain.CrossChainOrderRequest) (*domain.CrossChainOrderResponse, error)
	OrderStatus(ctx context.Context, orderHash string) (*domain.CrossChainStatus, error)
}
