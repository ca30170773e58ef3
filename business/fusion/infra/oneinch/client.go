// Package oneinch implements the Fusion and Fusion+ ports on the 1inch API.
package oneinch

import (
	"context"
	"strconv"

	"github.com/fd1az/oneinch-nodes/business/fusion/app"
	"github.com/fd1az/oneinch-nodes/business/fusion/domain"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
)

// Ensure the clients implement their ports.
var (
	_ app.FusionAPI     = (*FusionClient)(nil)
	_ app.CrossChainAPI = (*CrossChainClient)(nil)
)

// FusionClient calls the Fusion quoter, relayer and resolver endpoints.
type FusionClient struct {
	rest *oneinch.Client
}

// NewFusionClient creates a Fusion client on the shared transport.
func NewFusionClient(cfg oneinch.Config, log logger.LoggerInterface) (*FusionClient, error) {
	rest, err := oneinch.NewClient(cfg, "fusion", log)
	if err != nil {
		return nil, err
	}
	return &FusionClient{rest: rest}, nil
}

// Quote calls GET /fusion/quoter/v2.0/{chainId}/quote/receive.
func (c *FusionClient) Quote(ctx context.Context, chainID uint64, p domain.QuoteParams) (*domain.Quote, error) {
	var out domain.Quote
	if err := c.rest.Get(ctx, "quote", oneinch.Path(oneinch.FusionQuote, chainID), p.Query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllQuotes calls GET /quote/all.
func (c *FusionClient) AllQuotes(ctx context.Context, chainID uint64, p domain.QuoteParams) ([]domain.Quote, error) {
	var out struct {
		Quotes []domain.Quote `json:"quotes"`
	}
	if err := c.rest.Get(ctx, "quote_all", oneinch.Path(oneinch.FusionQuoteAll, chainID), p.Query(), &out); err != nil {
		return nil, err
	}
	return out.Quotes, nil
}

// ReadyToAccept calls GET /quote/ready-to-accept.
func (c *FusionClient) ReadyToAccept(ctx context.Context, chainID uint64, p domain.QuoteParams) (*domain.ReadyToAccept, error) {
	var out domain.ReadyToAccept
	if err := c.rest.Get(ctx, "ready_to_accept", oneinch.Path(oneinch.FusionReadyToAccept, chainID), p.Query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitOrder calls POST /fusion/relayer/v2.0/{chainId}/order.
func (c *FusionClient) SubmitOrder(ctx context.Context, chainID uint64, o domain.SignedOrder) (*domain.SubmitResponse, error) {
	var out domain.SubmitResponse
	if err := c.rest.Post(ctx, "submit_order", oneinch.Path(oneinch.FusionOrder, chainID), o, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderStatus calls GET /order/status/{orderHash}.
func (c *FusionClient) OrderStatus(ctx context.Context, chainID uint64, orderHash string) (*domain.OrderStatus, error) {
	var out domain.OrderStatus
	path := oneinch.Path(oneinch.FusionOrderStatus, chainID, "orderHash", orderHash)
	if err := c.rest.Get(ctx, "order_status", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrdersByMaker calls GET /order/maker/{address}.
func (c *FusionClient) OrdersByMaker(ctx context.Context, chainID uint64, maker string, p domain.PageParams) (*domain.OrdersPage, error) {
	var out domain.OrdersPage
	path := oneinch.Path(oneinch.FusionOrdersByMaker, chainID, "address", maker)
	if err := c.rest.Get(ctx, "orders_by_maker", path, pageQuery(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActiveOrders calls GET /order/active.
func (c *FusionClient) ActiveOrders(ctx context.Context, chainID uint64, p domain.PageParams) (*domain.OrdersPage, error) {
	var out domain.OrdersPage
	if err := c.rest.Get(ctx, "active_orders", oneinch.Path(oneinch.FusionActiveOrders, chainID), pageQuery(p), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resolvers calls GET /fusion/resolver/v1.0/{chainId}/resolvers.
func (c *FusionClient) Resolvers(ctx context.Context, chainID uint64) ([]domain.Resolver, error) {
	var out struct {
		Resolvers []domain.Resolver `json:"resolvers"`
	}
	if err := c.rest.Get(ctx, "resolvers", oneinch.Path(oneinch.FusionResolvers, chainID), nil, &out); err != nil {
		return nil, err
	}
	return out.Resolvers, nil
}

func pageQuery(p domain.PageParams) map[string]string {
	q := map[string]string{}
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	return q
}

// CrossChainClient calls the chain-independent Fusion+ endpoints.
type CrossChainClient struct {
	rest *oneinch.Client
}

// NewCrossChainClient creates a Fusion+ client on the shared transport.
func NewCrossChainClient(cfg oneinch.Config, log logger.LoggerInterface) (*CrossChainClient, error) {
	rest, err := oneinch.NewClient(cfg, "fusion-plus", log)
	if err != nil {
		return nil, err
	}
	return &CrossChainClient{rest: rest}, nil
}

// Quote calls GET /fusion-plus/quoter/v1.0/quote/receive.
func (c *CrossChainClient) Quote(ctx context.Context, p domain.CrossChainQuoteParams) (*domain.CrossChainQuote, error) {
	q := map[string]string{
		"srcChain":        strconv.FormatUint(p.SrcChain, 10),
		"dstChain":        strconv.FormatUint(p.DstChain, 10),
		"srcTokenAddress": p.SrcTokenAddress,
		"dstTokenAddress": p.DstTokenAddress,
		"amount":          p.Amount,
		"walletAddress":   p.WalletAddress,
	}
	var out domain.CrossChainQuote
	if err := c.rest.Get(ctx, "quote", oneinch.FusionPlusQuote, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitOrder calls POST /fusion-plus/relayer/v1.0/order.
func (c *CrossChainClient) SubmitOrder(ctx context.Context, req domain.CrossChainOrderRequest) (*domain.CrossChainOrderResponse, error) {
	var out domain.CrossChainOrderResponse
	if err := c.rest.Post(ctx, "submit_order", oneinch.FusionPlusOrder, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderStatus calls GET /fusion-plus/relayer/v1.0/order/status/{orderHash}.
func (c *CrossChainClient) OrderStatus(ctx context.Context, orderHash string) (*domain.CrossChainStatus, error) {
	var out domain.CrossChainStatus
	path := oneinch.Path(oneinch.FusionPlusOrderStatus, 0, "orderHash", orderHash)
	if err := c.rest.Get(ctx, "order_status", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
