package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/business/node/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

func (e *Executor) tokenHandlers() map[string]handler {
	return map[string]handler{
		"getTokenInfo":    {marketService, e.tokenInfo},
		"searchTokens":    {marketService, e.searchTokens},
		"getTokenList":    {swapService, e.supportedTokens},
		"getCustomTokens": {marketService, e.customTokens},
	}
}

func (e *Executor) priceHandlers() map[string]handler {
	return map[string]handler{
		"getSpotPrice":      {marketService, e.spotPrice},
		"getMultiplePrices": {marketService, e.multiplePrices},
	}
}

func (e *Executor) gasHandlers() map[string]handler {
	return map[string]handler{
		"getGasPrice": {marketService, e.gasPrice},
	}
}

func (e *Executor) healthHandlers() map[string]handler {
	return map[string]handler{
		"check": {marketService, e.health},
	}
}

func (e *Executor) liquiditySourceHandlers() map[string]handler {
	return map[string]handler{
		"list": {none, listLiquiditySources},
	}
}

func (e *Executor) tokenInfo(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Market.TokenInfo(ctx, net, p.String("tokenAddress"))
}

func (e *Executor) searchTokens(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	limit, err := p.Int("limit", 10)
	if err != nil {
		return nil, err
	}
	return e.services.Market.SearchTokens(ctx, net, p.String("query"), limit)
}

func (e *Executor) customTokens(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Market.CustomTokens(ctx, net, p.List("addresses"))
}

func (e *Executor) spotPrice(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Market.SpotPrice(ctx, net, p.String("tokenAddress"), p.String("currency"))
}

func (e *Executor) multiplePrices(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Market.MultiplePrices(ctx, net, p.List("tokenAddresses"), p.String("currency"))
}

func (e *Executor) gasPrice(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	native, err := p.Decimal("nativePriceUsd", decimal.Zero)
	if err != nil {
		return nil, err
	}
	return e.services.Market.GasPrice(ctx, net, native)
}

func (e *Executor) health(ctx context.Context, _ network.Network, _ domain.Params) (any, error) {
	return e.services.Market.Health(ctx), nil
}

// StaticSourcesResult lists the liquidity sources known for a chain without
// calling the API.
type StaticSourcesResult struct {
	network.Ref
	Count   int                       `json:"count"`
	Sources []network.LiquiditySource `json:"sources"`
}

func listLiquiditySources(_ context.Context, net network.Network, _ domain.Params) (any, error) {
	sources := network.LiquiditySources(net.ChainID)
	return &StaticSourcesResult{Ref: net.Ref(), Count: len(sources), Sources: sources}, nil
}
