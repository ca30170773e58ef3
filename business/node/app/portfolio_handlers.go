package app

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/node/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

func (e *Executor) balanceHandlers() map[string]handler {
	return map[string]handler{
		"getTokenBalance": {portfolioService, e.tokenBalance},
		"getAllBalances":  {portfolioService, e.allBalances},
	}
}

func (e *Executor) portfolioHandlers() map[string]handler {
	return map[string]handler{
		"getProfitAndLoss":   {portfolioService, e.profitAndLoss},
		"getDetails":         {portfolioService, e.portfolioDetails},
		"getCurrentValue":    {portfolioService, e.currentValue},
		"getSupportedChains": {portfolioService, e.supportedChains},
		"getMetrics":         {portfolioService, e.portfolioMetrics},
	}
}

func (e *Executor) tokenBalance(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	return e.services.Portfolio.TokenBalance(ctx, net, p.String("walletAddress"), p.String("tokenAddress"))
}

func (e *Executor) allBalances(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	includeZero, err := p.Bool("includeZero", false)
	if err != nil {
		return nil, err
	}
	return e.services.Portfolio.AllBalances(ctx, net, p.String("walletAddress"), includeZero)
}

// portfolioScope returns the chain filter: the selected network, or zero
// for every indexed chain.
func portfolioScope(net network.Network, p domain.Params) (uint64, error) {
	all, err := p.Bool("allChains", false)
	if err != nil || all {
		return 0, err
	}
	return net.ChainID, nil
}

func (e *Executor) profitAndLoss(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	chain, err := portfolioScope(net, p)
	if err != nil {
		return nil, err
	}
	return e.services.Portfolio.ProfitAndLoss(ctx, p.String("addresses"), chain)
}

func (e *Executor) portfolioDetails(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	chain, err := portfolioScope(net, p)
	if err != nil {
		return nil, err
	}
	return e.services.Portfolio.Details(ctx, p.String("addresses"), chain)
}

func (e *Executor) currentValue(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	chain, err := portfolioScope(net, p)
	if err != nil {
		return nil, err
	}
	return e.services.Portfolio.CurrentValue(ctx, p.String("addresses"), chain)
}

func (e *Executor) supportedChains(ctx context.Context, _ network.Network, _ domain.Params) (any, error) {
	return e.services.Portfolio.SupportedChains(ctx)
}

func (e *Executor) portfolioMetrics(ctx context.Context, net network.Network, p domain.Params) (any, error) {
	chain, err := portfolioScope(net, p)
	if err != nil {
		return nil, err
	}
	return e.services.Portfolio.Metrics(ctx, p.String("addresses"), chain)
}
