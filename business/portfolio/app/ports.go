// Package app contains the portfolio and balance use cases.
package app

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/portfolio/domain"
)

// PortfolioAPI is the 1inch portfolio overview API. A zero chainID covers
// every indexed chain.
type PortfolioAPI interface {
	ProfitAndLoss(ctx context.Context, addresses []string, chainID uint64) ([]domain.ProfitAndLoss, error)
	Details(ctx context.Context, addresses []string, chainID uint64) ([]domain.TokenDetail, error)
	CurrentValue(ctx context.Context, addresses []string, chainID uint64) ([]domain.Value, error)
	SupportedChains(ctx context.Context) ([]domain.SupportedChain, error)
}

// BalanceAPI is the 1inch balance API.
type BalanceAPI interface {
	Balances(ctx context.Context, chainID uint64, wallet string) (domain.Balances, error)
	Balance(ctx context.Context, chainID uint64, wallet, token string) (string, error)
}
