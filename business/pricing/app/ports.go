// Package app contains application services and port definitions for the pricing context.
package app

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/pricing/domain"
)

// PriceAPI defines the spot price source.
type PriceAPI interface {
	// SpotPrices returns prices keyed by token address. An empty token list
	// asks for every token the API prices on the chain.
	SpotPrices(ctx context.Context, chainID uint64, tokens []string, currency string) (map[string]string, error)
}

// GasAPI defines the gas price oracle.
type GasAPI interface {
	GasPrices(ctx context.Context, chainID uint64) (*domain.GasPrices, error)
}

// TokenAPI defines the token metadata source.
type TokenAPI interface {
	Search(ctx context.Context, chainID uint64, query string, limit int) ([]domain.TokenDetails, error)
	Info(ctx context.Context, chainID uint64, address string) (*domain.TokenDetails, error)
	Custom(ctx context.Context, chainID uint64, addresses []string) ([]domain.TokenDetails, error)
}

// HealthAPI defines the upstream liveness probe.
type HealthAPI interface {
	HealthCheck(ctx context.Context) (map[string]any, error)
}
