// Package app contains application services and port definitions for the swap context.
package app

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/oneinch-nodes/business/swap/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// AggregationAPI is the 1inch swap API.
type AggregationAPI interface {
	// Quote returns the best route for an amount without building a transaction.
	Quote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error)

	// Swap returns executable calldata for a swap.
	Swap(ctx context.Context, req domain.SwapRequest) (*domain.SwapResponse, error)

	// ApproveTransaction returns an approve transaction for the router.
	// An empty amount requests an unlimited approval.
	ApproveTransaction(ctx context.Context, chainID uint64, token, amount string) (*domain.ApproveTransaction, error)

	// Allowance returns the router's allowance over wallet's token.
	Allowance(ctx context.Context, chainID uint64, token, wallet string) (string, error)

	// Spender returns the router address to approve.
	Spender(ctx context.Context, chainID uint64) (string, error)

	LiquiditySources(ctx context.Context, chainID uint64) ([]domain.LiquiditySource, error)

	Tokens(ctx context.Context, chainID uint64) (map[string]domain.TokenInfo, error)
}

// AllowanceReader reads ERC-20 allowances straight from a chain.
type AllowanceReader interface {
	Allowance(ctx context.Context, net network.Network, token, owner, spender common.Address) (*big.Int, error)
}
