// Package oneinch implements the portfolio and balance ports on the 1inch API.
package oneinch

import (
	"context"
	"strconv"
	"strings"

	"github.com/fd1az/oneinch-nodes/business/portfolio/app"
	"github.com/fd1az/oneinch-nodes/business/portfolio/domain"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
)

// Ensure the clients implement their ports.
var (
	_ app.PortfolioAPI = (*PortfolioClient)(nil)
	_ app.BalanceAPI   = (*BalanceClient)(nil)
)

// PortfolioClient calls the /portfolio/portfolio/v4 endpoints.
type PortfolioClient struct {
	rest *oneinch.Client
}

// NewPortfolioClient creates a portfolio client on the shared transport.
func NewPortfolioClient(cfg oneinch.Config, log logger.LoggerInterface) (*PortfolioClient, error) {
	rest, err := oneinch.NewClient(cfg, "portfolio", log)
	if err != nil {
		return nil, err
	}
	return &PortfolioClient{rest: rest}, nil
}

func overviewQuery(addresses []string, chainID uint64) map[string]string {
	q := map[string]string{"addresses": strings.Join(addresses, ",")}
	if chainID != 0 {
		q["chain_id"] = strconv.FormatUint(chainID, 10)
	}
	return q
}

// ProfitAndLoss calls GET /overview/erc20/profit_and_loss.
func (c *PortfolioClient) ProfitAndLoss(ctx context.Context, addresses []string, chainID uint64) ([]domain.ProfitAndLoss, error) {
	var out struct {
		Result []domain.ProfitAndLoss `json:"result"`
	}
	if err := c.rest.Get(ctx, "profit_and_loss", oneinch.PortfolioProfitAndLoss, overviewQuery(addresses, chainID), &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// Details calls GET /overview/erc20/details.
func (c *PortfolioClient) Details(ctx context.Context, addresses []string, chainID uint64) ([]domain.TokenDetail, error) {
	var out struct {
		Result []domain.TokenDetail `json:"result"`
	}
	if err := c.rest.Get(ctx, "details", oneinch.PortfolioDetails, overviewQuery(addresses, chainID), &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// CurrentValue calls GET /overview/erc20/current_value.
func (c *PortfolioClient) CurrentValue(ctx context.Context, addresses []string, chainID uint64) ([]domain.Value, error) {
	var out struct {
		Result []domain.Value `json:"result"`
	}
	if err := c.rest.Get(ctx, "current_value", oneinch.PortfolioCurrentValue, overviewQuery(addresses, chainID), &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// SupportedChains calls GET /general/supported_chains.
func (c *PortfolioClient) SupportedChains(ctx context.Context) ([]domain.SupportedChain, error) {
	var out struct {
		Result []domain.SupportedChain `json:"result"`
	}
	if err := c.rest.Get(ctx, "supported_chains", oneinch.PortfolioSupportedChains, nil, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// BalanceClient calls the /balance/v1.2 endpoints.
type BalanceClient struct {
	rest *oneinch.Client
}

// NewBalanceClient creates a balance client on the shared transport.
func NewBalanceClient(cfg oneinch.Config, log logger.LoggerInterface) (*BalanceClient, error) {
	rest, err := oneinch.NewClient(cfg, "balance", log)
	if err != nil {
		return nil, err
	}
	return &BalanceClient{rest: rest}, nil
}

// Balances calls GET /balance/v1.2/{chainId}/balances/{address}.
func (c *BalanceClient) Balances(ctx context.Context, chainID uint64, wallet string) (domain.Balances, error) {
	var out domain.Balances
	path := oneinch.Path(oneinch.BalanceAll, chainID, "address", wallet)
	if err := c.rest.Get(ctx, "balances", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Balance calls GET /balance/v1.2/{chainId}/balance/{address}/{tokenAddress}.
func (c *BalanceClient) Balance(ctx context.Context, chainID uint64, wallet, token string) (string, error) {
	var out struct {
		Balance string `json:"balance"`
	}
	path := oneinch.Path(oneinch.BalanceToken, chainID, "address", wallet, "tokenAddress", token)
	if err := c.rest.Get(ctx, "balance", path, nil, &out); err != nil {
		return "", err
	}
	return out.Balance, nil
}
