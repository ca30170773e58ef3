// Package oneinch implements the swap ports on the 1inch aggregation API.
package oneinch

import (
	"context"
	"strconv"

	"github.com/fd1az/oneinch-nodes/business/swap/app"
	"github.com/fd1az/oneinch-nodes/business/swap/domain"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
)

// Ensure Client implements AggregationAPI.
var _ app.AggregationAPI = (*Client)(nil)

// Client calls the /swap/v6.0 endpoints.
type Client struct {
	rest *oneinch.Client
}

// NewClient creates an aggregation client on the shared transport.
func NewClient(cfg oneinch.Config, log logger.LoggerInterface) (*Client, error) {
	rest, err := oneinch.NewClient(cfg, "swap", log)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rest}, nil
}

// Quote calls GET /quote.
func (c *Client) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
	q := map[string]string{
		"src":    req.Src,
		"dst":    req.Dst,
		"amount": req.Amount,
	}
	routingParams(q, req.QuoteOptions)

	var out domain.QuoteResponse
	if err := c.rest.Get(ctx, "quote", oneinch.Path(oneinch.SwapQuote, req.ChainID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Swap calls GET /swap.
func (c *Client) Swap(ctx context.Context, req domain.SwapRequest) (*domain.SwapResponse, error) {
	q := map[string]string{
		"src":      req.Src,
		"dst":      req.Dst,
		"amount":   req.Amount,
		"from":     req.From,
		"origin":   req.From,
		"slippage": req.Slippage.String(),
		"receiver": req.Receiver,
		"referrer": req.Referrer,
		"permit":   req.Permit,
	}
	if req.DisableEstimate {
		q["disableEstimate"] = "true"
	}
	if req.AllowPartial {
		q["allowPartialFill"] = "true"
	}
	routingParams(q, req.QuoteOptions)

	var out domain.SwapResponse
	if err := c.rest.Get(ctx, "swap", oneinch.Path(oneinch.SwapSwap, req.ChainID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveTransaction calls GET /approve/transaction.
func (c *Client) ApproveTransaction(ctx context.Context, chainID uint64, token, amount string) (*domain.ApproveTransaction, error) {
	var out domain.ApproveTransaction
	q := map[string]string{"tokenAddress": token, "amount": amount}
	if err := c.rest.Get(ctx, "approve_transaction", oneinch.Path(oneinch.SwapApproveTransaction, chainID), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Allowance calls GET /approve/allowance.
func (c *Client) Allowance(ctx context.Context, chainID uint64, token, wallet string) (string, error) {
	var out struct {
		Allowance string `json:"allowance"`
	}
	q := map[string]string{"tokenAddress": token, "walletAddress": wallet}
	if err := c.rest.Get(ctx, "allowance", oneinch.Path(oneinch.SwapApproveAllowance, chainID), q, &out); err != nil {
		return "", err
	}
	return out.Allowance, nil
}

// Spender calls GET /approve/spender.
func (c *Client) Spender(ctx context.Context, chainID uint64) (string, error) {
	var out struct {
		Address string `json:"address"`
	}
	if err := c.rest.Get(ctx, "spender", oneinch.Path(oneinch.SwapApproveSpender, chainID), nil, &out); err != nil {
		return "", err
	}
	return out.Address, nil
}

// LiquiditySources calls GET /liquidity-sources.
func (c *Client) LiquiditySources(ctx context.Context, chainID uint64) ([]domain.LiquiditySource, error) {
	var out struct {
		Protocols []domain.LiquiditySource `json:"protocols"`
	}
	if err := c.rest.Get(ctx, "liquidity_sources", oneinch.Path(oneinch.SwapLiquiditySources, chainID), nil, &out); err != nil {
		return nil, err
	}
	return out.Protocols, nil
}

// Tokens calls GET /tokens.
func (c *Client) Tokens(ctx context.Context, chainID uint64) (map[string]domain.TokenInfo, error) {
	var out struct {
		Tokens map[string]domain.TokenInfo `json:"tokens"`
	}
	if err := c.rest.Get(ctx, "tokens", oneinch.Path(oneinch.SwapTokens, chainID), nil, &out); err != nil {
		return nil, err
	}
	return out.Tokens, nil
}

// routingParams adds the optional routing knobs; unset values are omitted
// except the include flags, which default to true.
func routingParams(q map[string]string, o domain.QuoteOptions) {
	if o.IncludeTokensInfo == nil {
		o.IncludeTokensInfo = boolPtr(true)
	}
	if o.IncludeProtocols == nil {
		o.IncludeProtocols = boolPtr(true)
	}
	if o.IncludeGas == nil {
		o.IncludeGas = boolPtr(true)
	}
	if o.Fee.Valid {
		q["fee"] = o.Fee.Decimal.String()
	}
	q["protocols"] = o.Protocols
	q["gasPrice"] = o.GasPrice
	q["connectorTokens"] = o.ConnectorTokens
	if o.ComplexityLevel != nil {
		q["complexityLevel"] = strconv.Itoa(*o.ComplexityLevel)
	}
	if o.GasLimit != nil && *o.GasLimit > 0 {
		q["gasLimit"] = strconv.FormatUint(*o.GasLimit, 10)
	}
	setBool(q, "includeTokensInfo", o.IncludeTokensInfo)
	setBool(q, "includeProtocols", o.IncludeProtocols)
	setBool(q, "includeGas", o.IncludeGas)
}

func setBool(q map[string]string, key string, v *bool) {
	if v != nil {
		q[key] = strconv.FormatBool(*v)
	}
}

func boolPtr(b bool) *bool { return &b }
