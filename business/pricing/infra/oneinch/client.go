// Package oneinch implements the pricing ports on the 1inch price, gas-price,
// token and health endpoints.
package oneinch

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fd1az/oneinch-nodes/business/pricing/app"
	"github.com/fd1az/oneinch-nodes/business/pricing/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
)

// Ensure Client implements every pricing port.
var (
	_ app.PriceAPI  = (*Client)(nil)
	_ app.GasAPI    = (*Client)(nil)
	_ app.TokenAPI  = (*Client)(nil)
	_ app.HealthAPI = (*Client)(nil)
)

// Client calls the market data endpoints. Each API family gets its own
// transport so spans and request metrics are labeled per family.
type Client struct {
	price  *oneinch.Client
	gas    *oneinch.Client
	token  *oneinch.Client
	health *oneinch.Client
}

// NewClient creates the market data client on the shared transport.
func NewClient(cfg oneinch.Config, log logger.LoggerInterface) (*Client, error) {
	c := &Client{}
	for family, dst := range map[string]**oneinch.Client{
		"price":  &c.price,
		"gas":    &c.gas,
		"token":  &c.token,
		"health": &c.health,
	} {
		rest, err := oneinch.NewClient(cfg, family, log)
		if err != nil {
			return nil, err
		}
		*dst = rest
	}
	return c, nil
}

// SpotPrices calls GET /price/v1.1/{chainId}, or the address-list variant
// when tokens are given.
func (c *Client) SpotPrices(ctx context.Context, chainID uint64, tokens []string, currency string) (map[string]string, error) {
	path := oneinch.Path(oneinch.PriceSpot, chainID)
	if len(tokens) > 0 {
		path = oneinch.Path(oneinch.PriceSpotMulti, chainID, "addresses", strings.Join(tokens, ","))
	}

	var raw map[string]json.RawMessage
	q := map[string]string{"currency": currency}
	if err := c.price.Get(ctx, "spot_price", path, q, &raw); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(raw))
	for addr, v := range raw {
		s, err := priceString(v)
		if err != nil {
			return nil, apperror.New(apperror.CodeUpstreamAPIError,
				apperror.WithCause(err),
				apperror.WithContext("malformed price for "+addr))
		}
		if s != "" {
			out[addr] = s
		}
	}
	return out, nil
}

// priceString accepts a JSON string, number or null.
func priceString(v json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(v))
	switch {
	case trimmed == "null" || trimmed == "":
		return "", nil
	case strings.HasPrefix(trimmed, `"`):
		return strconv.Unquote(trimmed)
	default:
		var n json.Number
		if err := json.Unmarshal(v, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

// GasPrices calls GET /gas-price/v1.5/{chainId}.
func (c *Client) GasPrices(ctx context.Context, chainID uint64) (*domain.GasPrices, error) {
	var out domain.GasPrices
	if err := c.gas.Get(ctx, "gas_price", oneinch.Path(oneinch.GasPrice, chainID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search calls GET /token/v1.2/{chainId}/search.
func (c *Client) Search(ctx context.Context, chainID uint64, query string, limit int) ([]domain.TokenDetails, error) {
	var out struct {
		Tokens []domain.TokenDetails `json:"tokens"`
	}
	q := map[string]string{"query": query, "limit": strconv.Itoa(limit)}
	if err := c.token.Get(ctx, "search", oneinch.Path(oneinch.TokenSearch, chainID), q, &out); err != nil {
		return nil, err
	}
	return out.Tokens, nil
}

// Info calls GET /token/v1.2/{chainId}/{address}.
func (c *Client) Info(ctx context.Context, chainID uint64, address string) (*domain.TokenDetails, error) {
	var out domain.TokenDetails
	if err := c.token.Get(ctx, "info", oneinch.Path(oneinch.TokenInfo, chainID, "address", address), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Custom calls POST /token/v1.2/{chainId}/custom.
func (c *Client) Custom(ctx context.Context, chainID uint64, addresses []string) ([]domain.TokenDetails, error) {
	var out struct {
		Tokens []domain.TokenDetails `json:"tokens"`
	}
	body := map[string][]string{"addresses": addresses}
	if err := c.token.Post(ctx, "custom", oneinch.Path(oneinch.TokenCustom, chainID), body, &out); err != nil {
		return nil, err
	}
	return out.Tokens, nil
}

// HealthCheck calls GET /healthcheck.
func (c *Client) HealthCheck(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := c.health.Get(ctx, "check", oneinch.HealthCheck, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
