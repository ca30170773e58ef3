package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/business/pricing/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const (
	usdc = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	weth = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
)

type fakeMarket struct {
	prices     map[string]string
	gas        *domain.GasPrices
	tokens     []domain.TokenDetails
	health     map[string]any
	err        error
	calls      int
	lastTokens []string
	lastLimit  int
	lastCcy    string
}

func (f *fakeMarket) SpotPrices(_ context.Context, _ uint64, tokens []string, currency string) (map[string]string, error) {
	f.calls++
	f.lastTokens = tokens
	f.lastCcy = currency
	return f.prices, f.err
}

func (f *fakeMarket) GasPrices(context.Context, uint64) (*domain.GasPrices, error) {
	f.calls++
	return f.gas, f.err
}

func (f *fakeMarket) Search(_ context.Context, _ uint64, _ string, limit int) ([]domain.TokenDetails, error) {
	f.calls++
	f.lastLimit = limit
	return f.tokens, f.err
}

func (f *fakeMarket) Info(_ context.Context, _ uint64, _ string) (*domain.TokenDetails, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	t := f.tokens[0]
	return &t, nil
}

func (f *fakeMarket) Custom(_ context.Context, _ uint64, _ []string) ([]domain.TokenDetails, error) {
	f.calls++
	return f.tokens, f.err
}

func (f *fakeMarket) HealthCheck(context.Context) (map[string]any, error) {
	f.calls++
	return f.health, f.err
}

func newService(f *fakeMarket) *MarketService {
	return NewMarketService(f, f, f, f, nil, nil)
}

func ethereum(t *testing.T) network.Network {
	t.Helper()
	n, err := network.Lookup("ethereum")
	require.NoError(t, err)
	return n
}

func TestSpotPrice(t *testing.T) {
	f := &fakeMarket{prices: map[string]string{
		"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": "0.99987",
	}}
	res, err := newService(f).SpotPrice(context.Background(), ethereum(t), usdc, "")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), res.ChainID)
	assert.Equal(t, "USD", res.Currency)
	assert.Equal(t, "USD", f.lastCcy)
	assert.Nil(t, f.lastTokens)
	assert.True(t, res.Found)
	assert.Equal(t, "USDC", res.Symbol)
	assert.Equal(t, "USD Coin", res.Name)
	assert.Equal(t, "0.99987", res.Price)
	assert.Equal(t, "1.000", res.Formatted)
}

func TestSpotPriceUnpriced(t *testing.T) {
	f := &fakeMarket{prices: map[string]string{}}
	res, err := newService(f).SpotPrice(context.Background(), ethereum(t), weth, "eur")
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Equal(t, "0", res.Price)
	assert.Equal(t, "EUR", res.Currency)
}

func TestSpotPriceRejectsBadAddress(t *testing.T) {
	f := &fakeMarket{}
	_, err := newService(f).SpotPrice(context.Background(), ethereum(t), "0x123", "")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidAddress, apperror.GetCode(err))
	assert.Zero(t, f.calls)
}

func TestMultiplePrices(t *testing.T) {
	f := &fakeMarket{prices: map[string]string{
		usdc: "1.0001",
		weth: "3012.456",
	}}
	res, err := newService(f).MultiplePrices(context.Background(), ethereum(t), []string{weth, usdc}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{weth, usdc}, f.lastTokens)
	require.Len(t, res.Prices, 2)
	assert.Equal(t, "WETH", res.Prices[0].Symbol)
	assert.Equal(t, "3012.46", res.Prices[0].Formatted)
	assert.Equal(t, "1.00", res.Prices[1].Formatted)

	_, err = newService(f).MultiplePrices(context.Background(), ethereum(t), []string{usdc, "nope"}, "")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidAddress, apperror.GetCode(err))

	_, err = newService(f).MultiplePrices(context.Background(), ethereum(t), nil, "")
	assert.Equal(t, apperror.CodeMissingParameter, apperror.GetCode(err))
}

func sampleGas() *domain.GasPrices {
	return &domain.GasPrices{
		BaseFee: "10000000000",
		Low:     domain.Tier{MaxPriorityFeePerGas: "1000000000", MaxFeePerGas: "11000000000"},
		Medium:  domain.Tier{MaxPriorityFeePerGas: "1500000000", MaxFeePerGas: "20000000000"},
		High:    domain.Tier{MaxPriorityFeePerGas: "2000000000", MaxFeePerGas: "14000000000"},
		Instant: domain.Tier{MaxPriorityFeePerGas: "3000000000", MaxFeePerGas: "16000000000"},
	}
}

func TestGasPrice(t *testing.T) {
	f := &fakeMarket{gas: sampleGas()}
	res, err := newService(f).GasPrice(context.Background(), ethereum(t), decimal.NewFromInt(3000))
	require.NoError(t, err)

	assert.Equal(t, "ETH", res.NativeCurrency)
	assert.Equal(t, "10.00", res.BaseFee.Gwei)
	assert.Equal(t, "20.00", res.Medium.MaxFeePerGasGwei)
	assert.Equal(t, "1.50", res.Medium.MaxPriorityFeePerGasGwei)
	require.NotNil(t, res.TransferCost)
	assert.Equal(t, "1.26", res.TransferCost.CostUSD)

	res, err = newService(f).GasPrice(context.Background(), ethereum(t), decimal.Zero)
	require.NoError(t, err)
	assert.Nil(t, res.TransferCost)
}

func TestGasPriceMalformed(t *testing.T) {
	g := sampleGas()
	g.High.MaxFeePerGas = "fast"
	_, err := newService(&fakeMarket{gas: g}).GasPrice(context.Background(), ethereum(t), decimal.Zero)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUpstreamAPIError, apperror.GetCode(err))
}

func TestGasPriceGwei(t *testing.T) {
	f := &fakeMarket{gas: sampleGas()}
	gwei, err := newService(f).GasPriceGwei(context.Background(), ethereum(t), domain.TierMedium)
	require.NoError(t, err)
	assert.True(t, gwei.Equal(decimal.NewFromInt(20)))
}

func TestSearchTokens(t *testing.T) {
	f := &fakeMarket{tokens: []domain.TokenDetails{{Symbol: "USDC", Address: usdc, Decimals: 6}}}
	res, err := newService(f).SearchTokens(context.Background(), ethereum(t), " usd ", 0)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSearchLimit, f.lastLimit)
	assert.Equal(t, "usd", res.Query)
	assert.Equal(t, 1, res.Count)

	_, err = newService(f).SearchTokens(context.Background(), ethereum(t), "  ", 5)
	assert.Equal(t, apperror.CodeMissingParameter, apperror.GetCode(err))
}

func TestTokenInfoAndCustom(t *testing.T) {
	f := &fakeMarket{tokens: []domain.TokenDetails{{Symbol: "WETH", Decimals: 18}}}
	info, err := newService(f).TokenInfo(context.Background(), ethereum(t), weth)
	require.NoError(t, err)
	assert.Equal(t, weth, info.Address)
	assert.Equal(t, "WETH", info.Symbol)

	res, err := newService(f).CustomTokens(context.Background(), ethereum(t), []string{weth})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	_, err = newService(f).CustomTokens(context.Background(), ethereum(t), []string{"0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE", "bad"})
	assert.Equal(t, apperror.CodeInvalidAddress, apperror.GetCode(err))
}

func TestHealth(t *testing.T) {
	res := newService(&fakeMarket{health: map[string]any{"status": "OK"}}).Health(context.Background())
	assert.True(t, res.Healthy)
	assert.Equal(t, "OK", res.Status)

	down := newService(&fakeMarket{err: errors.New("dial tcp: refused")})
	res = down.Health(context.Background())
	assert.False(t, res.Healthy)
	assert.Equal(t, "dial tcp: refused", res.Status)
	assert.Error(t, down.Ping(context.Background()))
}
