package app

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/business/swap/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const (
	usdc   = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	wallet = "0x00000000000000000000000000000000000000A1"
)

type fakeAPI struct {
	quote      *domain.QuoteResponse
	swap       *domain.SwapResponse
	allowance  string
	tokens     map[string]domain.TokenInfo
	err        error
	calls      int
	lastSwap   domain.SwapRequest
	lastQuote  domain.QuoteRequest
	approveAmt string
}

func (f *fakeAPI) Quote(_ context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
	f.calls++
	f.lastQuote = req
	return f.quote, f.err
}

func (f *fakeAPI) Swap(_ context.Context, req domain.SwapRequest) (*domain.SwapResponse, error) {
	f.calls++
	f.lastSwap = req
	return f.swap, f.err
}

func (f *fakeAPI) ApproveTransaction(_ context.Context, _ uint64, token, amount string) (*domain.ApproveTransaction, error) {
	f.calls++
	f.approveAmt = amount
	return &domain.ApproveTransaction{To: token, Data: "0x095ea7b3", Value: "0"}, f.err
}

func (f *fakeAPI) Allowance(context.Context, uint64, string, string) (string, error) {
	f.calls++
	return f.allowance, f.err
}

func (f *fakeAPI) Spender(context.Context, uint64) (string, error) {
	f.calls++
	return network.AggregationRouterV6, f.err
}

func (f *fakeAPI) LiquiditySources(context.Context, uint64) ([]domain.LiquiditySource, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeAPI) Tokens(context.Context, uint64) (map[string]domain.TokenInfo, error) {
	f.calls++
	return f.tokens, f.err
}

type fakeReader struct{ value *big.Int }

func (f fakeReader) Allowance(context.Context, network.Network, common.Address, common.Address, common.Address) (*big.Int, error) {
	return f.value, nil
}

func newService(api AggregationAPI, reader AllowanceReader) *SwapService {
	return NewSwapService(api, reader, asset.DefaultRegistry(), DefaultSettings(), logger.NewNop())
}

func mainnet(t *testing.T) network.Network {
	t.Helper()
	n, err := network.Lookup("ethereum")
	require.NoError(t, err)
	return n
}

func TestSwapService_Quote(t *testing.T) {
	api := &fakeAPI{quote: &domain.QuoteResponse{
		DstAmount: "2000000000",
		SrcToken:  &domain.TokenInfo{Symbol: "ETH", Decimals: 18},
		DstToken:  &domain.TokenInfo{Symbol: "USDC", Decimals: 6},
		Gas:       182000,
	}}
	svc := newService(api, nil)

	res, err := svc.Quote(context.Background(), mainnet(t), domain.QuoteRequest{
		Src:    asset.NativeTokenAddress,
		Dst:    usdc,
		Amount: "1000000000000000000",
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), res.ChainID)
	assert.Equal(t, "ethereum", res.Network)
	assert.Equal(t, "1.0", res.SrcAmountFormatted)
	assert.Equal(t, "2000.0", res.DstAmountFormatted)
	assert.Equal(t, "2000", res.ExchangeRate)
	assert.Equal(t, "182,000", res.GasFormatted)
	assert.Equal(t, uint64(1), api.lastQuote.ChainID)
}

func TestSwapService_QuoteValidationBeforeRequest(t *testing.T) {
	api := &fakeAPI{}
	svc := newService(api, nil)

	_, err := svc.Quote(context.Background(), mainnet(t), domain.QuoteRequest{
		Src:    usdc,
		Dst:    usdc,
		Amount: "0",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidationError, apperror.GetCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Validation failed: "))
	assert.Zero(t, api.calls)
}

func TestSwapService_Swap(t *testing.T) {
	api := &fakeAPI{swap: &domain.SwapResponse{
		DstAmount: "1000000000000000000",
		DstToken:  &domain.TokenInfo{Decimals: 18},
		Tx:        domain.Transaction{Gas: 250000},
		Protocols: json.RawMessage(`[[[{"name":"A","part":50}]],[[{"name":"B","part":50}]]]`),
	}}
	svc := newService(api, nil)

	res, err := svc.Swap(context.Background(), mainnet(t), domain.SwapRequest{
		Src:      asset.NativeTokenAddress,
		Dst:      usdc,
		Amount:   "5",
		From:     wallet,
		Slippage: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "990000000000000000", res.MinReturnAmount)
	assert.Equal(t, "0.99", res.MinReturnFormatted)
	assert.Equal(t, uint(4), res.Flags)
	assert.Equal(t, "250,000", res.GasFormatted)
}

func TestSwapService_SwapMalformedRoutes(t *testing.T) {
	api := &fakeAPI{swap: &domain.SwapResponse{
		DstAmount: "1000000000000000000",
		DstToken:  &domain.TokenInfo{Decimals: 18},
		Protocols: json.RawMessage(`[[[{"name":"A"`),
	}}
	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelDebug, "swap-test", nil)
	svc := NewSwapService(api, nil, asset.DefaultRegistry(), DefaultSettings(), log)

	res, err := svc.Swap(context.Background(), mainnet(t), domain.SwapRequest{
		Src:      asset.NativeTokenAddress,
		Dst:      usdc,
		Amount:   "5",
		From:     wallet,
		Slippage: decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(0), res.Flags)
	assert.Nil(t, res.Protocols)
	assert.Contains(t, buf.String(), "swap routes not parsed")
}

func TestSwapService_SwapRequiresFrom(t *testing.T) {
	svc := newService(&fakeAPI{}, nil)
	_, err := svc.Swap(context.Background(), mainnet(t), domain.SwapRequest{
		Src: asset.NativeTokenAddress, Dst: usdc, Amount: "1", Slippage: decimal.NewFromInt(1),
	})
	assert.Equal(t, apperror.CodeMissingParameter, apperror.GetCode(err))
}

func TestSwapService_UpstreamErrorPassesThrough(t *testing.T) {
	upstream := apperror.New(apperror.CodeUpstreamAPIError, apperror.WithContext("insufficient liquidity"))
	svc := newService(&fakeAPI{err: upstream}, nil)

	_, err := svc.Quote(context.Background(), mainnet(t), domain.QuoteRequest{
		Src: asset.NativeTokenAddress, Dst: usdc, Amount: "1",
	})
	require.Error(t, err)
	assert.Equal(t, "1inch API Error: insufficient liquidity", err.Error())
}

func TestSwapService_CheckAllowance(t *testing.T) {
	svc := newService(&fakeAPI{allowance: "5000000"}, nil)

	res, err := svc.CheckAllowance(context.Background(), mainnet(t), usdc, wallet, "6000000")
	require.NoError(t, err)
	assert.Equal(t, "5000000", res.Allowance)
	assert.Equal(t, "5.0000 USDC", res.AllowanceFormatted)
	require.NotNil(t, res.IsSufficient)
	assert.False(t, *res.IsSufficient)
	assert.Equal(t, "api", res.Source)
}

func TestSwapService_OnChainAllowance(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	svc := newService(&fakeAPI{}, fakeReader{value: max})

	res, err := svc.OnChainAllowance(context.Background(), mainnet(t), usdc, wallet, "", "1")
	require.NoError(t, err)
	assert.True(t, res.IsUnlimited)
	assert.Equal(t, "Unlimited USDC", res.AllowanceFormatted)
	assert.Equal(t, network.AggregationRouterV6, res.Spender)
	assert.True(t, *res.IsSufficient)

	_, err = newService(&fakeAPI{}, nil).OnChainAllowance(context.Background(), mainnet(t), usdc, wallet, "", "")
	assert.Equal(t, apperror.CodeConfigurationError, apperror.GetCode(err))
}

func TestSwapService_BuildApproval(t *testing.T) {
	svc := newService(&fakeAPI{}, nil)

	res, err := svc.BuildApproval(mainnet(t), usdc, "", "1000000", domain.StrategyDouble)
	require.NoError(t, err)
	assert.Equal(t, "2000000", res.Amount)
	assert.Equal(t, usdc, res.To)
	assert.True(t, strings.HasPrefix(res.Data, "0x095ea7b3"))
	assert.Equal(t, uint64(50000), res.EstimatedGas)

	inf, err := svc.BuildApproval(mainnet(t), usdc, "", "1", domain.StrategyInfinite)
	require.NoError(t, err)
	assert.True(t, inf.IsUnlimited)

	_, err = svc.BuildApproval(mainnet(t), asset.NativeTokenAddress, "", "1", domain.StrategyExact)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.MsgNativeNoApproval)

	revoke, err := svc.BuildRevoke(mainnet(t), usdc, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(revoke.Data, strings.Repeat("0", 64)))
}

func TestSwapService_ApprovalCalldata(t *testing.T) {
	api := &fakeAPI{}
	svc := newService(api, nil)

	res, err := svc.ApprovalCalldata(context.Background(), mainnet(t), usdc, "")
	require.NoError(t, err)
	assert.True(t, res.IsUnlimited)
	assert.Equal(t, "", api.approveAmt)

	_, err = svc.ApprovalCalldata(context.Background(), mainnet(t), asset.NativeTokenAddress, "")
	require.Error(t, err)
}

func TestSwapService_SupportedTokensSorted(t *testing.T) {
	svc := newService(&fakeAPI{tokens: map[string]domain.TokenInfo{
		"0xb": {Symbol: "ZRX"},
		"0xa": {Symbol: "AAVE"},
	}}, nil)

	res, err := svc.SupportedTokens(context.Background(), mainnet(t))
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, "AAVE", res.Tokens[0].Symbol)
	assert.Equal(t, "0xa", res.Tokens[0].Address)
}

func TestSwapService_AnalyzeRoute(t *testing.T) {
	svc := newService(&fakeAPI{}, nil)
	raw := json.RawMessage(`[[[{"name":"UNISWAP_V3","part":100,"fromTokenAddress":"0xa","toTokenAddress":"0xb"}]]]`)

	res, err := svc.AnalyzeRoute(mainnet(t), raw, "0xa", "0xb")
	require.NoError(t, err)
	assert.True(t, res.IsDirect)
	assert.True(t, res.ValidPath)
	assert.Equal(t, uint64(171_000), res.EstimatedGas)
}
