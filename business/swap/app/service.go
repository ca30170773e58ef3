package app

import (
	"context"
	"encoding/json"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/business/swap/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const defaultDecimals = 18

// quoteSlippage is the nominal slippage quotes are validated with.
var quoteSlippage = decimal.NewFromInt(1)

// Settings are the tunable heuristics of the swap service.
type Settings struct {
	Policy     domain.Policy
	GasWeights domain.GasWeights
}

// DefaultSettings uses the 10^50 infinite threshold and the default gas weights.
func DefaultSettings() Settings {
	return Settings{Policy: domain.DefaultPolicy(), GasWeights: domain.DefaultGasWeights}
}

// SwapService validates swap inputs, calls the aggregation API and shapes
// the responses into output records.
type SwapService struct {
	api        AggregationAPI
	allowances AllowanceReader
	registry   *asset.Registry
	settings   Settings
	logger     logger.LoggerInterface
}

// NewSwapService creates a SwapService. allowances may be nil, in which
// case on-chain allowance checks fail.
func NewSwapService(api AggregationAPI, allowances AllowanceReader, registry *asset.Registry, settings Settings, log logger.LoggerInterface) *SwapService {
	if registry == nil {
		registry = asset.DefaultRegistry()
	}
	return &SwapService{
		api:        api,
		allowances: allowances,
		registry:   registry,
		settings:   settings,
		logger:     log,
	}
}

// Quote validates the request and fetches a quote.
func (s *SwapService) Quote(ctx context.Context, net network.Network, req domain.QuoteRequest) (*QuoteResult, error) {
	err := domain.ValidateSwapParams(domain.SwapParams{
		SrcToken: req.Src,
		DstToken: req.Dst,
		Amount:   req.Amount,
		Slippage: quoteSlippage,
	}).Err()
	if err != nil {
		return nil, err
	}

	req.ChainID = net.ChainID
	q, err := s.api.Quote(ctx, req)
	if err != nil {
		return nil, err
	}

	srcDec := q.SrcToken.DecimalsOr(s.registry.Decimals(net.ChainID, req.Src, defaultDecimals))
	dstDec := q.DstToken.DecimalsOr(s.registry.Decimals(net.ChainID, req.Dst, defaultDecimals))

	srcRaw, err := asset.ParseRaw(req.Amount)
	if err != nil {
		return nil, err
	}
	dstRaw, err := upstreamAmount(q.DstAmount)
	if err != nil {
		return nil, err
	}

	gas := domain.FormatGasEstimate(q.Gas)
	return &QuoteResult{
		Ref:                net.Ref(),
		SrcToken:           q.SrcToken,
		DstToken:           q.DstToken,
		SrcAmount:          srcRaw.String(),
		SrcAmountFormatted: asset.ToHumanUnit(srcRaw, srcDec),
		DstAmount:          dstRaw.String(),
		DstAmountFormatted: asset.ToHumanUnit(dstRaw, dstDec),
		ExchangeRate:       domain.ExchangeRate(srcRaw, dstRaw, srcDec, dstDec).String(),
		Gas:                q.Gas,
		GasFormatted:       gas.GasFormatted,
		Protocols:          q.Protocols,
	}, nil
}

// Swap validates the request and fetches swap calldata with its min return.
func (s *SwapService) Swap(ctx context.Context, net network.Network, req domain.SwapRequest) (*SwapResult, error) {
	if req.From == "" {
		return nil, apperror.Validation(apperror.CodeMissingParameter, "fromAddress")
	}
	err := domain.ValidateSwapParams(domain.SwapParams{
		SrcToken:    req.Src,
		DstToken:    req.Dst,
		Amount:      req.Amount,
		Slippage:    req.Slippage,
		FromAddress: req.From,
	}).Err()
	if err != nil {
		return nil, err
	}

	req.ChainID = net.ChainID
	sw, err := s.api.Swap(ctx, req)
	if err != nil {
		return nil, err
	}

	srcDec := sw.SrcToken.DecimalsOr(s.registry.Decimals(net.ChainID, req.Src, defaultDecimals))
	dstDec := sw.DstToken.DecimalsOr(s.registry.Decimals(net.ChainID, req.Dst, defaultDecimals))

	srcRaw, err := asset.ParseRaw(req.Amount)
	if err != nil {
		return nil, err
	}
	dstRaw, err := upstreamAmount(sw.DstAmount)
	if err != nil {
		return nil, err
	}
	minReturn, err := domain.MinReturn(dstRaw, req.Slippage)
	if err != nil {
		return nil, err
	}

	routes, err := domain.ParseRoutesJSON(sw.Protocols)
	if err != nil {
		s.logger.Debug(ctx, "swap routes not parsed, multi-path flag left unset",
			"network", net.Name, "error", err.Error())
		sw.Protocols = nil
	}
	flags := domain.SwapFlags{
		DisableEstimate: req.DisableEstimate,
		PartialFill:     req.AllowPartial,
		MultiPath:       len(routes) > 1,
	}

	return &SwapResult{
		Ref:                net.Ref(),
		SrcToken:           sw.SrcToken,
		DstToken:           sw.DstToken,
		SrcAmount:          srcRaw.String(),
		SrcAmountFormatted: asset.ToHumanUnit(srcRaw, srcDec),
		DstAmount:          dstRaw.String(),
		DstAmountFormatted: asset.ToHumanUnit(dstRaw, dstDec),
		MinReturnAmount:    minReturn.String(),
		MinReturnFormatted: asset.ToHumanUnit(minReturn, dstDec),
		Slippage:           req.Slippage.String(),
		Flags:              flags.Bits(),
		Protocols:          sw.Protocols,
		Tx:                 sw.Tx,
		GasFormatted:       domain.FormatGasEstimate(sw.Tx.Gas).GasFormatted,
	}, nil
}

// CheckAllowance asks the API for the router allowance. When required is
// set the result also says whether it covers that amount.
func (s *SwapService) CheckAllowance(ctx context.Context, net network.Network, token, wallet, required string) (*AllowanceResult, error) {
	if !common.IsHexAddress(token) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, domain.MsgInvalidTokenAddress)
	}
	if !common.IsHexAddress(wallet) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, "Invalid wallet address")
	}

	raw, err := s.api.Allowance(ctx, net.ChainID, token, wallet)
	if err != nil {
		return nil, err
	}
	current, err := upstreamAmount(raw)
	if err != nil {
		return nil, err
	}

	res := s.allowanceResult(net, token, wallet, "", current, "api")
	if err := s.compareRequired(res, current, required); err != nil {
		return nil, err
	}
	return res, nil
}

// OnChainAllowance reads the allowance with an eth_call. An empty spender
// means the aggregation router.
func (s *SwapService) OnChainAllowance(ctx context.Context, net network.Network, token, owner, spender, required string) (*AllowanceResult, error) {
	if spender == "" {
		spender = net.Contracts.AggregationRouter
	}
	for _, a := range []string{token, owner, spender} {
		if !common.IsHexAddress(a) {
			return nil, apperror.Validation(apperror.CodeInvalidAddress, a)
		}
	}
	if asset.IsNativeToken(token) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, domain.MsgNativeNoApproval)
	}
	if s.allowances == nil {
		return nil, apperror.New(apperror.CodeConfigurationError, apperror.WithContext("no RPC allowance reader configured"))
	}

	current, err := s.allowances.Allowance(ctx, net,
		common.HexToAddress(token), common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, err
	}

	res := s.allowanceResult(net, token, owner, spender, current, "rpc")
	if err := s.compareRequired(res, current, required); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *SwapService) allowanceResult(net network.Network, token, owner, spender string, current *big.Int, source string) *AllowanceResult {
	dec, sym := s.tokenMeta(net.ChainID, token)
	return &AllowanceResult{
		Ref:                net.Ref(),
		TokenAddress:       token,
		Owner:              owner,
		Spender:            spender,
		Allowance:          current.String(),
		AllowanceFormatted: s.settings.Policy.FormatAllowance(current, dec, sym),
		IsUnlimited:        s.settings.Policy.IsInfinite(current),
		Source:             source,
	}
}

func (s *SwapService) compareRequired(res *AllowanceResult, current *big.Int, required string) error {
	if strings.TrimSpace(required) == "" {
		return nil
	}
	req, err := asset.ParseRaw(required)
	if err != nil {
		return err
	}
	ok := domain.IsAllowanceSufficient(current, req)
	res.RequiredAmount = req.String()
	res.IsSufficient = &ok
	return nil
}

// ApprovalCalldata asks the API for an approve transaction.
func (s *SwapService) ApprovalCalldata(ctx context.Context, net network.Network, token, amount string) (*ApprovalResult, error) {
	if !common.IsHexAddress(token) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, domain.MsgInvalidTokenAddress)
	}
	if !domain.RequiresApproval(token) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, domain.MsgNativeNoApproval)
	}

	var parsed *big.Int
	if strings.TrimSpace(amount) != "" {
		v, err := asset.ParseRaw(amount)
		if err != nil {
			return nil, err
		}
		parsed = v
	}

	tx, err := s.api.ApproveTransaction(ctx, net.ChainID, token, amount)
	if err != nil {
		return nil, err
	}

	res := &ApprovalResult{
		Ref:          net.Ref(),
		To:           tx.To,
		Data:         tx.Data,
		Value:        tx.Value,
		GasPrice:     tx.GasPrice,
		IsUnlimited:  parsed == nil,
		EstimatedGas: domain.EstimateApprovalGas(),
	}
	if parsed != nil {
		dec, _ := s.tokenMeta(net.ChainID, token)
		res.Amount = parsed.String()
		res.AmountFormatted = asset.ToHumanUnit(parsed, dec)
		res.IsUnlimited = s.settings.Policy.IsInfinite(parsed)
	}
	return res, nil
}

// BuildApproval builds approve calldata locally, sized by strategy. An
// empty spender means the aggregation router.
func (s *SwapService) BuildApproval(net network.Network, token, spender, required string, strategy domain.Strategy) (*ApprovalResult, error) {
	if spender == "" {
		spender = net.Contracts.AggregationRouter
	}
	if err := domain.ValidateApprovalParams(domain.ApprovalParams{
		TokenAddress: token,
		Spender:      spender,
		Amount:       required,
	}).Err(); err != nil {
		return nil, err
	}

	req, err := asset.ParseRaw(required)
	if err != nil {
		return nil, err
	}
	amount := domain.ApprovalAmount(req, strategy)

	data, err := domain.BuildApprovalData(spender, amount)
	if err != nil {
		return nil, err
	}

	dec, sym := s.tokenMeta(net.ChainID, token)
	return &ApprovalResult{
		Ref:             net.Ref(),
		To:              token,
		Data:            data,
		Value:           "0",
		Spender:         spender,
		Amount:          amount.String(),
		AmountFormatted: s.settings.Policy.FormatAllowance(amount, dec, sym),
		Strategy:        string(strategy),
		IsUnlimited:     s.settings.Policy.IsInfinite(amount),
		EstimatedGas:    domain.EstimateApprovalGas(),
	}, nil
}

// BuildRevoke builds approve(spender, 0) calldata.
func (s *SwapService) BuildRevoke(net network.Network, token, spender string) (*ApprovalResult, error) {
	if spender == "" {
		spender = net.Contracts.AggregationRouter
	}
	if err := domain.ValidateApprovalParams(domain.ApprovalParams{
		TokenAddress: token,
		Spender:      spender,
	}).Err(); err != nil {
		return nil, err
	}

	data, err := domain.BuildRevokeData(spender)
	if err != nil {
		return nil, err
	}
	return &ApprovalResult{
		Ref:          net.Ref(),
		To:           token,
		Data:         data,
		Value:        "0",
		Spender:      spender,
		Amount:       "0",
		EstimatedGas: domain.EstimateApprovalGas(),
	}, nil
}

// Spender returns the router address the API reports.
func (s *SwapService) Spender(ctx context.Context, net network.Network) (*SpenderResult, error) {
	addr, err := s.api.Spender(ctx, net.ChainID)
	if err != nil {
		return nil, err
	}
	return &SpenderResult{Ref: net.Ref(), Address: addr}, nil
}

// LiquiditySources returns the chain's liquidity sources from the API.
func (s *SwapService) LiquiditySources(ctx context.Context, net network.Network) (*LiquiditySourcesResult, error) {
	list, err := s.api.LiquiditySources(ctx, net.ChainID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.LiquiditySource{}
	}
	return &LiquiditySourcesResult{Ref: net.Ref(), Count: len(list), Protocols: list}, nil
}

// SupportedTokens returns the router's token list sorted by symbol.
func (s *SwapService) SupportedTokens(ctx context.Context, net network.Network) (*TokenListResult, error) {
	tokens, err := s.api.Tokens(ctx, net.ChainID)
	if err != nil {
		return nil, err
	}

	list := make([]domain.TokenInfo, 0, len(tokens))
	for addr, t := range tokens {
		if t.Address == "" {
			t.Address = addr
		}
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Symbol != list[j].Symbol {
			return list[i].Symbol < list[j].Symbol
		}
		return list[i].Address < list[j].Address
	})

	return &TokenListResult{Ref: net.Ref(), Count: len(list), Tokens: list}, nil
}

// AnalyzeRoute parses a protocols payload and summarizes it.
func (s *SwapService) AnalyzeRoute(net network.Network, protocols json.RawMessage, src, dst string) (*RouteResult, error) {
	routes, err := domain.ParseRoutesJSON(protocols)
	if err != nil {
		return nil, err
	}
	return &RouteResult{
		Ref:           net.Ref(),
		RouteAnalysis: routes.Analyze(src, dst, s.settings.GasWeights),
		ValidPath:     domain.ValidateTokenPath(src, dst, routes),
	}, nil
}

func (s *SwapService) tokenMeta(chainID uint64, token string) (uint8, string) {
	if a, ok := s.registry.GetByAddress(chainID, token); ok {
		return a.Decimals(), a.Symbol()
	}
	return defaultDecimals, "tokens"
}

// upstreamAmount parses an integer amount from an API response.
func upstreamAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() < 0 {
		return nil, apperror.New(apperror.CodeUpstreamAPIError,
			apperror.WithContext("malformed amount in response: "+s))
	}
	return v, nil
}
