package app

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/business/pricing/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const (
	// TransferGas is the gas used by a plain native transfer.
	TransferGas = 21000
	// pricePrecision is the display precision of formatted prices.
	pricePrecision = 6
)

// MarketService serves prices, gas prices, token metadata and upstream health.
type MarketService struct {
	prices   PriceAPI
	gas      GasAPI
	tokens   TokenAPI
	health   HealthAPI
	registry *asset.Registry
	logger   logger.LoggerInterface
}

// NewMarketService creates a new MarketService with the given ports.
func NewMarketService(prices PriceAPI, gas GasAPI, tokens TokenAPI, health HealthAPI, registry *asset.Registry, log logger.LoggerInterface) *MarketService {
	if registry == nil {
		registry = asset.DefaultRegistry()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &MarketService{
		prices:   prices,
		gas:      gas,
		tokens:   tokens,
		health:   health,
		registry: registry,
		logger:   log,
	}
}

// SpotPrice returns the price of one token. A token the API does not price
// yields a record with found=false and a zero price.
func (s *MarketService) SpotPrice(ctx context.Context, net network.Network, token, currency string) (*SpotPriceResult, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	currency = domain.NormalizeCurrency(currency)

	all, err := s.prices.SpotPrices(ctx, net.ChainID, nil, currency)
	if err != nil {
		return nil, err
	}

	return &SpotPriceResult{
		Ref:        net.Ref(),
		TokenPrice: s.tokenPrice(net.ChainID, token, all),
		Currency:   currency,
	}, nil
}

// SpotPriceValue returns the numeric price of one token, zero when unpriced.
func (s *MarketService) SpotPriceValue(ctx context.Context, net network.Network, token string) (decimal.Decimal, error) {
	res, err := s.SpotPrice(ctx, net, token, domain.DefaultCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.ParsePrice(res.Price), nil
}

// MultiplePrices returns the prices of several tokens in request order.
func (s *MarketService) MultiplePrices(ctx context.Context, net network.Network, tokens []string, currency string) (*PricesResult, error) {
	if len(tokens) == 0 {
		return nil, apperror.Validation(apperror.CodeMissingParameter, "tokenAddresses")
	}
	var invalid []string
	for _, t := range tokens {
		if validateToken(t) != nil {
			invalid = append(invalid, t)
		}
	}
	if len(invalid) > 0 {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, strings.Join(invalid, ", "))
	}
	currency = domain.NormalizeCurrency(currency)

	all, err := s.prices.SpotPrices(ctx, net.ChainID, tokens, currency)
	if err != nil {
		return nil, err
	}

	out := make([]TokenPrice, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, s.tokenPrice(net.ChainID, t, all))
	}
	return &PricesResult{Ref: net.Ref(), Currency: currency, Count: len(out), Prices: out}, nil
}

func (s *MarketService) tokenPrice(chainID uint64, token string, all map[string]string) TokenPrice {
	raw, found := lookupFold(all, token)
	price := domain.ParsePrice(raw)

	tp := TokenPrice{
		Token:     token,
		Price:     price.String(),
		Formatted: domain.FormatPrice(price, pricePrecision),
		Found:     found,
	}
	if a, ok := s.registry.GetByAddress(chainID, token); ok {
		tp.Symbol, tp.Name = a.Symbol(), a.Name()
	}
	return tp
}

// lookupFold finds an address key ignoring hex case.
func lookupFold(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// GasPrice returns the chain's fee tiers. A positive nativePriceUSD adds the
// cost of a plain transfer at the medium tier.
func (s *MarketService) GasPrice(ctx context.Context, net network.Network, nativePriceUSD decimal.Decimal) (*GasPriceResult, error) {
	g, err := s.gas.GasPrices(ctx, net.ChainID)
	if err != nil {
		return nil, err
	}

	baseFee, err := upstreamWei(g.BaseFee)
	if err != nil {
		return nil, err
	}

	res := &GasPriceResult{
		Ref:            net.Ref(),
		NativeCurrency: net.NativeCurrency.Symbol,
		BaseFee:        domain.FormatGasPrice(baseFee),
	}
	tiers := []struct {
		in  domain.Tier
		out *GasTier
	}{
		{g.Low, &res.Low},
		{g.Medium, &res.Medium},
		{g.High, &res.High},
		{g.Instant, &res.Instant},
	}
	for _, t := range tiers {
		tier, err := formatTier(t.in)
		if err != nil {
			return nil, err
		}
		*t.out = tier
	}

	if nativePriceUSD.IsPositive() {
		maxFee, _ := upstreamWei(g.Medium.MaxFeePerGas)
		cost := domain.EstimateTransactionCost(maxFee, TransferGas, nativePriceUSD)
		res.TransferCost = &cost
	}
	return res, nil
}

// GasPriceGwei returns the max fee per gas of a tier in gwei.
func (s *MarketService) GasPriceGwei(ctx context.Context, net network.Network, tier string) (decimal.Decimal, error) {
	g, err := s.gas.GasPrices(ctx, net.ChainID)
	if err != nil {
		return decimal.Zero, err
	}
	gwei, err := g.MaxFeeGwei(tier)
	if err != nil && apperror.GetCode(err) == apperror.CodeInvalidAmount {
		return decimal.Zero, upstreamMalformed("gas price", err)
	}
	return gwei, err
}

func formatTier(t domain.Tier) (GasTier, error) {
	prio, err := upstreamWei(t.MaxPriorityFeePerGas)
	if err != nil {
		return GasTier{}, err
	}
	maxFee, err := upstreamWei(t.MaxFeePerGas)
	if err != nil {
		return GasTier{}, err
	}
	return GasTier{
		MaxPriorityFeePerGas:     prio.String(),
		MaxFeePerGas:             maxFee.String(),
		MaxPriorityFeePerGasGwei: domain.FormatGasPrice(prio).Gwei,
		MaxFeePerGasGwei:         domain.FormatGasPrice(maxFee).Gwei,
	}, nil
}

// TokenInfo returns the metadata of one token.
func (s *MarketService) TokenInfo(ctx context.Context, net network.Network, address string) (*TokenInfoResult, error) {
	if err := validateToken(address); err != nil {
		return nil, err
	}
	t, err := s.tokens.Info(ctx, net.ChainID, address)
	if err != nil {
		return nil, err
	}
	if t.Address == "" {
		t.Address = address
	}
	return &TokenInfoResult{Ref: net.Ref(), TokenDetails: *t}, nil
}

// SearchTokens searches tokens by name or symbol. A non-positive limit
// means domain.DefaultSearchLimit.
func (s *MarketService) SearchTokens(ctx context.Context, net network.Network, query string, limit int) (*TokenSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation(apperror.CodeMissingParameter, "query")
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	list, err := s.tokens.Search(ctx, net.ChainID, query, limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.TokenDetails{}
	}
	return &TokenSearchResult{Ref: net.Ref(), Query: query, Count: len(list), Tokens: list}, nil
}

// CustomTokens returns metadata for arbitrary token addresses.
func (s *MarketService) CustomTokens(ctx context.Context, net network.Network, addresses []string) (*TokenSearchResult, error) {
	if len(addresses) == 0 {
		return nil, apperror.Validation(apperror.CodeMissingParameter, "tokenAddresses")
	}
	for _, a := range addresses {
		if !common.IsHexAddress(a) {
			return nil, apperror.Validation(apperror.CodeInvalidAddress, a)
		}
	}
	list, err := s.tokens.Custom(ctx, net.ChainID, addresses)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.TokenDetails{}
	}
	return &TokenSearchResult{Ref: net.Ref(), Count: len(list), Tokens: list}, nil
}

// Health probes the upstream API. A failed probe is reported, not returned.
func (s *MarketService) Health(ctx context.Context) *HealthResult {
	body, err := s.health.HealthCheck(ctx)
	if err != nil {
		s.logger.Warn(ctx, "1inch health check failed", "error", err)
		return &HealthResult{Healthy: false, Status: err.Error()}
	}
	status := "ok"
	if v, ok := body["status"].(string); ok && v != "" {
		status = v
	}
	return &HealthResult{Healthy: true, Status: status, Response: body}
}

// Ping returns an error when the upstream API is unreachable.
func (s *MarketService) Ping(ctx context.Context) error {
	_, err := s.health.HealthCheck(ctx)
	return err
}

func validateToken(addr string) error {
	if common.IsHexAddress(addr) || asset.IsNativeToken(addr) {
		return nil
	}
	if addr == "" {
		return apperror.Validation(apperror.CodeMissingParameter, "tokenAddress")
	}
	return apperror.Validation(apperror.CodeInvalidAddress, addr)
}

// upstreamWei parses a wei amount from an API response. Empty is zero.
func upstreamWei(s string) (*big.Int, error) {
	v, err := asset.ParseRaw(s)
	if err != nil {
		return nil, upstreamMalformed("wei amount "+s, err)
	}
	return v, nil
}

func upstreamMalformed(what string, cause error) error {
	return apperror.New(apperror.CodeUpstreamAPIError,
		apperror.WithCause(cause),
		apperror.WithContext("malformed "+what+" in response"))
}
