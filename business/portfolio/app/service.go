package app

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/business/portfolio/domain"
	pricing "github.com/fd1az/oneinch-nodes/business/pricing/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const defaultDecimals = 18

// AllChains is the record network name of a portfolio call across chains.
const AllChains = "all"

// PortfolioService reads wallet portfolios and token balances.
type PortfolioService struct {
	portfolio PortfolioAPI
	balances  BalanceAPI
	registry  *asset.Registry
	logger    logger.LoggerInterface
}

// NewPortfolioService creates a PortfolioService.
func NewPortfolioService(portfolio PortfolioAPI, balances BalanceAPI, registry *asset.Registry, log logger.LoggerInterface) *PortfolioService {
	if registry == nil {
		registry = asset.DefaultRegistry()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &PortfolioService{portfolio: portfolio, balances: balances, registry: registry, logger: log}
}

// scope resolves the record reference of a portfolio call.
func scope(chainID uint64) (network.Ref, error) {
	if chainID == 0 {
		return network.Ref{Network: AllChains}, nil
	}
	n, err := network.LookupByChainID(chainID)
	if err != nil {
		return network.Ref{}, err
	}
	return n.Ref(), nil
}

func prepare(addresses string, chainID uint64) ([]string, network.Ref, error) {
	addrs, err := domain.ParseAddresses(addresses)
	if err != nil {
		return nil, network.Ref{}, err
	}
	ref, err := scope(chainID)
	if err != nil {
		return nil, network.Ref{}, err
	}
	return addrs, ref, nil
}

// ProfitAndLoss returns the profit and loss of a comma separated wallet list.
func (s *PortfolioService) ProfitAndLoss(ctx context.Context, addresses string, chainID uint64) (*ProfitAndLossResult, error) {
	addrs, ref, err := prepare(addresses, chainID)
	if err != nil {
		return nil, err
	}
	res, err := s.portfolio.ProfitAndLoss(ctx, addrs, chainID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []domain.ProfitAndLoss{}
	}
	return &ProfitAndLossResult{Ref: ref, Addresses: addrs, Count: len(res), Result: res}, nil
}

// Details returns the ERC20 positions of the wallets.
func (s *PortfolioService) Details(ctx context.Context, addresses string, chainID uint64) (*DetailsResult, error) {
	addrs, ref, err := prepare(addresses, chainID)
	if err != nil {
		return nil, err
	}
	res, err := s.portfolio.Details(ctx, addrs, chainID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = []domain.TokenDetail{}
	}
	return &DetailsResult{Ref: ref, Addresses: addrs, Count: len(res), Result: res}, nil
}

// CurrentValue returns the USD value of the wallets and their total.
func (s *PortfolioService) CurrentValue(ctx context.Context, addresses string, chainID uint64) (*CurrentValueResult, error) {
	addrs, ref, err := prepare(addresses, chainID)
	if err != nil {
		return nil, err
	}
	res, err := s.portfolio.CurrentValue(ctx, addrs, chainID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, v := range res {
		total = total.Add(v.ValueUSD)
	}
	if res == nil {
		res = []domain.Value{}
	}
	return &CurrentValueResult{
		Ref:                    ref,
		Addresses:              addrs,
		TotalValueUSD:          total.StringFixed(2),
		TotalValueUSDFormatted: pricing.FormatUSD(total),
		Result:                 res,
	}, nil
}

// SupportedChains lists the chains the portfolio service indexes.
func (s *PortfolioService) SupportedChains(ctx context.Context) (*SupportedChainsResult, error) {
	chains, err := s.portfolio.SupportedChains(ctx)
	if err != nil {
		return nil, err
	}
	if chains == nil {
		chains = []domain.SupportedChain{}
	}
	return &SupportedChainsResult{Count: len(chains), Chains: chains}, nil
}

// Metrics fetches the wallets' positions and aggregates them.
func (s *PortfolioService) Metrics(ctx context.Context, addresses string, chainID uint64) (*MetricsResult, error) {
	details, err := s.Details(ctx, addresses, chainID)
	if err != nil {
		return nil, err
	}
	m := domain.CalculatePortfolioMetrics(details.Result)
	s.logger.Debug(ctx, "portfolio metrics calculated", "tokens", m.TokenCount, "addresses", len(details.Addresses))
	return &MetricsResult{
		Ref:                 details.Ref,
		Addresses:           details.Addresses,
		Metrics:             m,
		TotalValueFormatted: pricing.FormatUSD(m.TotalValue),
		TotalPnlFormatted:   pricing.FormatUSD(m.TotalPnl),
		ROIFormatted:        pricing.FormatPercentage(m.ROI, 2),
	}, nil
}

// TokenBalance returns the balance of one token held by wallet.
func (s *PortfolioService) TokenBalance(ctx context.Context, net network.Network, wallet, token string) (*BalanceResult, error) {
	for _, a := range []string{wallet, token} {
		if !common.IsHexAddress(a) {
			return nil, apperror.Validation(apperror.CodeInvalidAddress, a)
		}
	}
	raw, err := s.balances.Balance(ctx, net.ChainID, wallet, token)
	if err != nil {
		return nil, err
	}
	entry, err := s.entry(net, token, raw)
	if err != nil {
		return nil, err
	}
	return &BalanceResult{Ref: net.Ref(), WalletAddress: wallet, BalanceEntry: entry}, nil
}

// AllBalances returns every token balance of wallet. Zero balances are
// skipped unless includeZero is set.
func (s *PortfolioService) AllBalances(ctx context.Context, net network.Network, wallet string, includeZero bool) (*BalancesResult, error) {
	if !common.IsHexAddress(wallet) {
		return nil, apperror.Validation(apperror.CodeInvalidAddress, wallet)
	}
	all, err := s.balances.Balances(ctx, net.ChainID, wallet)
	if err != nil {
		return nil, err
	}

	out := &BalancesResult{Ref: net.Ref(), WalletAddress: wallet, Balances: []BalanceEntry{}}
	for _, b := range all.Entries(includeZero) {
		entry, err := s.entry(net, b.TokenAddress, b.Balance)
		if err != nil {
			s.logger.Warn(ctx, "skipping malformed balance", "token", b.TokenAddress, "balance", b.Balance)
			continue
		}
		out.Balances = append(out.Balances, entry)
	}
	out.Count = len(out.Balances)
	return out, nil
}

func (s *PortfolioService) entry(net network.Network, token, raw string) (BalanceEntry, error) {
	v, err := asset.ParseRaw(raw)
	if err != nil {
		return BalanceEntry{}, apperror.New(apperror.CodeUpstreamAPIError,
			apperror.WithContext("malformed balance in response"), apperror.WithCause(err))
	}
	e := BalanceEntry{TokenAddress: token, Balance: v.String(), Decimals: defaultDecimals}
	switch {
	case asset.IsNativeToken(token):
		e.Symbol = net.NativeCurrency.Symbol
		e.Decimals = net.NativeCurrency.Decimals
	default:
		if a, ok := s.registry.GetByAddress(net.ChainID, token); ok {
			e.Symbol, e.Decimals = a.Symbol(), a.Decimals()
		}
	}
	e.BalanceFormatted = asset.ToHumanUnit(v, e.Decimals)
	return e, nil
}
