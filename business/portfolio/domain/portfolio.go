// Package domain contains the portfolio and balance types and the
// portfolio metrics calculation.
package domain

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

var hundred = decimal.NewFromInt(100)

// PnL is the profit and loss breakdown of a wallet.
type PnL struct {
	TotalPnlUSD          decimal.Decimal `json:"total_pnl_usd"`
	TotalCostBasisUSD    decimal.Decimal `json:"total_cost_basis_usd"`
	TotalCurrentValueUSD decimal.Decimal `json:"total_current_value_usd"`
	RealizedPnlUSD       decimal.Decimal `json:"realized_pnl_usd"`
	UnrealizedPnlUSD     decimal.Decimal `json:"unrealized_pnl_usd"`
}

// ProfitAndLoss is the profit and loss of one wallet on one chain.
type ProfitAndLoss struct {
	ChainID      uint64          `json:"chain_id"`
	Address      string          `json:"address"`
	AbsProfitUSD decimal.Decimal `json:"abs_profit_usd"`
	ROI          decimal.Decimal `json:"roi"`
	PnL          PnL             `json:"pnl"`
}

// TokenDetail is one ERC20 position of a wallet.
type TokenDetail struct {
	ChainID               uint64           `json:"chain_id"`
	TokenAddress          string           `json:"token_address"`
	TokenSymbol           string           `json:"token_symbol"`
	TokenName             string           `json:"token_name"`
	TokenDecimals         uint8            `json:"token_decimals"`
	TokenLogoURL          string           `json:"token_logo_url,omitempty"`
	Balance               string           `json:"balance"`
	BalanceUSD            decimal.Decimal  `json:"balance_usd"`
	PriceUSD              decimal.Decimal  `json:"price_usd"`
	PriceChange24hPercent *decimal.Decimal `json:"price_change_24h_percent,omitempty"`
	CostBasisUSD          *decimal.Decimal `json:"cost_basis_usd,omitempty"`
	PnlUSD                *decimal.Decimal `json:"pnl_usd,omitempty"`
	ROIPercent            *decimal.Decimal `json:"roi_percent,omitempty"`
}

// Value is the current USD value of one wallet on one chain.
type Value struct {
	ChainID  uint64          `json:"chain_id"`
	Address  string          `json:"address"`
	ValueUSD decimal.Decimal `json:"value_usd"`
}

// SupportedChain is a chain the portfolio service indexes.
type SupportedChain struct {
	ChainID     uint64 `json:"chain_id"`
	ChainName   string `json:"chain_name"`
	ChainSymbol string `json:"chain_symbol"`
}

// Allocation is the share of one symbol in a portfolio.
type Allocation struct {
	Symbol     string          `json:"symbol"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Metrics aggregates a set of token positions.
type Metrics struct {
	TotalValue     decimal.Decimal `json:"totalValue"`
	TotalCostBasis decimal.Decimal `json:"totalCostBasis"`
	TotalPnl       decimal.Decimal `json:"totalPnl"`
	ROI            decimal.Decimal `json:"roi"`
	TokenCount     int             `json:"tokenCount"`
	Allocations    []Allocation    `json:"allocations"`
}

// CalculatePortfolioMetrics totals value, cost basis and PnL over details.
// ROI is PnL over cost basis in percent, zero without a cost basis.
// Positions sharing a symbol are merged into one allocation; allocations are
// sorted by value, largest first.
func CalculatePortfolioMetrics(details []TokenDetail) Metrics {
	m := Metrics{TokenCount: len(details), Allocations: []Allocation{}}
	bySymbol := make(map[string]decimal.Decimal)
	var order []string

	for _, d := range details {
		m.TotalValue = m.TotalValue.Add(d.BalanceUSD)
		m.TotalCostBasis = m.TotalCostBasis.Add(orZero(d.CostBasisUSD))
		m.TotalPnl = m.TotalPnl.Add(orZero(d.PnlUSD))

		if _, seen := bySymbol[d.TokenSymbol]; !seen {
			order = append(order, d.TokenSymbol)
		}
		bySymbol[d.TokenSymbol] = bySymbol[d.TokenSymbol].Add(d.BalanceUSD)
	}

	if m.TotalCostBasis.IsPositive() {
		m.ROI = m.TotalPnl.Div(m.TotalCostBasis).Mul(hundred)
	}

	for _, symbol := range order {
		v := bySymbol[symbol]
		pct := decimal.Zero
		if m.TotalValue.IsPositive() {
			pct = v.Div(m.TotalValue).Mul(hundred)
		}
		m.Allocations = append(m.Allocations, Allocation{Symbol: symbol, Value: v, Percentage: pct})
	}
	sort.SliceStable(m.Allocations, func(i, j int) bool {
		return m.Allocations[i].Value.GreaterThan(m.Allocations[j].Value)
	})
	return m
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// ParseAddresses splits a comma separated wallet list. Duplicates are
// dropped, keeping the first spelling.
func ParseAddresses(s string) ([]string, error) {
	var out []string
	seen := make(map[common.Address]bool)
	for _, part := range strings.Split(s, ",") {
		a := strings.TrimSpace(part)
		if a == "" {
			continue
		}
		if !common.IsHexAddress(a) {
			return nil, apperror.Validation(apperror.CodeInvalidAddress, a)
		}
		key := common.HexToAddress(a)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, apperror.Validation(apperror.CodeMissingParameter, "addresses")
	}
	return out, nil
}
