package app

import (
	"github.com/fd1az/oneinch-nodes/business/portfolio/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// ProfitAndLossResult is the output record of the profit and loss call.
type ProfitAndLossResult struct {
	network.Ref
	Addresses []string               `json:"addresses"`
	Count     int                    `json:"count"`
	Result    []domain.ProfitAndLoss `json:"result"`
}

// DetailsResult is the output record of the token details call.
type DetailsResult struct {
	network.Ref
	Addresses []string             `json:"addresses"`
	Count     int                  `json:"count"`
	Result    []domain.TokenDetail `json:"result"`
}

// CurrentValueResult is the output record of the current value call.
type CurrentValueResult struct {
	network.Ref
	Addresses              []string       `json:"addresses"`
	TotalValueUSD          string         `json:"totalValueUsd"`
	TotalValueUSDFormatted string         `json:"totalValueUsdFormatted"`
	Result                 []domain.Value `json:"result"`
}

// SupportedChainsResult is the output record of the supported chains call.
type SupportedChainsResult struct {
	Count  int                     `json:"count"`
	Chains []domain.SupportedChain `json:"chains"`
}

// MetricsResult is the output record of the portfolio metrics calculation.
type MetricsResult struct {
	network.Ref
	Addresses []string `json:"addresses"`
	domain.Metrics
	TotalValueFormatted string `json:"totalValueFormatted"`
	TotalPnlFormatted   string `json:"totalPnlFormatted"`
	ROIFormatted        string `json:"roiFormatted"`
}

// BalanceEntry is one token balance with its token units.
type BalanceEntry struct {
	TokenAddress     string `json:"tokenAddress"`
	Symbol           string `json:"symbol,omitempty"`
	Decimals         uint8  `json:"decimals"`
	Balance          string `json:"balance"`
	BalanceFormatted string `json:"balanceFormatted"`
}

// BalanceResult is the output record of a single token balance.
type BalanceResult struct {
	network.Ref
	WalletAddress string `json:"walletAddress"`
	BalanceEntry
}

// BalancesResult is the output record of the all-balances call.
type BalancesResult struct {
	network.Ref
	WalletAddress string         `json:"walletAddress"`
	Count         int            `json:"count"`
	Balances      []BalanceEntry `json:"balances"`
}
