package app

import (
	"github.com/fd1az/oneinch-nodes/business/pricing/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// TokenPrice is one priced token.
type TokenPrice struct {
	Token     string `json:"tokenAddress"`
	Symbol    string `json:"symbol,omitempty"`
	Name      string `json:"name,omitempty"`
	Price     string `json:"price"`
	Formatted string `json:"priceFormatted"`
	Found     bool   `json:"found"`
}

// SpotPriceResult is the output record of a single price lookup.
type SpotPriceResult struct {
	network.Ref
	TokenPrice
	Currency string `json:"currency"`
}

// PricesResult is the output record of a multi-token price lookup.
type PricesResult struct {
	network.Ref
	Currency string       `json:"currency"`
	Count    int          `json:"count"`
	Prices   []TokenPrice `json:"prices"`
}

// GasTier is one fee suggestion in wei and gwei.
type GasTier struct {
	MaxPriorityFeePerGas     string `json:"maxPriorityFeePerGas"`
	MaxFeePerGas             string `json:"maxFeePerGas"`
	MaxPriorityFeePerGasGwei string `json:"maxPriorityFeePerGasGwei"`
	MaxFeePerGasGwei         string `json:"maxFeePerGasGwei"`
}

// GasPriceResult is the output record of a gas price lookup.
type GasPriceResult struct {
	network.Ref
	NativeCurrency string                   `json:"nativeCurrency"`
	BaseFee        domain.FormattedGasPrice `json:"baseFee"`
	Low            GasTier                  `json:"low"`
	Medium         GasTier                  `json:"medium"`
	High           GasTier                  `json:"high"`
	Instant        GasTier                  `json:"instant"`
	// TransferCost prices a plain transfer at the medium tier when a native
	// coin price was supplied.
	TransferCost *domain.TransactionCost `json:"transferCost,omitempty"`
}

// TokenInfoResult is the output record of a token info lookup.
type TokenInfoResult struct {
	network.Ref
	domain.TokenDetails
}

// TokenSearchResult is the output record of a token search or custom token lookup.
type TokenSearchResult struct {
	network.Ref
	Query  string                `json:"query,omitempty"`
	Count  int                   `json:"count"`
	Tokens []domain.TokenDetails `json:"tokens"`
}

// HealthResult is the output record of an upstream health check.
type HealthResult struct {
	Healthy  bool           `json:"healthy"`
	Status   string         `json:"status"`
	Response map[string]any `json:"response,omitempty"`
}
