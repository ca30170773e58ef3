package domain

import (
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
)

// GasPrice represents a gas price in wei.
type GasPrice struct {
	Wei       *big.Int
	Gwei      decimal.Decimal
	Timestamp time.Time
}

// NewGasPrice creates a GasPrice from wei.
func NewGasPrice(wei *big.Int) *GasPrice {
	if wei == nil {
		wei = new(big.Int)
	}
	return &GasPrice{
		Wei:       wei,
		Gwei:      asset.HumanDecimal(wei, 9),
		Timestamp: time.Now(),
	}
}

// ParseGasPrice reads a decimal wei string.
func ParseGasPrice(wei string) (*GasPrice, error) {
	v, err := asset.ParseRaw(wei)
	if err != nil {
		return nil, err
	}
	return NewGasPrice(v), nil
}

// Tier is one EIP-1559 fee suggestion.
type Tier struct {
	MaxPriorityFeePerGas string `json:"maxPriorityFeePerGas"`
	MaxFeePerGas         string `json:"maxFeePerGas"`
}

// GasPrices is the gas-price API response.
type GasPrices struct {
	BaseFee string `json:"baseFee"`
	Low     Tier   `json:"low"`
	Medium  Tier   `json:"medium"`
	High    Tier   `json:"high"`
	Instant Tier   `json:"instant"`
}

// Tier names accepted by GasPrices.Tier.
const (
	TierLow     = "low"
	TierMedium  = "medium"
	TierHigh    = "high"
	TierInstant = "instant"
)

// Tier returns the named fee suggestion.
func (g GasPrices) Tier(name string) (Tier, error) {
	switch strings.ToLower(name) {
	case TierLow:
		return g.Low, nil
	case TierMedium, "":
		return g.Medium, nil
	case TierHigh:
		return g.High, nil
	case TierInstant:
		return g.Instant, nil
	default:
		return Tier{}, apperror.Validation(apperror.CodeInvalidInput, "unknown gas tier "+name)
	}
}

// MaxFeeGwei returns the tier's max fee per gas in gwei.
func (g GasPrices) MaxFeeGwei(tier string) (decimal.Decimal, error) {
	t, err := g.Tier(tier)
	if err != nil {
		return decimal.Zero, err
	}
	p, err := ParseGasPrice(t.MaxFeePerGas)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Gwei, nil
}

// FormattedGasPrice is a wei value rendered in the three usual units.
type FormattedGasPrice struct {
	Wei  string `json:"wei"`
	Gwei string `json:"gwei"`
	Eth  string `json:"eth"`
}

// FormatGasPrice renders wei as wei, gwei (2 decimals) and ETH (9 decimals).
func FormatGasPrice(wei *big.Int) FormattedGasPrice {
	if wei == nil {
		wei = new(big.Int)
	}
	return FormattedGasPrice{
		Wei:  wei.String(),
		Gwei: asset.HumanDecimal(wei, 9).StringFixed(2),
		Eth:  asset.HumanDecimal(wei, 18).StringFixed(9),
	}
}

// TransactionCost is the cost of a transaction at a gas price.
type TransactionCost struct {
	CostWei string `json:"costWei"`
	CostEth string `json:"costEth"`
	CostUSD string `json:"costUsd"`
}

// EstimateTransactionCost prices gasLimit units at gasPrice wei, converting
// to USD with the native coin price.
func EstimateTransactionCost(gasPrice *big.Int, gasLimit uint64, nativePriceUSD decimal.Decimal) TransactionCost {
	if gasPrice == nil {
		gasPrice = new(big.Int)
	}
	costWei := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))
	costEth := asset.HumanDecimal(costWei, 18)
	return TransactionCost{
		CostWei: costWei.String(),
		CostEth: costEth.StringFixed(6),
		CostUSD: costEth.Mul(nativePriceUSD).StringFixed(2),
	}
}
