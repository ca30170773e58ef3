// Package domain holds the swap arithmetic, route model, approval helpers
// and parameter validation. Amounts are big.Int in smallest units; human
// values and percentages use decimal.Decimal.
package domain

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
)

// Slippage bounds in percent.
var (
	MinSlippage = decimal.Zero
	MaxSlippage = decimal.NewFromInt(50)
)

const ratePrecision = 18

var (
	bpsDenominator = big.NewInt(10_000)
	hundred        = decimal.NewFromInt(100)
)

// ValidSlippage reports whether s is within [0, 50] percent.
func ValidSlippage(s decimal.Decimal) bool {
	return s.GreaterThanOrEqual(MinSlippage) && s.LessThanOrEqual(MaxSlippage)
}

// MinReturn is floor(amount * (10000 - round(slippage*100)) / 10000).
func MinReturn(amount *big.Int, slippage decimal.Decimal) (*big.Int, error) {
	if !ValidSlippage(slippage) {
		return nil, apperror.Validation(apperror.CodeInvalidSlippage, slippage.String())
	}
	if amount == nil || amount.Sign() < 0 {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, "amount must not be negative")
	}

	bps := slippage.Mul(hundred).Round(0).BigInt()
	keep := new(big.Int).Sub(bpsDenominator, bps)

	out := new(big.Int).Mul(amount, keep)
	return out.Quo(out, bpsDenominator), nil
}

// PriceImpact returns how far the realized output falls short of
// input*marketRate, in percent. A favorable fill reports 0, never negative.
func PriceImpact(input, output *big.Int, inputDecimals, outputDecimals uint8, marketRate decimal.Decimal) decimal.Decimal {
	expected := asset.HumanDecimal(input, inputDecimals).Mul(marketRate)
	if expected.Sign() <= 0 {
		return decimal.Zero
	}
	realized := asset.HumanDecimal(output, outputDecimals)

	impact := expected.Sub(realized).DivRound(expected, ratePrecision).Mul(hundred)
	if impact.IsNegative() {
		return decimal.Zero
	}
	return impact
}

// ExchangeRate is humanOutput / humanInput, or 0 when the input is 0.
func ExchangeRate(input, output *big.Int, inputDecimals, outputDecimals uint8) decimal.Decimal {
	in := asset.HumanDecimal(input, inputDecimals)
	if in.Sign() <= 0 {
		return decimal.Zero
	}
	return asset.HumanDecimal(output, outputDecimals).DivRound(in, ratePrecision)
}

// SwapFlags are the aggregation router flag bits.
type SwapFlags struct {
	DisableEstimate bool
	PartialFill     bool
	MultiPath       bool
}

// Bits packs the flags: bit0 disable estimate, bit1 partial fill, bit2 multi path.
func (f SwapFlags) Bits() uint {
	var bits uint
	if f.DisableEstimate {
		bits |= 1 << 0
	}
	if f.PartialFill {
		bits |= 1 << 1
	}
	if f.MultiPath {
		bits |= 1 << 2
	}
	return bits
}

// GasEstimate is a gas amount with its grouped display form.
type GasEstimate struct {
	Gas          string `json:"gas"`
	GasFormatted string `json:"gasFormatted"`
}

// FormatGasEstimate groups gas digits by thousands ("1,234,567").
func FormatGasEstimate(gas uint64) GasEstimate {
	s := new(big.Int).SetUint64(gas).String()
	return GasEstimate{Gas: s, GasFormatted: asset.GroupThousands(s)}
}
