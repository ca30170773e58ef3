// Package domain contains the core domain types for the pricing context:
// spot prices, gas prices, token metadata and the math built on them.
package domain

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/asset"
)

// DefaultCurrency is the quote currency the price API uses when none is given.
const DefaultCurrency = "USD"

// Side is the trade direction suggested by a price comparison.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// SpotPrice is one token price as returned by the price API.
type SpotPrice struct {
	Token    string
	Price    decimal.Decimal
	Currency string
	// Found is false when the API had no price for the token.
	Found bool
}

// NormalizeCurrency upper-cases a currency code and applies the default.
func NormalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}

// ParsePrice reads a price string from the API. Empty or malformed input is zero.
func ParsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

var (
	two     = decimal.NewFromInt(2)
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
)

// FormatPrice renders a price for display. Prices of at least 1 keep
// min(precision, 2) decimals; smaller prices keep two significant digits
// past the leading zeros, between 2 and 18 decimals.
func FormatPrice(price decimal.Decimal, precision int) string {
	if price.IsZero() {
		return "0"
	}
	abs := price.Abs()
	if abs.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		if precision > 2 {
			precision = 2
		}
		if precision < 0 {
			precision = 0
		}
		return price.StringFixed(int32(precision))
	}

	// -floor(log10(abs)) is the number of multiplications by 10 to reach 1.
	shifts := 0
	for v := abs; v.LessThan(decimal.NewFromInt(1)) && shifts < 40; v = v.Mul(ten) {
		shifts++
	}
	decimals := shifts + 2
	if decimals < 2 {
		decimals = 2
	}
	if decimals > 18 {
		decimals = 18
	}
	return price.StringFixed(int32(decimals))
}

// FormatUSD renders a dollar amount with thousands separators, e.g. "$1,234.56".
func FormatUSD(v decimal.Decimal) string {
	s := "$" + asset.GroupThousands(v.Abs().StringFixed(2))
	if v.IsNegative() && !v.Round(2).IsZero() {
		return "-" + s
	}
	return s
}

// FormatPercentage renders a signed percentage, e.g. "+1.50%" or "-0.25%".
func FormatPercentage(v decimal.Decimal, decimals int32) string {
	s := v.StringFixed(decimals) + "%"
	if !v.IsNegative() {
		return "+" + s
	}
	return s
}

// CalculateUSDValue converts a smallest-unit amount to its value at priceUSD.
func CalculateUSDValue(amount *big.Int, decimals uint8, priceUSD decimal.Decimal) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return asset.HumanDecimal(amount, decimals).Mul(priceUSD)
}

// CrossRate is the price of token 1 in units of token 2, zero when p2 is zero.
func CrossRate(p1, p2 decimal.Decimal) decimal.Decimal {
	if p2.IsZero() {
		return decimal.Zero
	}
	return p1.DivRound(p2, 18)
}

// ConvertPrice converts amount priced at fromPrice into units priced at toPrice.
func ConvertPrice(amount, fromPrice, toPrice decimal.Decimal) decimal.Decimal {
	if toPrice.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(fromPrice).DivRound(toPrice, 18)
}

// NormalizePrice rescales a price quoted with fromDecimals to toDecimals,
// rounded to an integer string.
func NormalizePrice(price decimal.Decimal, fromDecimals, toDecimals uint8) string {
	shift := int32(toDecimals) - int32(fromDecimals)
	return price.Shift(shift).Round(0).String()
}
