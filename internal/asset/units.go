package asset

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

// MaxDecimals is the largest token scale accepted by the unit conversions.
const MaxDecimals = 77

// ToSmallestUnit converts a human decimal string ("1.5") to its integer
// amount in the token's smallest unit. It fails with INVALID_AMOUNT when the
// string is not a number, is negative, carries more fractional digits than
// decimals allows, or does not fit in 256 bits.
func ToSmallestUnit(amount string, decimals uint8) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, "empty amount")
	}
	if strings.ContainsAny(s, "eE") {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, fmt.Sprintf("%q: exponent notation not accepted", amount))
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, apperror.New(apperror.CodeInvalidAmount,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("%q is not a decimal number", amount)))
	}
	return ToSmallestUnitDecimal(d, decimals)
}

// ToSmallestUnitDecimal is ToSmallestUnit for an already parsed decimal.
func ToSmallestUnitDecimal(d decimal.Decimal, decimals uint8) (*big.Int, error) {
	if decimals > MaxDecimals {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, fmt.Sprintf("decimals %d out of range", decimals))
	}
	if d.IsNegative() {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, "amount must not be negative")
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, apperror.Validation(apperror.CodeInvalidAmount,
			fmt.Sprintf("%s has more than %d fractional digits", d.String(), decimals))
	}

	raw := scaled.BigInt()
	if _, overflow := uint256.FromBig(raw); overflow {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, "amount exceeds 256-bit range")
	}
	return raw, nil
}

// ToHumanUnit renders a smallest-unit amount as a decimal string with full
// precision. Trailing fractional zeros are dropped but one fractional digit
// is always kept: 10^18 with 18 decimals renders as "1.0".
func ToHumanUnit(raw *big.Int, decimals uint8) string {
	if raw == nil {
		raw = new(big.Int)
	}

	neg := raw.Sign() < 0
	digits := new(big.Int).Abs(raw).String()

	d := int(decimals)
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-d]
	frac := strings.TrimRight(digits[len(digits)-d:], "0")
	if frac == "" {
		frac = "0"
	}

	out := whole + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// ParseRaw parses a smallest-unit integer string. An empty string is zero.
func ParseRaw(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, fmt.Sprintf("%q is not an integer", s))
	}
	if v.Sign() < 0 {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, "amount must not be negative")
	}
	if _, overflow := uint256.FromBig(v); overflow {
		return nil, apperror.Validation(apperror.CodeInvalidAmount, "amount exceeds 256-bit range")
	}
	return v, nil
}

// HumanDecimal returns raw scaled down by decimals as an exact decimal.
func HumanDecimal(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}
