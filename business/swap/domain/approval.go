package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/erc20"
)

// ApprovalGas is the flat gas estimate for an approve transaction.
const ApprovalGas uint64 = 50_000

// DefaultInfiniteExponent puts the "infinite" threshold at 10^50.
const DefaultInfiniteExponent = 50

// Strategy selects how much to approve relative to what a swap needs.
type Strategy string

const (
	StrategyExact    Strategy = "exact"
	StrategyDouble   Strategy = "double"
	StrategyInfinite Strategy = "infinite"
)

// ParseStrategy accepts the strategy names case-insensitively; "" is exact.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyExact:
		return StrategyExact, nil
	case StrategyDouble:
		return StrategyDouble, nil
	case StrategyInfinite:
		return StrategyInfinite, nil
	}
	return "", apperror.Validation(apperror.CodeInvalidInput, fmt.Sprintf("unknown approval strategy %q", s))
}

// Policy carries the tunable approval threshold.
type Policy struct {
	// Amounts above InfiniteThreshold count as infinite approvals. This is
	// a heuristic, not an exact MaxUint256 check.
	InfiniteThreshold *big.Int
}

// DefaultPolicy uses 10^50 as the infinite threshold.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultInfiniteExponent)
}

// NewPolicy sets the infinite threshold to 10^exponent.
func NewPolicy(exponent uint) Policy {
	t := new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(uint64(exponent)), nil)
	return Policy{InfiniteThreshold: t}
}

// IsInfinite reports amount > InfiniteThreshold.
func (p Policy) IsInfinite(amount *big.Int) bool {
	if amount == nil || p.InfiniteThreshold == nil {
		return false
	}
	return amount.Cmp(p.InfiniteThreshold) > 0
}

// IsInfiniteApproval applies the default 10^50 threshold.
func IsInfiniteApproval(amount *big.Int) bool {
	return DefaultPolicy().IsInfinite(amount)
}

// RequiresApproval is false for the native sentinel, which has no allowance.
func RequiresApproval(tokenAddress string) bool {
	return !asset.IsNativeToken(tokenAddress)
}

// IsAllowanceSufficient reports current >= required.
func IsAllowanceSufficient(current, required *big.Int) bool {
	if current == nil {
		current = new(big.Int)
	}
	if required == nil {
		required = new(big.Int)
	}
	return current.Cmp(required) >= 0
}

// ApprovalAmount sizes an approval for required under strategy.
func ApprovalAmount(required *big.Int, strategy Strategy) *big.Int {
	if required == nil {
		required = new(big.Int)
	}
	switch strategy {
	case StrategyInfinite:
		return new(big.Int).Set(math.MaxBig256)
	case StrategyDouble:
		return new(big.Int).Lsh(required, 1)
	default:
		return new(big.Int).Set(required)
	}
}

// BuildApprovalData returns 0x-prefixed approve(spender, amount) calldata.
func BuildApprovalData(spender string, amount *big.Int) (string, error) {
	if !asset.IsAddress(spender) {
		return "", apperror.Validation(apperror.CodeInvalidAddress, spender)
	}
	if amount == nil || amount.Sign() < 0 || amount.Cmp(math.MaxBig256) > 0 {
		return "", apperror.Validation(apperror.CodeInvalidAmount, "approval amount out of uint256 range")
	}

	data, err := erc20.PackApprove(common.HexToAddress(spender), amount)
	if err != nil {
		return "", apperror.New(apperror.CodeInvalidInput, apperror.WithCause(err), apperror.WithContext(err.Error()))
	}
	return hexutil.Encode(data), nil
}

// BuildRevokeData is approve(spender, 0).
func BuildRevokeData(spender string) (string, error) {
	return BuildApprovalData(spender, new(big.Int))
}

// EstimateApprovalGas returns the flat approve gas estimate.
func EstimateApprovalGas() uint64 {
	return ApprovalGas
}

// ApprovalEvent is a decoded ERC-20 Approval log.
type ApprovalEvent struct {
	Owner   common.Address `json:"owner"`
	Spender common.Address `json:"spender"`
	Value   *big.Int       `json:"value"`
}

// DecodeApprovalEvent decodes an Approval log. It returns false for logs
// with the wrong topic count or signature.
func DecodeApprovalEvent(log types.Log) (ApprovalEvent, bool) {
	if len(log.Topics) != 3 || log.Topics[0] != erc20.ApprovalTopic() {
		return ApprovalEvent{}, false
	}
	return ApprovalEvent{
		Owner:   common.BytesToAddress(log.Topics[1].Bytes()),
		Spender: common.BytesToAddress(log.Topics[2].Bytes()),
		Value:   new(big.Int).SetBytes(log.Data),
	}, true
}

var (
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
	thousand = decimal.New(1, 3)
)

// FormatAllowance renders an allowance for display: "Unlimited USDC",
// "1.50M USDC", "12.3400 USDC".
func (p Policy) FormatAllowance(amount *big.Int, decimals uint8, symbol string) string {
	if p.IsInfinite(amount) {
		return "Unlimited " + symbol
	}

	v := asset.HumanDecimal(amount, decimals)
	switch {
	case v.GreaterThanOrEqual(billion):
		return v.Div(billion).StringFixed(2) + "B " + symbol
	case v.GreaterThanOrEqual(million):
		return v.Div(million).StringFixed(2) + "M " + symbol
	case v.GreaterThanOrEqual(thousand):
		return v.Div(thousand).StringFixed(2) + "K " + symbol
	}
	return v.StringFixed(4) + " " + symbol
}

// FormatAllowance uses the default policy.
func FormatAllowance(amount *big.Int, decimals uint8, symbol string) string {
	return DefaultPolicy().FormatAllowance(amount, decimals, symbol)
}
