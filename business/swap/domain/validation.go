package domain

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
)

// Validation messages.
const (
	MsgInvalidSrcToken     = "Invalid source token address"
	MsgInvalidDstToken     = "Invalid destination token address"
	MsgSameTokens          = "Source and destination tokens must be different"
	MsgAmountNotPositive   = "Amount must be greater than 0"
	MsgInvalidAmountFormat = "Invalid amount format"
	MsgSlippageRange       = "Slippage must be between 0 and 50 percent"
	MsgInvalidFromAddress  = "Invalid from address"
	MsgInvalidTokenAddress = "Invalid token address"
	MsgNativeNoApproval    = "Native tokens do not require approval"
	MsgInvalidSpender      = "Invalid spender address"
	MsgAmountNegative      = "Amount cannot be negative"
)

// SwapParams are the caller inputs checked before a quote or swap request.
type SwapParams struct {
	SrcToken    string
	DstToken    string
	Amount      string
	Slippage    decimal.Decimal
	FromAddress string
}

// ApprovalParams are the caller inputs checked before building an approval.
type ApprovalParams struct {
	TokenAddress string
	Spender      string
	Amount       string
}

// ValidationResult lists every violated rule.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Err returns nil when valid, else VALIDATION_FAILED with the messages
// joined by ", ".
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return apperror.Validation(apperror.CodeValidationError, strings.Join(r.Errors, ", "))
}

func result(errs []string) ValidationResult {
	if errs == nil {
		errs = []string{}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func isTokenAddress(addr string) bool {
	return asset.IsAddress(addr) || asset.IsNativeToken(addr)
}

// parseInteger mirrors a base-10 BigInt parse: "" is 0, whitespace is trimmed.
func parseInteger(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), true
	}
	return new(big.Int).SetString(s, 10)
}

// ValidateSwapParams checks every rule and collects all failures.
func ValidateSwapParams(p SwapParams) ValidationResult {
	var errs []string

	if !isTokenAddress(p.SrcToken) {
		errs = append(errs, MsgInvalidSrcToken)
	}
	if !isTokenAddress(p.DstToken) {
		errs = append(errs, MsgInvalidDstToken)
	}
	if strings.EqualFold(p.SrcToken, p.DstToken) {
		errs = append(errs, MsgSameTokens)
	}

	if v, ok := parseInteger(p.Amount); !ok {
		errs = append(errs, MsgInvalidAmountFormat)
	} else if v.Sign() <= 0 {
		errs = append(errs, MsgAmountNotPositive)
	}

	if !ValidSlippage(p.Slippage) {
		errs = append(errs, MsgSlippageRange)
	}
	if p.FromAddress != "" && !asset.IsAddress(p.FromAddress) {
		errs = append(errs, MsgInvalidFromAddress)
	}

	return result(errs)
}

// ValidateApprovalParams checks every rule and collects all failures.
// Native tokens are rejected since they carry no allowance.
func ValidateApprovalParams(p ApprovalParams) ValidationResult {
	var errs []string

	if !asset.IsAddress(p.TokenAddress) {
		errs = append(errs, MsgInvalidTokenAddress)
	}
	if asset.IsNativeToken(p.TokenAddress) {
		errs = append(errs, MsgNativeNoApproval)
	}
	if !asset.IsAddress(p.Spender) {
		errs = append(errs, MsgInvalidSpender)
	}

	if v, ok := parseInteger(p.Amount); !ok {
		errs = append(errs, MsgInvalidAmountFormat)
	} else if v.Sign() < 0 {
		errs = append(errs, MsgAmountNegative)
	}

	return result(errs)
}
