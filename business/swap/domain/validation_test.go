package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
)

const usdcAddr = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

func validSwap() SwapParams {
	return SwapParams{
		SrcToken: asset.NativeTokenAddress,
		DstToken: usdcAddr,
		Amount:   "1000000000000000000",
		Slippage: decimal.NewFromInt(1),
	}
}

func TestValidateSwapParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SwapParams)
		want   []string
	}{
		{"valid", func(*SwapParams) {}, []string{}},
		{"same tokens", func(p *SwapParams) { p.DstToken = p.SrcToken }, []string{MsgSameTokens}},
		{"same tokens ignoring case", func(p *SwapParams) {
			p.SrcToken = usdcAddr
			p.DstToken = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
		}, []string{MsgSameTokens}},
		{"slippage above range", func(p *SwapParams) { p.Slippage = decimal.NewFromInt(60) }, []string{MsgSlippageRange}},
		{"negative slippage", func(p *SwapParams) { p.Slippage = decimal.NewFromInt(-1) }, []string{MsgSlippageRange}},
		{"zero amount", func(p *SwapParams) { p.Amount = "0" }, []string{MsgAmountNotPositive}},
		{"empty amount", func(p *SwapParams) { p.Amount = "" }, []string{MsgAmountNotPositive}},
		{"negative amount", func(p *SwapParams) { p.Amount = "-5" }, []string{MsgAmountNotPositive}},
		{"decimal amount", func(p *SwapParams) { p.Amount = "1.5" }, []string{MsgInvalidAmountFormat}},
		{"bad src", func(p *SwapParams) { p.SrcToken = "0x1234" }, []string{MsgInvalidSrcToken}},
		{"bad dst", func(p *SwapParams) { p.DstToken = "usdc" }, []string{MsgInvalidDstToken}},
		{"bad from", func(p *SwapParams) { p.FromAddress = "0xnope" }, []string{MsgInvalidFromAddress}},
		{"src without 0x prefix", func(p *SwapParams) {
			p.SrcToken = "a0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
			p.DstToken = asset.NativeTokenAddress
		}, []string{MsgInvalidSrcToken}},
		{"dst with broken checksum", func(p *SwapParams) {
			p.DstToken = "0xa0B86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
		}, []string{MsgInvalidDstToken}},
		{"uppercase dst", func(p *SwapParams) {
			p.DstToken = "0xA0B86991C6218B36C1D19D4A2E9EB0CE3606EB48"
		}, []string{}},
		{"everything at once", func(p *SwapParams) {
			p.DstToken = p.SrcToken
			p.Amount = "0"
			p.Slippage = decimal.NewFromInt(60)
		}, []string{MsgSameTokens, MsgAmountNotPositive, MsgSlippageRange}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validSwap()
			tt.mutate(&p)

			res := ValidateSwapParams(p)
			assert.Equal(t, len(tt.want) == 0, res.Valid)
			assert.Equal(t, tt.want, res.Errors)
		})
	}
}

func TestValidationResult_Err(t *testing.T) {
	p := validSwap()
	require.NoError(t, ValidateSwapParams(p).Err())

	p.DstToken = p.SrcToken
	p.Amount = "0"
	err := ValidateSwapParams(p).Err()
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidationError, apperror.GetCode(err))
	assert.Equal(t, "Validation failed: Source and destination tokens must be different, Amount must be greater than 0", err.Error())
}

func TestValidateApprovalParams(t *testing.T) {
	tests := []struct {
		name string
		p    ApprovalParams
		want []string
	}{
		{"valid", ApprovalParams{usdcAddr, router, "100"}, []string{}},
		{"empty amount is zero", ApprovalParams{usdcAddr, router, ""}, []string{}},
		{"native", ApprovalParams{asset.NativeTokenAddress, router, "1"}, []string{MsgNativeNoApproval}},
		{"bad token", ApprovalParams{"0x12", router, "1"}, []string{MsgInvalidTokenAddress}},
		{"bad spender", ApprovalParams{usdcAddr, "router", "1"}, []string{MsgInvalidSpender}},
		{"negative", ApprovalParams{usdcAddr, router, "-1"}, []string{MsgAmountNegative}},
		{"format", ApprovalParams{usdcAddr, router, "abc"}, []string{MsgInvalidAmountFormat}},
		{"all", ApprovalParams{"x", "y", "z"}, []string{MsgInvalidTokenAddress, MsgInvalidSpender, MsgInvalidAmountFormat}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateApprovalParams(tt.p)
			assert.Equal(t, len(tt.want) == 0, res.Valid)
			assert.Equal(t, tt.want, res.Errors)
		})
	}
}
