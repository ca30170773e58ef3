package app

import (
	"encoding/json"

	"github.com/fd1az/oneinch-nodes/business/swap/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// QuoteResult is the output record of a quote.
type QuoteResult struct {
	network.Ref
	SrcToken           *domain.TokenInfo `json:"srcToken,omitempty"`
	DstToken           *domain.TokenInfo `json:"dstToken,omitempty"`
	SrcAmount          string            `json:"srcAmount"`
	SrcAmountFormatted string            `json:"srcAmountFormatted"`
	DstAmount          string            `json:"dstAmount"`
	DstAmountFormatted string            `json:"dstAmountFormatted"`
	ExchangeRate       string            `json:"exchangeRate"`
	Gas                uint64            `json:"gas"`
	GasFormatted       string            `json:"gasFormatted"`
	Protocols          json.RawMessage   `json:"protocols,omitempty"`
}

// SwapResult is the output record of a swap calldata request.
type SwapResult struct {
	network.Ref
	SrcToken           *domain.TokenInfo  `json:"srcToken,omitempty"`
	DstToken           *domain.TokenInfo  `json:"dstToken,omitempty"`
	SrcAmount          string             `json:"srcAmount"`
	SrcAmountFormatted string             `json:"srcAmountFormatted"`
	DstAmount          string             `json:"dstAmount"`
	DstAmountFormatted string             `json:"dstAmountFormatted"`
	MinReturnAmount    string             `json:"minReturnAmount"`
	MinReturnFormatted string             `json:"minReturnFormatted"`
	Slippage           string             `json:"slippage"`
	Flags              uint               `json:"flags"`
	Protocols          json.RawMessage    `json:"protocols,omitempty"`
	Tx                 domain.Transaction `json:"tx"`
	GasFormatted       string             `json:"gasFormatted"`
}

// AllowanceResult reports an allowance against an optional required amount.
type AllowanceResult struct {
	network.Ref
	TokenAddress       string `json:"tokenAddress"`
	Owner              string `json:"walletAddress"`
	Spender            string `json:"spender,omitempty"`
	Allowance          string `json:"allowance"`
	AllowanceFormatted string `json:"allowanceFormatted"`
	IsUnlimited        bool   `json:"isUnlimited"`
	RequiredAmount     string `json:"requiredAmount,omitempty"`
	IsSufficient       *bool  `json:"isSufficient,omitempty"`
	Source             string `json:"source"` // api or rpc
}

// ApprovalResult is an approve transaction to sign.
type ApprovalResult struct {
	network.Ref
	To              string `json:"to"`
	Data            string `json:"data"`
	Value           string `json:"value"`
	GasPrice        string `json:"gasPrice,omitempty"`
	Spender         string `json:"spender,omitempty"`
	Amount          string `json:"amount,omitempty"`
	AmountFormatted string `json:"amountFormatted,omitempty"`
	Strategy        string `json:"strategy,omitempty"`
	IsUnlimited     bool   `json:"isUnlimited"`
	EstimatedGas    uint64 `json:"estimatedGas"`
}

// SpenderResult carries the router address.
type SpenderResult struct {
	network.Ref
	Address string `json:"address"`
}

// LiquiditySourcesResult lists a chain's liquidity sources.
type LiquiditySourcesResult struct {
	network.Ref
	Count     int                      `json:"count"`
	Protocols []domain.LiquiditySource `json:"protocols"`
}

// TokenListResult lists the tokens the router supports.
type TokenListResult struct {
	network.Ref
	Count  int                `json:"count"`
	Tokens []domain.TokenInfo `json:"tokens"`
}

// RouteResult is a locally computed route analysis.
type RouteResult struct {
	network.Ref
	domain.RouteAnalysis
	ValidPath bool `json:"validPath"`
}
