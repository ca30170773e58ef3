package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

// CrossChainQuoteParams are the inputs of a Fusion+ quote.
type CrossChainQuoteParams struct {
	SrcChain        uint64 `json:"srcChain"`
	DstChain        uint64 `json:"dstChain"`
	SrcTokenAddress string `json:"srcTokenAddress"`
	DstTokenAddress string `json:"dstTokenAddress"`
	Amount          string `json:"amount"`
	WalletAddress   string `json:"walletAddress"`
}

// Validate collects every invalid field into one VALIDATION_FAILED error.
func (p CrossChainQuoteParams) Validate() error {
	var errs []string
	if p.SrcChain == 0 || p.DstChain == 0 {
		errs = append(errs, "Source and destination chains are required")
	} else if p.SrcChain == p.DstChain {
		errs = append(errs, "Source and destination chains must be different")
	}
	if !common.IsHexAddress(p.SrcTokenAddress) {
		errs = append(errs, "Invalid source token address")
	}
	if !common.IsHexAddress(p.DstTokenAddress) {
		errs = append(errs, "Invalid destination token address")
	}
	if !isPositiveInt(p.Amount) {
		errs = append(errs, "Amount must be a positive integer")
	}
	if !common.IsHexAddress(p.WalletAddress) {
		errs = append(errs, "Invalid wallet address")
	}
	if len(errs) > 0 {
		return apperror.Validation(apperror.CodeValidationError, strings.Join(errs, ", "))
	}
	return nil
}

// CrossChainQuote is a Fusion+ quoter response.
type CrossChainQuote struct {
	QuoteID        string `json:"quoteId"`
	SrcChainID     uint64 `json:"srcChainId"`
	DstChainID     uint64 `json:"dstChainId"`
	SrcTokenAmount string `json:"srcTokenAmount"`
	DstTokenAmount string `json:"dstTokenAmount"`
	// EstimatedTime is in seconds.
	EstimatedTime int64  `json:"estimatedTime"`
	BridgeFee     string `json:"bridgeFee"`
}

// CrossChainOrderRequest is the Fusion+ relayer submission body.
type CrossChainOrderRequest struct {
	SrcOrder   SignedOrder `json:"srcOrder"`
	DstChainID uint64      `json:"dstChainId"`
}

// CrossChainOrderResponse is the Fusion+ relayer answer to a submission.
type CrossChainOrderResponse struct {
	OrderHash    string `json:"orderHash"`
	SrcOrderHash string `json:"srcOrderHash"`
}

// BridgeStatus is the state of the cross-chain leg.
type BridgeStatus string

const (
	BridgePending   BridgeStatus = "pending"
	BridgeCompleted BridgeStatus = "completed"
	BridgeFailed    BridgeStatus = "failed"
)

// CrossChainStatus is the Fusion+ relayer view of one order.
type CrossChainStatus struct {
	Status         Status       `json:"status"`
	SrcChainStatus OrderStatus  `json:"srcChainStatus"`
	DstChainStatus *OrderStatus `json:"dstChainStatus,omitempty"`
	BridgeStatus   BridgeStatus `json:"bridgeStatus,omitempty"`
}

// Settled reports whether both legs are done: the order is filled and the
// bridge, when reported, has completed.
func (s CrossChainStatus) Settled() bool {
	if s.Status != StatusFilled {
		return false
	}
	return s.BridgeStatus == "" || s.BridgeStatus == BridgeCompleted
}
