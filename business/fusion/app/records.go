package app

import (
	"github.com/fd1az/oneinch-nodes/business/fusion/domain"
	limitorder "github.com/fd1az/oneinch-nodes/business/limitorder/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// Auction summarizes the recommended preset of a quote.
type Auction struct {
	Preset                      string `json:"preset"`
	AuctionDuration             int64  `json:"auctionDuration"`
	StartAuctionIn              int64  `json:"startAuctionIn"`
	InitialRateBump             int64  `json:"initialRateBump"`
	AuctionStartAmount          string `json:"auctionStartAmount"`
	AuctionStartAmountFormatted string `json:"auctionStartAmountFormatted"`
	AuctionEndAmount            string `json:"auctionEndAmount"`
	AuctionEndAmountFormatted   string `json:"auctionEndAmountFormatted"`
}

// QuoteResult is the output record of a Fusion quote.
type QuoteResult struct {
	network.Ref
	QuoteID                  string         `json:"quoteId"`
	FromTokenAmount          string         `json:"fromTokenAmount"`
	FromTokenAmountFormatted string         `json:"fromTokenAmountFormatted"`
	ToTokenAmount            string         `json:"toTokenAmount"`
	ToTokenAmountFormatted   string         `json:"toTokenAmountFormatted"`
	FeeToken                 string         `json:"feeToken"`
	EstimatedGas             int64          `json:"estimatedGas"`
	Presets                  domain.Presets `json:"presets"`
	RecommendedPreset        string         `json:"recommendedPreset"`
	SettlementAddress        string         `json:"settlementAddress"`
	Whitelist                []string       `json:"whitelist"`
	Auction                  *Auction       `json:"auction,omitempty"`
}

// QuotesResult is the output record of the all-quotes call.
type QuotesResult struct {
	network.Ref
	Count  int           `json:"count"`
	Quotes []QuoteResult `json:"quotes"`
}

// ReadyResult is the output record of the ready-to-accept check.
type ReadyResult struct {
	network.Ref
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// SubmitResult is the output record of a Fusion order submission.
type SubmitResult struct {
	network.Ref
	OrderHash string           `json:"orderHash"`
	QuoteID   string           `json:"quoteId"`
	Signed    bool             `json:"signed"`
	Order     limitorder.Order `json:"order"`
}

// OrderStatusResult is the output record of an order status lookup.
type OrderStatusResult struct {
	network.Ref
	OrderHash string `json:"orderHash"`
	domain.OrderStatus
	FilledMakingAmount string `json:"filledMakingAmount"`
	FilledPercent      string `json:"filledPercent"`
	Final              bool   `json:"final"`
	AuctionEndTime     string `json:"auctionEndTime,omitempty"`
}

// OrdersResult is the output record of an order listing.
type OrdersResult struct {
	network.Ref
	Count  int                  `json:"count"`
	Meta   domain.PageMeta      `json:"meta"`
	Orders []domain.OrderStatus `json:"orders"`
}

// ResolversResult is the output record of the resolver listing.
type ResolversResult struct {
	network.Ref
	Count     int               `json:"count"`
	Resolvers []domain.Resolver `json:"resolvers"`
}

// CrossChainQuoteResult is the output record of a Fusion+ quote.
type CrossChainQuoteResult struct {
	QuoteID                 string `json:"quoteId"`
	SrcChainID              uint64 `json:"srcChainId"`
	SrcNetwork              string `json:"srcNetwork"`
	DstChainID              uint64 `json:"dstChainId"`
	DstNetwork              string `json:"dstNetwork"`
	SrcTokenAmount          string `json:"srcTokenAmount"`
	SrcTokenAmountFormatted string `json:"srcTokenAmountFormatted"`
	DstTokenAmount          string `json:"dstTokenAmount"`
	DstTokenAmountFormatted string `json:"dstTokenAmountFormatted"`
	EstimatedTime           int64  `json:"estimatedTime"`
	BridgeFee               string `json:"bridgeFee"`
}

// CrossChainSubmitResult is the output record of a Fusion+ submission.
type CrossChainSubmitResult struct {
	network.Ref
	DstChainID   uint64 `json:"dstChainId"`
	OrderHash    string `json:"orderHash"`
	SrcOrderHash string `json:"srcOrderHash"`
	QuoteID      string `json:"quoteId"`
	Signed       bool   `json:"signed"`
}

// CrossChainStatusResult is the output record of a Fusion+ status lookup.
type CrossChainStatusResult struct {
	OrderHash string `json:"orderHash"`
	domain.CrossChainStatus
	IsSettled bool `json:"settled"`
}
