package domain

import (
	"math/big"
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	limitorder "github.com/fd1az/oneinch-nodes/business/limitorder/domain"
	"github.com/fd1az/oneinch-nodes/internal/asset"
)

var orderHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// ValidOrderHash reports whether h is a 0x-prefixed 32-byte hash.
func ValidOrderHash(h string) bool {
	return orderHashPattern.MatchString(h)
}

// Status is the relayer state of a Fusion order.
type Status string

const (
	StatusPending         Status = "pending"
	StatusFilled          Status = "filled"
	StatusPartiallyFilled Status = "partially-filled"
	StatusCancelled       Status = "cancelled"
	StatusExpired         Status = "expired"
)

// IsFinal reports whether the order can no longer change.
func (s Status) IsFinal() bool {
	switch s {
	case StatusFilled, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// SignedOrder is the relayer submission body.
type SignedOrder struct {
	Order     limitorder.Order `json:"order"`
	Signature string           `json:"signature"`
	QuoteID   string           `json:"quoteId"`
}

// SubmitResponse is the relayer answer to a submission.
type SubmitResponse struct {
	OrderHash string           `json:"orderHash"`
	Order     limitorder.Order `json:"order"`
}

// Fill is one on-chain fill of an order.
type Fill struct {
	TxHash            string `json:"txHash"`
	FilledMakerAmount string `json:"filledMakerAmount"`
	FilledTakerAmount string `json:"filledTakerAmount"`
}

// OrderStatus is the relayer view of one order.
type OrderStatus struct {
	Status           Status           `json:"status"`
	Order            limitorder.Order `json:"order"`
	Points           *int64           `json:"points,omitempty"`
	Fills            []Fill           `json:"fills"`
	AuctionStartTime int64            `json:"auctionStartTime"`
	AuctionDuration  int64            `json:"auctionDuration"`
	InitialRateBump  int64            `json:"initialRateBump"`
	CancelTx         string           `json:"cancelTx,omitempty"`
}

// FilledMakingAmount sums the maker amounts of all fills. Malformed fills
// count as zero.
func (o OrderStatus) FilledMakingAmount() *big.Int {
	total := new(big.Int)
	for _, f := range o.Fills {
		if v, err := asset.ParseRaw(f.FilledMakerAmount); err == nil {
			total.Add(total, v)
		}
	}
	return total
}

// FilledPercent is the filled share of the making amount with two decimals.
func (o OrderStatus) FilledPercent() decimal.Decimal {
	making, err := asset.ParseRaw(o.Order.MakingAmount)
	if err != nil || making.Sign() == 0 {
		return decimal.Zero
	}
	filled := decimal.NewFromBigInt(o.FilledMakingAmount(), 0)
	return filled.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromBigInt(making, 0)).Round(2)
}

// AuctionEnd is the time the Dutch auction reaches its floor. Zero when the
// relayer did not report a start.
func (o OrderStatus) AuctionEnd() time.Time {
	if o.AuctionStartTime <= 0 {
		return time.Time{}
	}
	return time.Unix(o.AuctionStartTime+o.AuctionDuration, 0).UTC()
}

// PageParams select a page of relayer orders. Zero values are omitted.
type PageParams struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// PageMeta describes a relayer page.
type PageMeta struct {
	TotalItems   int `json:"totalItems"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
}

// OrdersPage is one page of relayer orders.
type OrdersPage struct {
	Orders []OrderStatus `json:"orders"`
	Meta   PageMeta      `json:"meta"`
}

// Resolver is a whitelisted Fusion resolver.
type Resolver struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	Priority  int    `json:"priority"`
	Whitelist bool   `json:"whitelist"`
}
