package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// OrderRecord is an order as stored by the orderbook.
type OrderRecord struct {
	OrderHash            string  `json:"orderHash"`
	Signature            string  `json:"signature"`
	CreateDateTime       string  `json:"createDateTime"`
	RemainingMakerAmount string  `json:"remainingMakerAmount"`
	MakerBalance         string  `json:"makerBalance"`
	MakerAllowance       string  `json:"makerAllowance"`
	Data                 Order   `json:"data"`
	MakerRate            string  `json:"makerRate"`
	TakerRate            string  `json:"takerRate"`
	IsMakerContract      bool    `json:"isMakerContract"`
	OrderInvalidReason   *string `json:"orderInvalidReason"`
}

// FilledPercent is the share of the making amount already filled, in percent.
func (r OrderRecord) FilledPercent() decimal.Decimal {
	making, ok := new(big.Int).SetString(r.Data.MakingAmount, 10)
	if !ok || making.Sign() == 0 {
		return decimal.Zero
	}
	remaining, ok := new(big.Int).SetString(r.RemainingMakerAmount, 10)
	if !ok {
		return decimal.Zero
	}
	filled := new(big.Int).Sub(making, remaining)
	return decimal.NewFromBigInt(filled, 0).Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromBigInt(making, 0), 2)
}

// PageMeta is the orderbook pagination block.
type PageMeta struct {
	TotalItems   int `json:"totalItems"`
	ItemCount    int `json:"itemCount"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
}

// OrdersPage is one page of orders.
type OrdersPage struct {
	Items []OrderRecord `json:"items"`
	Meta  PageMeta      `json:"meta"`
}

// Event types reported by the orderbook.
const (
	EventCreated  = "OrderCreated"
	EventFilled   = "OrderFilled"
	EventCanceled = "OrderCanceled"
	EventExpired  = "OrderExpired"
)

// Event is an order lifecycle event.
type Event struct {
	ID                   int64  `json:"id"`
	OrderHash            string `json:"orderHash"`
	Type                 string `json:"type"`
	CreateDateTime       string `json:"createDateTime"`
	TransactionHash      string `json:"transactionHash,omitempty"`
	Maker                string `json:"maker,omitempty"`
	Taker                string `json:"taker,omitempty"`
	MakerAmount          string `json:"makerAmount,omitempty"`
	TakerAmount          string `json:"takerAmount,omitempty"`
	RemainingMakerAmount string `json:"remainingMakerAmount,omitempty"`
}

// CreateOrderRequest is the body of an order submission.
type CreateOrderRequest struct {
	OrderHash string `json:"orderHash"`
	Signature string `json:"signature"`
	Data      Order  `json:"data"`
}

// CreateOrderResponse is the orderbook's answer to a submission.
type CreateOrderResponse struct {
	Success   bool   `json:"success"`
	OrderHash string `json:"orderHash,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ListParams filter and page order listings. Zero values are omitted.
type ListParams struct {
	Page       int    `json:"page,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	MakerAsset string `json:"makerAsset,omitempty"`
	TakerAsset string `json:"takerAsset,omitempty"`
	Statuses   string `json:"statuses,omitempty"`
}

// Sort keys accepted by the all-orders listing.
const (
	SortByCreateDateTime = "createDateTime"
	SortByTakerRate      = "takerRate"
	SortByMakerRate      = "makerRate"
)
