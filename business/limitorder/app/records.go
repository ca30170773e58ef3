package app

import (
	"github.com/fd1az/oneinch-nodes/business/limitorder/domain"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// BuildOrderResult is the output record of a locally built order.
type BuildOrderResult struct {
	network.Ref
	Order                 domain.Order `json:"order"`
	OrderHash             string       `json:"orderHash"`
	Signature             string       `json:"signature,omitempty"`
	Signed                bool         `json:"signed"`
	VerifyingContract     string       `json:"verifyingContract"`
	MakingAmountFormatted string       `json:"makingAmountFormatted"`
	TakingAmountFormatted string       `json:"takingAmountFormatted"`
	MakerRate             string       `json:"makerRate"`
	TakerRate             string       `json:"takerRate"`
	Expiry                int64        `json:"expiry"`
}

// CreateOrderResult is the output record of an order submission.
type CreateOrderResult struct {
	network.Ref
	Success   bool   `json:"success"`
	OrderHash string `json:"orderHash"`
	Error     string `json:"error,omitempty"`
}

// OrderView is an orderbook order with its fill progress.
type OrderView struct {
	domain.OrderRecord
	FilledPercent string `json:"filledPercent"`
}

// OrdersResult is the output record of an order listing.
type OrdersResult struct {
	network.Ref
	Count  int             `json:"count"`
	Meta   domain.PageMeta `json:"meta"`
	Orders []OrderView     `json:"orders"`
}

// OrderCountResult is the output record of an order count.
type OrderCountResult struct {
	network.Ref
	Statuses string `json:"statuses,omitempty"`
	Count    int    `json:"count"`
}

// EventsResult is the output record of an event listing.
type EventsResult struct {
	network.Ref
	OrderHash string         `json:"orderHash,omitempty"`
	Count     int            `json:"count"`
	Events    []domain.Event `json:"events"`
}

// ActiveOrdersResult is the output record of the active-orders-with-permit check.
type ActiveOrdersResult struct {
	network.Ref
	WalletAddress   string `json:"walletAddress"`
	TokenAddress    string `json:"tokenAddress"`
	HasActiveOrders bool   `json:"hasActiveOrders"`
}
