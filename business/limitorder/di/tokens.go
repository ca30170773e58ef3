// Package di contains dependency injection tokens for the limit order context.
package di

import (
	"github.com/fd1az/oneinch-nodes/business/limitorder/app"
	"github.com/fd1az/oneinch-nodes/internal/di"
)

// Public service tokens - exposed to other modules
var (
	LimitOrderService = di.NewToken[*app.LimitOrderService]("limitorder.LimitOrderService")
)

// Private dependency tokens - internal to limit order module
var (
	OrderbookAPI = di.NewToken[app.OrderbookAPI]("limitorder:orderbookAPI")
)

// Helper functions for type-safe access
func GetLimitOrderService(c di.ServiceRegistry) *app.LimitOrderService {
	return di.GetToken(c, LimitOrderService)
}

func GetOrderbookAPI(c di.ServiceRegistry) app.OrderbookAPI {
	return di.GetToken(c, OrderbookAPI)
}
