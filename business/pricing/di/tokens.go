// Package di contains dependency injection tokens for the pricing context.
package di

import (
	"github.com/fd1az/oneinch-nodes/business/pricing/app"
	"github.com/fd1az/oneinch-nodes/business/pricing/infra/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/di"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.MarketService]("pricing.MarketService")
)

// Private dependency tokens - internal to pricing module
var (
	MarketClient = di.NewToken[*oneinch.Client]("pricing:marketClient")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.MarketService {
	return di.GetToken(c, MarketService)
}

func GetMarketClient(c di.ServiceRegistry) *oneinch.Client {
	return di.GetToken(c, MarketClient)
}
