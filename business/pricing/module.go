// Package pricing implements the market data bounded context: spot prices,
// gas prices, token metadata and upstream health on the 1inch API.
package pricing

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/pricing/app"
	pricingDI "github.com/fd1az/oneinch-nodes/business/pricing/di"
	"github.com/fd1az/oneinch-nodes/business/pricing/infra/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/di"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/monolith"
)

// Module implements the pricing bounded context.
type Module struct{}

// RegisterServices registers all pricing services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, pricingDI.MarketClient, func(sr di.ServiceRegistry) *oneinch.Client {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := oneinch.NewClient(cfg.Transport(), log)
		if err != nil {
			panic("failed to create market data client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, pricingDI.MarketService, func(sr di.ServiceRegistry) *app.MarketService {
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("assetRegistry").(*asset.Registry)
		client := pricingDI.GetMarketClient(sr)

		return app.NewMarketService(client, client, client, client, registry, log)
	})

	return nil
}

// Startup initializes the pricing module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	pricingDI.GetMarketService(mono.Services())
	mono.Logger().Info(ctx, "pricing module started")
	return nil
}
