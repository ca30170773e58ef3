// Package limitorder implements the limit order bounded context: building,
// signing and submitting orders and reading the 1inch orderbook.
package limitorder

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/limitorder/app"
	limitDI "github.com/fd1az/oneinch-nodes/business/limitorder/di"
	"github.com/fd1az/oneinch-nodes/business/limitorder/infra/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/di"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/monolith"
)

// Module implements the limit order bounded context.
type Module struct{}

// RegisterServices registers all limit order services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, limitDI.OrderbookAPI, func(sr di.ServiceRegistry) app.OrderbookAPI {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := oneinch.NewClient(cfg.Transport(), log)
		if err != nil {
			panic("failed to create orderbook client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, limitDI.LimitOrderService, func(sr di.ServiceRegistry) *app.LimitOrderService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("assetRegistry").(*asset.Registry)

		// Config validation has already rejected malformed keys.
		key, err := app.ParseKey(cfg.Network.PrivateKey)
		if err != nil {
			panic("invalid network private key: " + err.Error())
		}
		return app.NewLimitOrderService(limitDI.GetOrderbookAPI(sr), registry, key, log)
	})

	return nil
}

// Startup initializes the limit order module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	limitDI.GetLimitOrderService(mono.Services())
	mono.Logger().Info(ctx, "limit order module started")
	return nil
}
