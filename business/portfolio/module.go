// Package portfolio implements the portfolio bounded context: wallet
// profit and loss, positions, value and token balances.
package portfolio

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/portfolio/app"
	portfolioDI "github.com/fd1az/oneinch-nodes/business/portfolio/di"
	"github.com/fd1az/oneinch-nodes/business/portfolio/infra/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/di"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/monolith"
)

// Module implements the portfolio bounded context.
type Module struct{}

// RegisterServices registers all portfolio services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, portfolioDI.PortfolioAPI, func(sr di.ServiceRegistry) app.PortfolioAPI {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := oneinch.NewPortfolioClient(cfg.Transport(), log)
		if err != nil {
			panic("failed to create portfolio client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, portfolioDI.BalanceAPI, func(sr di.ServiceRegistry) app.BalanceAPI {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := oneinch.NewBalanceClient(cfg.Transport(), log)
		if err != nil {
			panic("failed to create balance client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, portfolioDI.PortfolioService, func(sr di.ServiceRegistry) *app.PortfolioService {
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("assetRegistry").(*asset.Registry)

		return app.NewPortfolioService(portfolioDI.GetPortfolioAPI(sr), portfolioDI.GetBalanceAPI(sr), registry, log)
	})

	return nil
}

// Startup initializes the portfolio module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	portfolioDI.GetPortfolioService(mono.Services())
	mono.Logger().Info(ctx, "portfolio module started")
	return nil
}
