// Package node implements the workflow node surface: the action node that
// dispatches operations to the other bounded contexts and the polling
// trigger.
package node

import (
	"context"

	fusionDI "github.com/fd1az/oneinch-nodes/business/fusion/di"
	limitDI "github.com/fd1az/oneinch-nodes/business/limitorder/di"
	"github.com/fd1az/oneinch-nodes/business/node/app"
	nodeDI "github.com/fd1az/oneinch-nodes/business/node/di"
	portfolioDI "github.com/fd1az/oneinch-nodes/business/portfolio/di"
	pricingDI "github.com/fd1az/oneinch-nodes/business/pricing/di"
	swapDI "github.com/fd1az/oneinch-nodes/business/swap/di"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/di"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/monolith"
)

// Module implements the node bounded context. It depends on the swap,
// pricing, limitorder, fusion and portfolio modules.
type Module struct{}

// RegisterServices registers the executor, the trigger poller and the
// process licensing notice.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, nodeDI.Notice, func(sr di.ServiceRegistry) *app.Notice {
		return app.NewNotice(sr.Get("logger").(logger.LoggerInterface))
	})

	di.RegisterToken(c, nodeDI.Executor, func(sr di.ServiceRegistry) *app.Executor {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		services := app.Services{
			Swap:       swapDI.GetSwapService(sr),
			Market:     pricingDI.GetMarketService(sr),
			LimitOrder: limitDI.GetLimitOrderService(sr),
			Fusion:     fusionDI.GetFusionService(sr),
			Portfolio:  portfolioDI.GetPortfolioService(sr),
		}
		executor, err := app.NewExecutor(services, app.ConfigResolver(cfg), nodeDI.GetNotice(sr), log)
		if err != nil {
			panic("failed to create node executor: " + err.Error())
		}
		return executor
	})

	di.RegisterToken(c, nodeDI.Poller, func(sr di.ServiceRegistry) *app.Poller {
		cfg := sr.Get("config").(*config.Config)
		if cfg.Trigger.Event == "" {
			return nil
		}
		log := sr.Get("logger").(logger.LoggerInterface)

		poller, err := app.NewPollerFromConfig(cfg.Trigger, cfg.Policy.StaleAfter, pricingDI.GetMarketService(sr), nodeDI.GetNotice(sr), log)
		if err != nil {
			panic("failed to create trigger poller: " + err.Error())
		}
		return poller
	})

	return nil
}

// Startup emits the licensing notice and builds the executor.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	nodeDI.GetNotice(mono.Services()).Emit(ctx)
	nodeDI.GetExecutor(mono.Services())
	mono.Logger().Info(ctx, "node module started")
	return nil
}
