// Package fusion implements the Fusion bounded context: gasless Dutch
// auction swaps and Fusion+ cross-chain swaps.
package fusion

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/fusion/app"
	fusionDI "github.com/fd1az/oneinch-nodes/business/fusion/di"
	"github.com/fd1az/oneinch-nodes/business/fusion/infra/oneinch"
	limitApp "github.com/fd1az/oneinch-nodes/business/limitorder/app"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/di"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/monolith"
)

// Module implements the Fusion bounded context.
type Module struct{}

// RegisterServices registers all Fusion services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, fusionDI.FusionAPI, func(sr di.ServiceRegistry) app.FusionAPI {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := oneinch.NewFusionClient(cfg.FusionTransport(), log)
		if err != nil {
			panic("failed to create fusion client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, fusionDI.CrossChainAPI, func(sr di.ServiceRegistry) app.CrossChainAPI {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := oneinch.NewCrossChainClient(cfg.FusionTransport(), log)
		if err != nil {
			panic("failed to create fusion+ client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, fusionDI.FusionService, func(sr di.ServiceRegistry) *app.FusionService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("assetRegistry").(*asset.Registry)

		// The Fusion credential key wins over the network key.
		hexKey := cfg.Fusion.PrivateKey
		if hexKey == "" {
			hexKey = cfg.Network.PrivateKey
		}
		key, err := limitApp.ParseKey(hexKey)
		if err != nil {
			panic("invalid fusion private key: " + err.Error())
		}
		return app.NewFusionService(
			fusionDI.GetFusionAPI(sr),
			fusionDI.GetCrossChainAPI(sr),
			registry,
			key,
			cfg.Fusion.ResolverMode,
			log,
		)
	})

	return nil
}

// Startup initializes the Fusion module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	fusionDI.GetFusionService(mono.Services())
	mono.Logger().Info(ctx, "fusion module started")
	return nil
}
