// Package swap implements the swap bounded context: quotes, swap calldata,
// routes and approvals on the 1inch aggregation API.
package swap

import (
	"context"

	"github.com/fd1az/oneinch-nodes/business/swap/app"
	"github.com/fd1az/oneinch-nodes/business/swap/domain"
	swapDI "github.com/fd1az/oneinch-nodes/business/swap/di"
	"github.com/fd1az/oneinch-nodes/business/swap/infra/ethereum"
	"github.com/fd1az/oneinch-nodes/business/swap/infra/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/di"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/monolith"
)

// Module implements the swap bounded context.
type Module struct{}

// RegisterServices registers all swap services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, swapDI.AggregationAPI, func(sr di.ServiceRegistry) app.AggregationAPI {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := oneinch.NewClient(cfg.Transport(), log)
		if err != nil {
			panic("failed to create aggregation client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, swapDI.AllowanceReader, func(sr di.ServiceRegistry) app.AllowanceReader {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		rpcURL := cfg.Network.RPCURL
		if rpcURL == "" && cfg.Network.CustomRPCURL != "" {
			rpcURL = cfg.Network.CustomRPCURL
		}
		return ethereum.NewAllowanceChecker(ethereum.DialEthClient, rpcURL,
			cfg.Breaker.CircuitBreaker("erc20-allowance"), log)
	})

	di.RegisterToken(c, swapDI.SwapService, func(sr di.ServiceRegistry) *app.SwapService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("assetRegistry").(*asset.Registry)

		return app.NewSwapService(
			swapDI.GetAggregationAPI(sr),
			swapDI.GetAllowanceReader(sr),
			registry,
			Settings(cfg),
			log,
		)
	})

	return nil
}

// Settings maps the policy section onto swap settings.
func Settings(cfg *config.Config) app.Settings {
	s := app.DefaultSettings()
	p := cfg.Policy
	if p.InfiniteApprovalExponent > 0 {
		s.Policy = domain.NewPolicy(p.InfiniteApprovalExponent)
	}
	if p.BaseGas > 0 {
		s.GasWeights.Base = p.BaseGas
	}
	if p.GasPerHop > 0 {
		s.GasWeights.PerStep = p.GasPerHop
	}
	if p.GasPerProtocol > 0 {
		s.GasWeights.PerProtocol = p.GasPerProtocol
	}
	return s
}

// Startup initializes the swap module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	swapDI.GetSwapService(mono.Services())
	if checker, ok := swapDI.GetAllowanceReader(mono.Services()).(*ethereum.AllowanceChecker); ok {
		mono.OnClose(checker.Close)
	}
	mono.Logger().Info(ctx, "swap module started")
	return nil
}
