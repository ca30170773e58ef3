// Package di contains dependency injection tokens for the Fusion context.
package di

import (
	"github.com/fd1az/oneinch-nodes/business/fusion/app"
	"github.com/fd1az/oneinch-nodes/internal/di"
)

// Public service tokens - exposed to other modules
var (
	FusionService = di.NewToken[*app.FusionService]("fusion.FusionService")
)

// Private dependency tokens - internal to Fusion module
var (
	FusionAPI     = di.NewToken[app.FusionAPI]("fusion:fusionAPI")
	CrossChainAPI = di.NewToken[app.CrossChainAPI]("fusion:crossChainAPI")
)

// Helper functions for type-safe access
func GetFusionService(c di.ServiceRegistry) *app.FusionService {
	return di.GetToken(c, FusionService)
}

func GetFusionAPI(c di.ServiceRegistry) app.FusionAPI {
	return di.GetToken(c, FusionAPI)
}

func GetCrossChainAPI(c di.ServiceRegistry) app.CrossChainAPI {
	return di.GetToken(c, CrossChainAPI)
}
