// Package di contains dependency injection tokens for the swap context.
package di

import (
	"github.com/fd1az/oneinch-nodes/business/swap/app"
	"github.com/fd1az/oneinch-nodes/internal/di"
)

// Public service tokens - exposed to other modules
var (
	SwapService = di.NewToken[*app.SwapService]("swap.SwapService")
)

// Private dependency tokens - internal to swap module
var (
	AggregationAPI  = di.NewToken[app.AggregationAPI]("swap:aggregationAPI")
	AllowanceReader = di.NewToken[app.AllowanceReader]("swap:allowanceReader")
)

// Helper functions for type-safe access
func GetSwapService(c di.ServiceRegistry) *app.SwapService {
	return di.GetToken(c, SwapService)
}

func GetAggregationAPI(c di.ServiceRegistry) app.AggregationAPI {
	return di.GetToken(c, AggregationAPI)
}

func GetAllowanceReader(c di.ServiceRegistry) app.AllowanceReader {
	return di.GetToken(c, AllowanceReader)
}
