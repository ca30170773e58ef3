// Package di contains dependency injection tokens for the portfolio context.
package di

import (
	"github.com/fd1az/oneinch-nodes/business/portfolio/app"
	"github.com/fd1az/oneinch-nodes/internal/di"
)

// Public service tokens - exposed to other modules
var (
	PortfolioService = di.NewToken[*app.PortfolioService]("portfolio.PortfolioService")
)

// Private dependency tokens - internal to portfolio module
var (
	PortfolioAPI = di.NewToken[app.PortfolioAPI]("portfolio:portfolioAPI")
	BalanceAPI   = di.NewToken[app.BalanceAPI]("portfolio:balanceAPI")
)

// Helper functions for type-safe access
func GetPortfolioService(c di.ServiceRegistry) *app.PortfolioService {
	return di.GetToken(c, PortfolioService)
}

func GetPortfolioAPI(c di.ServiceRegistry) app.PortfolioAPI {
	return di.GetToken(c, PortfolioAPI)
}

func GetBalanceAPI(c di.ServiceRegistry) app.BalanceAPI {
	return di.GetToken(c, BalanceAPI)
}
