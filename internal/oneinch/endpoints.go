package oneinch

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the 1inch developer portal API host.
const DefaultBaseURL = "https://api.1inch.dev"

// Endpoint templates. {chainId} and other {name} placeholders are filled by Path.
const (
	SwapQuote              = "/swap/v6.0/{chainId}/quote"
	SwapSwap               = "/swap/v6.0/{chainId}/swap"
	SwapApproveTransaction = "/swap/v6.0/{chainId}/approve/transaction"
	SwapApproveAllowance   = "/swap/v6.0/{chainId}/approve/allowance"
	SwapApproveSpender     = "/swap/v6.0/{chainId}/approve/spender"
	SwapLiquiditySources   = "/swap/v6.0/{chainId}/liquidity-sources"
	SwapTokens             = "/swap/v6.0/{chainId}/tokens"

	FusionQuote         = "/fusion/quoter/v2.0/{chainId}/quote/receive"
	FusionQuoteAll      = "/fusion/quoter/v2.0/{chainId}/quote/all"
	FusionReadyToAccept = "/fusion/quoter/v2.0/{chainId}/quote/ready-to-accept"
	FusionOrder         = "/fusion/relayer/v2.0/{chainId}/order"
	FusionOrderStatus   = "/fusion/relayer/v2.0/{chainId}/order/status/{orderHash}"
	FusionOrdersByMaker = "/fusion/relayer/v2.0/{chainId}/order/maker/{address}"
	FusionActiveOrders  = "/fusion/relayer/v2.0/{chainId}/order/active"
	FusionResolvers     = "/fusion/resolver/v1.0/{chainId}/resolvers"

	FusionPlusQuote       = "/fusion-plus/quoter/v1.0/quote/receive"
	FusionPlusOrder       = "/fusion-plus/relayer/v1.0/order"
	FusionPlusOrderStatus = "/fusion-plus/relayer/v1.0/order/status/{orderHash}"

	OrderbookOrder           = "/orderbook/v4.0/{chainId}/"
	OrderbookAll             = "/orderbook/v4.0/{chainId}/all"
	OrderbookCount           = "/orderbook/v4.0/{chainId}/count"
	OrderbookEvents          = "/orderbook/v4.0/{chainId}/events"
	OrderbookEventsByOrder   = "/orderbook/v4.0/{chainId}/events/{orderHash}"
	OrderbookByAddress       = "/orderbook/v4.0/{chainId}/address/{address}"
	OrderbookHasActiveOrders = "/orderbook/v4.0/{chainId}/has-active-orders-with-permit/{walletAddress}/{tokenAddress}"

	PriceSpot      = "/price/v1.1/{chainId}"
	PriceSpotMulti = "/price/v1.1/{chainId}/{addresses}"

	TokenSearch = "/token/v1.2/{chainId}/search"
	TokenInfo   = "/token/v1.2/{chainId}/{address}"
	TokenCustom = "/token/v1.2/{chainId}/custom"

	PortfolioProfitAndLoss   = "/portfolio/portfolio/v4/overview/erc20/profit_and_loss"
	PortfolioDetails         = "/portfolio/portfolio/v4/overview/erc20/details"
	PortfolioCurrentValue    = "/portfolio/portfolio/v4/overview/erc20/current_value"
	PortfolioSupportedChains = "/portfolio/portfolio/v4/general/supported_chains"

	BalanceAll   = "/balance/v1.2/{chainId}/balances/{address}"
	BalanceToken = "/balance/v1.2/{chainId}/balance/{address}/{tokenAddress}"

	GasPrice = "/gas-price/v1.5/{chainId}"

	HealthCheck = "/healthcheck"
)

// Path fills {chainId} and the named placeholders given as key/value pairs.
// Values are path-escaped, commas are kept so address lists stay readable.
func Path(template string, chainID uint64, kv ...string) string {
	pairs := make([]string, 0, len(kv)+2)
	pairs = append(pairs, "{chainId}", strconv.FormatUint(chainID, 10))
	for i := 0; i+1 < len(kv); i += 2 {
		v := strings.ReplaceAll(url.PathEscape(kv[i+1]), "%2C", ",")
		pairs = append(pairs, "{"+kv[i]+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
