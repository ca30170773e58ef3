package asset

// Chain IDs with a common token table.
const (
	ChainIDEthereum  = 1
	ChainIDOptimism  = 10
	ChainIDBSC       = 56
	ChainIDPolygon   = 137
	ChainIDBase      = 8453
	ChainIDArbitrum  = 42161
	ChainIDAvalanche = 43114
)

func commonTokens() []*Asset {
	return []*Asset{
		// Ethereum
		NewNative(ChainIDEthereum, "ETH", "Ether", 18),
		NewToken(ChainIDEthereum, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", "WETH", "Wrapped Ether", 18),
		NewToken(ChainIDEthereum, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", "USDC", "USD Coin", 6),
		NewToken(ChainIDEthereum, "0xdAC17F958D2ee523a2206206994597C13D831ec7", "USDT", "Tether USD", 6),
		NewToken(ChainIDEthereum, "0x6B175474E89094C44Da98b954EedeAC495271d0F", "DAI", "Dai Stablecoin", 18),
		NewToken(ChainIDEthereum, "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", "WBTC", "Wrapped BTC", 8),
		NewToken(ChainIDEthereum, "0x111111111117dC0aa78b770fA6A738034120C302", "1INCH", "1inch", 18),
		NewToken(ChainIDEthereum, "0x514910771AF9Ca656af840dff83E8264EcF986CA", "LINK", "Chainlink", 18),
		NewToken(ChainIDEthereum, "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", "UNI", "Uniswap", 18),
		NewToken(ChainIDEthereum, "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", "AAVE", "Aave", 18),

		// Polygon
		NewNative(ChainIDPolygon, "MATIC", "Polygon", 18),
		NewToken(ChainIDPolygon, "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", "WMATIC", "Wrapped Matic", 18),
		NewToken(ChainIDPolygon, "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", "USDC", "USD Coin (PoS)", 6),
		NewToken(ChainIDPolygon, "0xc2132D05D31c914a87C6611C10748AEb04B58e8F", "USDT", "Tether USD (PoS)", 6),
		NewToken(ChainIDPolygon, "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063", "DAI", "Dai Stablecoin (PoS)", 18),
		NewToken(ChainIDPolygon, "0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619", "WETH", "Wrapped Ether", 18),
		NewToken(ChainIDPolygon, "0x1BFD67037B42Cf73acF2047067bd4F2C47D9BfD6", "WBTC", "Wrapped BTC", 8),

		// BNB Chain
		NewNative(ChainIDBSC, "BNB", "BNB", 18),
		NewToken(ChainIDBSC, "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c", "WBNB", "Wrapped BNB", 18),
		NewToken(ChainIDBSC, "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", "USDC", "USD Coin", 18),
		NewToken(ChainIDBSC, "0x55d398326f99059fF775485246999027B3197955", "USDT", "Tether USD", 18),
		NewToken(ChainIDBSC, "0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56", "BUSD", "Binance USD", 18),
		NewToken(ChainIDBSC, "0x2170Ed0880ac9A755fd29B2688956BD959F933F8", "ETH", "Ethereum Token", 18),
		NewToken(ChainIDBSC, "0x7130d2A12B9BCbFAe4f2634d864A1Ee1Ce3Ead9c", "BTCB", "BTCB Token", 18),

		// Arbitrum
		NewNative(ChainIDArbitrum, "ETH", "Ether", 18),
		NewToken(ChainIDArbitrum, "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", "WETH", "Wrapped Ether", 18),
		NewToken(ChainIDArbitrum, "0xaf88d065e77c8cC2239327C5EDb3A432268e5831", "USDC", "USD Coin", 6),
		NewToken(ChainIDArbitrum, "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", "USDT", "Tether USD", 6),
		NewToken(ChainIDArbitrum, "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", "DAI", "Dai Stablecoin", 18),
		NewToken(ChainIDArbitrum, "0x2f2a2543B76A4166549F7aaB2e75Bef0aefC5B0f", "WBTC", "Wrapped BTC", 8),
		NewToken(ChainIDArbitrum, "0x912CE59144191C1204E64559FE8253a0e49E6548", "ARB", "Arbitrum", 18),

		// Optimism
		NewNative(ChainIDOptimism, "ETH", "Ether", 18),
		NewToken(ChainIDOptimism, "0x4200000000000000000000000000000000000006", "WETH", "Wrapped Ether", 18),
		NewToken(ChainIDOptimism, "0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", "USDC", "USD Coin", 6),
		NewToken(ChainIDOptimism, "0x94b008aA00579c1307B0EF2c499aD98a8ce58e58", "USDT", "Tether USD", 6),
		NewToken(ChainIDOptimism, "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", "DAI", "Dai Stablecoin", 18),
		NewToken(ChainIDOptimism, "0x4200000000000000000000000000000000000042", "OP", "Optimism", 18),

		// Avalanche
		NewNative(ChainIDAvalanche, "AVAX", "Avalanche", 18),
		NewToken(ChainIDAvalanche, "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7", "WAVAX", "Wrapped AVAX", 18),
		NewToken(ChainIDAvalanche, "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E", "USDC", "USD Coin", 6),
		NewToken(ChainIDAvalanche, "0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7", "USDT", "Tether USD", 6),

		// Base
		NewNative(ChainIDBase, "ETH", "Ether", 18),
		NewToken(ChainIDBase, "0x4200000000000000000000000000000000000006", "WETH", "Wrapped Ether", 18),
		NewToken(ChainIDBase, "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", "USDC", "USD Coin", 6),
		NewToken(ChainIDBase, "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb", "DAI", "Dai Stablecoin", 18),
	}
}

// DefaultRegistry returns a registry pre-populated with the common tokens of
// every chain that has a token table.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, a := range commonTokens() {
		r.Register(a)
	}
	return r
}
