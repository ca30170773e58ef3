package network

// LiquiditySource is one DEX or lending venue the aggregator can route through.
type LiquiditySource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Protocol identifiers that appear in route responses.
const (
	ProtocolUniswapV2  = "UNISWAP_V2"
	ProtocolUniswapV3  = "UNISWAP_V3"
	ProtocolSushiswap  = "SUSHISWAP"
	ProtocolCurve      = "CURVE"
	ProtocolCurveV2    = "CURVE_V2"
	ProtocolBalancer   = "BALANCER"
	ProtocolBalancerV2 = "BALANCER_V2"
	ProtocolBancor     = "BANCOR"
	ProtocolBancorV3   = "BANCOR_V3"
	ProtocolKyber      = "KYBER"
	ProtocolKyberDMM   = "KYBER_DMM"
	ProtocolDodo       = "DODO"
	ProtocolDodoV2     = "DODO_V2"
	ProtocolMooniswap  = "MOONISWAP"
	ProtocolCompound   = "COMPOUND"
	ProtocolAave       = "AAVE"
	ProtocolAaveV2     = "AAVE_V2"
	ProtocolAaveV3     = "AAVE_V3"
	ProtocolMakerPSM   = "MAKER_PSM"
	ProtocolLido       = "LIDO"
	ProtocolSynthetix  = "SYNTHETIX"
	ProtocolPMM        = "PMM"
	ProtocolPMM2       = "PMM2"
	ProtocolPMM3       = "PMM3"
	ProtocolPMM4       = "PMM4"
)

func src(pairs ...string) []LiquiditySource {
	out := make([]LiquiditySource, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, LiquiditySource{ID: pairs[i], Name: pairs[i+1]})
	}
	return out
}

var liquiditySources = map[uint64][]LiquiditySource{
	1: src(
		"UNISWAP_V2", "Uniswap V2", "UNISWAP_V3", "Uniswap V3", "SUSHISWAP", "SushiSwap",
		"CURVE", "Curve", "CURVE_V2", "Curve V2", "BALANCER", "Balancer", "BALANCER_V2", "Balancer V2",
		"0X", "0x", "KYBER", "Kyber", "KYBER_DMM", "Kyber DMM", "BANCOR", "Bancor", "BANCOR_V3", "Bancor V3",
		"DODO", "DODO", "DODO_V2", "DODO V2", "MOONISWAP", "Mooniswap", "SHIBASWAP", "ShibaSwap",
		"CLIPPER", "Clipper", "LIDO", "Lido", "MAKER_PSM", "Maker PSM", "AAVE_V2", "Aave V2",
		"AAVE_V3", "Aave V3", "COMPOUND", "Compound", "SYNTHETIX", "Synthetix", "ROCKET_POOL", "Rocket Pool",
		"FRAX", "Frax", "MAVERICK", "Maverick", "PANCAKESWAP_V3", "PancakeSwap V3",
	),
	137: src(
		"QUICKSWAP", "QuickSwap", "QUICKSWAP_V3", "QuickSwap V3", "SUSHISWAP", "SushiSwap",
		"UNISWAP_V3", "Uniswap V3", "CURVE", "Curve", "BALANCER_V2", "Balancer V2", "DODO", "DODO",
		"DODO_V2", "DODO V2", "DFYN", "Dfyn", "WAULTSWAP", "WaultSwap", "APESWAP", "ApeSwap",
		"AAVE_V2", "Aave V2", "AAVE_V3", "Aave V3", "MESHSWAP", "MeshSwap",
	),
	56: src(
		"PANCAKESWAP", "PancakeSwap", "PANCAKESWAP_V3", "PancakeSwap V3", "SUSHISWAP", "SushiSwap",
		"BISWAP", "BiSwap", "DODO", "DODO", "DODO_V2", "DODO V2", "BAKERYSWAP", "BakerySwap",
		"APESWAP", "ApeSwap", "WAULTSWAP", "WaultSwap", "VENUS", "Venus", "ELLIPSIS", "Ellipsis",
		"NERVE", "Nerve", "THENA", "THENA", "UNISWAP_V3", "Uniswap V3",
	),
	42161: src(
		"UNISWAP_V3", "Uniswap V3", "SUSHISWAP", "SushiSwap", "CURVE", "Curve", "BALANCER_V2", "Balancer V2",
		"CAMELOT", "Camelot", "CAMELOT_V3", "Camelot V3", "GMX", "GMX", "ZYBERSWAP", "ZyberSwap",
		"TRADERJOE_V2", "Trader Joe V2", "DODO", "DODO", "DODO_V2", "DODO V2", "AAVE_V3", "Aave V3",
		"RAMSES", "Ramses",
	),
	10: src(
		"UNISWAP_V3", "Uniswap V3", "VELODROME", "Velodrome", "VELODROME_V2", "Velodrome V2",
		"CURVE", "Curve", "BEETHOVENX", "Beethoven X", "SYNTHETIX", "Synthetix", "ZIPSWAP", "ZipSwap",
		"SUSHISWAP", "SushiSwap", "AAVE_V3", "Aave V3", "KYBERSWAP", "KyberSwap",
	),
	43114: src(
		"TRADERJOE", "Trader Joe", "TRADERJOE_V2", "Trader Joe V2", "PANGOLIN", "Pangolin",
		"SUSHISWAP", "SushiSwap", "CURVE", "Curve", "PLATYPUS", "Platypus", "KYBERSWAP", "KyberSwap",
		"GMX", "GMX", "UNISWAP_V3", "Uniswap V3", "AAVE_V3", "Aave V3",
	),
	8453: src(
		"UNISWAP_V3", "Uniswap V3", "AERODROME", "Aerodrome", "BASESWAP", "BaseSwap",
		"SUSHISWAP", "SushiSwap", "BALANCER_V2", "Balancer V2", "MAVERICK", "Maverick",
		"CURVE", "Curve", "PANCAKESWAP_V3", "PancakeSwap V3",
	),
}

// LiquiditySources returns the known venues for a chain; empty when the chain has no table.
func LiquiditySources(chainID uint64) []LiquiditySource {
	list := liquiditySources[chainID]
	out := make([]LiquiditySource, len(list))
	copy(out, list)
	return out
}
