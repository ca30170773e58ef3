// Package network holds the static table of chains the 1inch API serves:
// chain ids, native currencies, RPC and explorer URLs, and protocol contracts.
package network

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

// Contract addresses shared by most chains.
const (
	AggregationRouterV6   = "0x111111125421cA6dc452d289314280a0f8842A65"
	LimitOrderProtocolV4  = "0x111111125421cA6dc452d289314280a0f8842A65"
	FusionSettlement      = "0xa88800CD213dA5Ae406ce248380802BD16b31c0b"
	ZkSyncRouter          = "0x6fd4383cB451173D5f9304F041C7BCBf27d561fF"
	OneInchTokenMainnet   = "0x111111111117dC0aa78b770fA6A738034120C302"
	OneInchStakingMainnet = "0x9A0C8Ff858d273f57072D714bca7411D717501D7"
	zeroAddress           = "0x0000000000000000000000000000000000000000"
)

// Currency is a chain's native coin.
type Currency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// Contracts are the 1inch protocol deployments on a chain.
type Contracts struct {
	AggregationRouter  string `json:"aggregationRouter"`
	LimitOrderProtocol string `json:"limitOrderProtocol"`
	FusionSettlement   string `json:"fusionSettlement"`
	OneInchToken       string `json:"oneInchToken,omitempty"`
	Staking            string `json:"staking,omitempty"`
}

// Network describes one supported chain.
type Network struct {
	Name           string    `json:"name"`
	DisplayName    string    `json:"displayName"`
	ChainID        uint64    `json:"chainId"`
	NativeCurrency Currency  `json:"nativeCurrency"`
	RPCURLs        []string  `json:"rpcUrls"`
	ExplorerURLs   []string  `json:"blockExplorerUrls"`
	Contracts      Contracts `json:"contracts"`
}

// SupportsFusion reports whether a Fusion settlement contract is deployed.
func (n Network) SupportsFusion() bool {
	return n.Contracts.FusionSettlement != zeroAddress && n.Contracts.FusionSettlement != ""
}

// RPCURL returns the first RPC endpoint, empty when none.
func (n Network) RPCURL() string {
	if len(n.RPCURLs) == 0 {
		return ""
	}
	return n.RPCURLs[0]
}

func standard(fusion bool) Contracts {
	c := Contracts{
		AggregationRouter:  AggregationRouterV6,
		LimitOrderProtocol: LimitOrderProtocolV4,
		FusionSettlement:   zeroAddress,
	}
	if fusion {
		c.FusionSettlement = FusionSettlement
	}
	return c
}

func native(name, symbol string) Currency {
	return Currency{Name: name, Symbol: symbol, Decimals: 18}
}

var networks = []Network{
	{
		Name: "ethereum", DisplayName: "Ethereum Mainnet", ChainID: 1,
		NativeCurrency: native("Ether", "ETH"),
		RPCURLs:        []string{"https://eth.llamarpc.com", "https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		ExplorerURLs:   []string{"https://etherscan.io"},
		Contracts: Contracts{
			AggregationRouter:  AggregationRouterV6,
			LimitOrderProtocol: LimitOrderProtocolV4,
			FusionSettlement:   FusionSettlement,
			OneInchToken:       OneInchTokenMainnet,
			Staking:            OneInchStakingMainnet,
		},
	},
	{
		Name: "polygon", DisplayName: "Polygon", ChainID: 137,
		NativeCurrency: native("Polygon", "MATIC"),
		RPCURLs:        []string{"https://polygon.llamarpc.com", "https://rpc.ankr.com/polygon", "https://polygon-bor.publicnode.com"},
		ExplorerURLs:   []string{"https://polygonscan.com"},
		Contracts:      standard(true),
	},
	{
		Name: "bsc", DisplayName: "BNB Chain", ChainID: 56,
		NativeCurrency: native("BNB", "BNB"),
		RPCURLs:        []string{"https://binance.llamarpc.com", "https://rpc.ankr.com/bsc", "https://bsc.publicnode.com"},
		ExplorerURLs:   []string{"https://bscscan.com"},
		Contracts:      standard(true),
	},
	{
		Name: "arbitrum", DisplayName: "Arbitrum One", ChainID: 42161,
		NativeCurrency: native("Ether", "ETH"),
		RPCURLs:        []string{"https://arbitrum.llamarpc.com", "https://rpc.ankr.com/arbitrum", "https://arbitrum-one.publicnode.com"},
		ExplorerURLs:   []string{"https://arbiscan.io"},
		Contracts:      standard(true),
	},
	{
		Name: "optimism", DisplayName: "Optimism", ChainID: 10,
		NativeCurrency: native("Ether", "ETH"),
		RPCURLs:        []string{"https://optimism.llamarpc.com", "https://rpc.ankr.com/optimism", "https://optimism.publicnode.com"},
		ExplorerURLs:   []string{"https://optimistic.etherscan.io"},
		Contracts:      standard(true),
	},
	{
		Name: "avalanche", DisplayName: "Avalanche C-Chain", ChainID: 43114,
		NativeCurrency: native("Avalanche", "AVAX"),
		RPCURLs:        []string{"https://avalanche.llamarpc.com", "https://rpc.ankr.com/avalanche", "https://avalanche-c-chain.publicnode.com"},
		ExplorerURLs:   []string{"https://snowtrace.io"},
		Contracts:      standard(true),
	},
	{
		Name: "gnosis", DisplayName: "Gnosis Chain", ChainID: 100,
		NativeCurrency: native("xDAI", "xDAI"),
		RPCURLs:        []string{"https://gnosis.llamarpc.com", "https://rpc.ankr.com/gnosis", "https://gnosis.publicnode.com"},
		ExplorerURLs:   []string{"https://gnosisscan.io"},
		Contracts:      standard(true),
	},
	{
		Name: "fantom", DisplayName: "Fantom Opera", ChainID: 250,
		NativeCurrency: native("Fantom", "FTM"),
		RPCURLs:        []string{"https://fantom.llamarpc.com", "https://rpc.ankr.com/fantom", "https://fantom.publicnode.com"},
		ExplorerURLs:   []string{"https://ftmscan.com"},
		Contracts:      standard(true),
	},
	{
		Name: "base", DisplayName: "Base", ChainID: 8453,
		NativeCurrency: native("Ether", "ETH"),
		RPCURLs:        []string{"https://base.llamarpc.com", "https://rpc.ankr.com/base", "https://base.publicnode.com"},
		ExplorerURLs:   []string{"https://basescan.org"},
		Contracts:      standard(true),
	},
	{
		Name: "zksync", DisplayName: "zkSync Era", ChainID: 324,
		NativeCurrency: native("Ether", "ETH"),
		RPCURLs:        []string{"https://mainnet.era.zksync.io"},
		ExplorerURLs:   []string{"https://explorer.zksync.io"},
		Contracts: Contracts{
			AggregationRouter:  ZkSyncRouter,
			LimitOrderProtocol: ZkSyncRouter,
			FusionSettlement:   zeroAddress,
		},
	},
	{
		Name: "aurora", DisplayName: "Aurora", ChainID: 1313161554,
		NativeCurrency: native("Ether", "ETH"),
		RPCURLs:        []string{"https://mainnet.aurora.dev"},
		ExplorerURLs:   []string{"https://aurorascan.dev"},
		Contracts:      standard(false),
	},
	{
		Name: "klaytn", DisplayName: "Klaytn", ChainID: 8217,
		NativeCurrency: native("Klaytn", "KLAY"),
		RPCURLs:        []string{"https://public-en-cypress.klaytn.net"},
		ExplorerURLs:   []string{"https://scope.klaytn.com"},
		Contracts:      standard(false),
	},
}

var (
	byName    = make(map[string]Network, len(networks))
	byChainID = make(map[uint64]Network, len(networks))
)

func init() {
	for _, n := range networks {
		byName[n.Name] = n
		byChainID[n.ChainID] = n
	}
}

// ChainID returns the chain id for a network name; ok is false when unknown.
func ChainID(name string) (uint64, bool) {
	n, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	return n.ChainID, ok
}

// Lookup resolves a network by name or fails with UNSUPPORTED_NETWORK.
func Lookup(name string) (Network, error) {
	n, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Network{}, apperror.Validation(apperror.CodeUnsupportedNetwork, name)
	}
	return n, nil
}

// LookupByChainID resolves a network by chain id.
func LookupByChainID(chainID uint64) (Network, error) {
	n, ok := byChainID[chainID]
	if !ok {
		return Network{}, apperror.Validation(apperror.CodeUnsupportedNetwork, fmt.Sprintf("chain %d", chainID))
	}
	return n, nil
}

// Resolve accepts either a network name or a decimal chain id.
func Resolve(nameOrID string) (Network, error) {
	if id, err := strconv.ParseUint(strings.TrimSpace(nameOrID), 10, 64); err == nil {
		return LookupByChainID(id)
	}
	return Lookup(nameOrID)
}

// CustomName is the network name that selects a user-supplied chain.
const CustomName = "custom"

// Custom builds a network entry for a user-supplied chain and RPC endpoint.
func Custom(chainID uint64, rpcURL string) Network {
	n, err := LookupByChainID(chainID)
	if err != nil {
		n = Network{
			Name:           CustomName,
			DisplayName:    fmt.Sprintf("Custom chain %d", chainID),
			ChainID:        chainID,
			NativeCurrency: native("Ether", "ETH"),
			Contracts:      standard(false),
		}
	}
	if rpcURL != "" {
		n.RPCURLs = append([]string{rpcURL}, n.RPCURLs...)
	}
	return n
}

// Names returns every supported network name in table order.
func Names() []string {
	out := make([]string, len(networks))
	for i, n := range networks {
		out[i] = n.Name
	}
	return out
}

// All returns a copy of the network table sorted by chain id.
func All() []Network {
	out := make([]Network, len(networks))
	copy(out, networks)
	sort.Slice(out, func(i, j int) bool { return out[i].ChainID < out[j].ChainID })
	return out
}

// Ref is the chain reference every output record carries.
type Ref struct {
	ChainID uint64 `json:"chainId"`
	Network string `json:"network"`
}

// Ref returns the record reference for n.
func (n Network) Ref() Ref {
	return Ref{ChainID: n.ChainID, Network: n.Name}
}
