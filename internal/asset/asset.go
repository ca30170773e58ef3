package asset

import "github.com/ethereum/go-ethereum/common"

// Asset is token metadata with a stable identity (AssetID).
// The symbol is display metadata, not identity.
type Asset struct {
	id       AssetID
	symbol   string
	name     string
	decimals uint8
}

// NewAsset creates a new Asset with the given parameters.
func NewAsset(id AssetID, symbol, name string, decimals uint8) *Asset {
	if symbol == "" {
		panic("asset: empty symbol")
	}
	if decimals > MaxDecimals {
		panic("asset: suspicious decimals")
	}

	return &Asset{
		id:       id,
		symbol:   symbol,
		name:     name,
		decimals: decimals,
	}
}

// NewToken creates an ERC20 token asset.
func NewToken(chainID uint64, address, symbol, name string, decimals uint8) *Asset {
	return NewAsset(NewTokenAssetID(chainID, common.HexToAddress(address)), symbol, name, decimals)
}

// NewNative creates a native coin asset.
func NewNative(chainID uint64, symbol, name string, decimals uint8) *Asset {
	return NewAsset(NewNativeAssetID(chainID), symbol, name, decimals)
}

// ID returns the unique identifier for this asset.
func (a *Asset) ID() AssetID {
	return a.id
}

// Symbol returns the ticker symbol (e.g., "ETH", "USDC").
func (a *Asset) Symbol() string {
	return a.symbol
}

// Name returns the human-readable name, falling back to the symbol.
func (a *Asset) Name() string {
	if a.name == "" {
		return a.symbol
	}
	return a.name
}

// Decimals returns the number of decimal places.
func (a *Asset) Decimals() uint8 {
	return a.decimals
}

func (a *Asset) String() string {
	return a.symbol
}
