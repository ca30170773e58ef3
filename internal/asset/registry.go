package asset

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Registry is a thread-safe registry of known assets.
type Registry struct {
	byID map[AssetID]*Asset
	mu   sync.RWMutex
}

// NewRegistry creates a new empty asset registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[AssetID]*Asset),
	}
}

// Register adds an asset to the registry.
// Panics if an asset with the same ID is already registered.
func (r *Registry) Register(a *Asset) {
	if a == nil {
		panic("asset: cannot register nil asset")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := a.ID()
	if _, exists := r.byID[id]; exists {
		panic(fmt.Sprintf("asset: %s already registered", id))
	}

	r.byID[id] = a
}

// Get retrieves an asset by its ID.
func (r *Registry) Get(id AssetID) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	return a, ok
}

// GetByAddress resolves a hex address on a chain. Address case is ignored;
// the native sentinel resolves to the chain's native coin.
func (r *Registry) GetByAddress(chainID uint64, address string) (*Asset, bool) {
	if !common.IsHexAddress(address) {
		return nil, false
	}
	addr := common.HexToAddress(address)
	if addr == nativeAddress {
		return r.Get(NewNativeAssetID(chainID))
	}
	if addr == (common.Address{}) {
		return nil, false
	}
	return r.Get(NewTokenAssetID(chainID, addr))
}

// Decimals returns the decimals for address on chainID, or fallback when unknown.
func (r *Registry) Decimals(chainID uint64, address string, fallback uint8) uint8 {
	if a, ok := r.GetByAddress(chainID, address); ok {
		return a.Decimals()
	}
	return fallback
}
