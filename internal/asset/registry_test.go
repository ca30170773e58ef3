package asset_test

import (
	"testing"

	"github.com/fd1az/oneinch-nodes/internal/asset"
)

func TestRegistry_GetByAddress(t *testing.T) {
	r := asset.DefaultRegistry()

	usdc, ok := r.GetByAddress(asset.ChainIDEthereum, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	if !ok || usdc.Symbol() != "USDC" || usdc.Decimals() != 6 {
		t.Fatalf("lowercase USDC lookup failed: %v %v", usdc, ok)
	}

	native, ok := r.GetByAddress(asset.ChainIDPolygon, "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	if !ok || native.Symbol() != "MATIC" {
		t.Fatalf("native lookup failed: %v %v", native, ok)
	}

	if _, ok := r.GetByAddress(asset.ChainIDEthereum, "not-an-address"); ok {
		t.Error("expected miss for malformed address")
	}
	if _, ok := r.GetByAddress(asset.ChainIDEthereum, asset.ZeroAddress); ok {
		t.Error("expected miss for zero address")
	}

	if d := r.Decimals(asset.ChainIDBSC, "0x55d398326f99059fF775485246999027B3197955", 6); d != 18 {
		t.Errorf("BSC USDT decimals = %d, want 18", d)
	}
	if d := r.Decimals(asset.ChainIDBSC, "0x0000000000000000000000000000000000000001", 6); d != 6 {
		t.Errorf("fallback decimals = %d, want 6", d)
	}
}
