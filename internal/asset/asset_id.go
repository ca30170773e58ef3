// Package asset models tokens, their on-chain identity and the conversions
// between integer smallest-unit amounts and human decimal amounts.
// Amounts stay in big.Int; decimal.Decimal is only used at boundaries.
package asset

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NativeTokenAddress is the sentinel the aggregation API uses for the
// chain's native currency.
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// ZeroAddress is the all-zero address.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

var nativeAddress = common.HexToAddress(NativeTokenAddress)

// IsNativeToken reports whether addr is the native sentinel, compared case-insensitively.
func IsNativeToken(addr string) bool {
	return strings.EqualFold(strings.TrimSpace(addr), NativeTokenAddress)
}

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address. A
// mixed-case address must carry a valid EIP-55 checksum.
func IsAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return false
	}
	digits := s[2:]
	if digits == strings.ToLower(digits) || digits == strings.ToUpper(digits) {
		return true
	}
	return common.HexToAddress(s).Hex() == s
}

// AssetID uniquely identifies an asset by chain and contract address.
// Native coins carry the sentinel address.
type AssetID struct {
	chainID uint64
	address common.Address
}

// NewNativeAssetID creates an AssetID for a chain's native coin.
func NewNativeAssetID(chainID uint64) AssetID {
	return AssetID{chainID: chainID, address: nativeAddress}
}

// NewTokenAssetID creates an AssetID for an ERC20 token.
func NewTokenAssetID(chainID uint64, addr common.Address) AssetID {
	if addr == (common.Address{}) {
		panic("token address cannot be zero")
	}
	return AssetID{chainID: chainID, address: addr}
}

// IsNative returns true if this is a native coin.
func (id AssetID) IsNative() bool {
	return id.address == nativeAddress
}

func (id AssetID) String() string {
	if id.IsNative() {
		return fmt.Sprintf("chain:%d/native", id.chainID)
	}
	return fmt.Sprintf("chain:%d/%s", id.chainID, id.address.Hex())
}
