package domain

import (
	"sort"
	"strings"

	"github.com/fd1az/oneinch-nodes/internal/asset"
)

// Balances maps a token address to its raw balance.
type Balances map[string]string

// TokenBalance is one decoded balance entry.
type TokenBalance struct {
	TokenAddress string `json:"tokenAddress"`
	Balance      string `json:"balance"`
}

// Entries returns the balances sorted by token address. Zero and
// malformed balances are skipped unless includeZero is set.
func (b Balances) Entries(includeZero bool) []TokenBalance {
	out := make([]TokenBalance, 0, len(b))
	for addr, raw := range b {
		v, err := asset.ParseRaw(raw)
		if !includeZero && (err != nil || v.Sign() == 0) {
			continue
		}
		out = append(out, TokenBalance{TokenAddress: addr, Balance: raw})
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].TokenAddress) < strings.ToLower(out[j].TokenAddress)
	})
	return out
}
