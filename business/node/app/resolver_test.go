package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/internal/config"
)

func TestConfigResolver(t *testing.T) {
	cfg := &config.Config{Network: config.NetworkConfig{
		Name:          "polygon",
		CustomChainID: 31337,
		CustomRPCURL:  "http://localhost:8545",
	}}
	resolve := ConfigResolver(cfg)

	tests := []struct {
		name    string
		in      string
		chainID uint64
	}{
		{"default", "", 137},
		{"by name", "arbitrum", 42161},
		{"by chain id", "8453", 8453},
		{"custom", "custom", 31337},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := resolve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.chainID, n.ChainID)
		})
	}

	custom, err := resolve("custom")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", custom.RPCURL())
	assert.False(t, custom.SupportsFusion())

	_, err = resolve("mars")
	assert.Error(t, err)
}
