package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/internal/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/ratelimit"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func validConfig() Config {
	return Config{
		OneInch: OneInchConfig{RateLimitTier: "free"},
		Network: NetworkConfig{Name: "ethereum"},
		Fusion:  FusionConfig{ResolverMode: "user"},
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "oneinch:\n  api_key: test-key\n"))
	require.NoError(t, err)

	assert.Equal(t, "oneinch-nodes", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "console", cfg.App.LogFormat)
	assert.Equal(t, "test-key", cfg.OneInch.APIKey)
	assert.Equal(t, oneinch.DefaultBaseURL, cfg.OneInch.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.OneInch.Timeout)
	assert.Equal(t, "ethereum", cfg.Network.Name)
	assert.Equal(t, "user", cfg.Fusion.ResolverMode)
	assert.Equal(t, uint(50), cfg.Policy.InfiniteApprovalExponent)
	assert.Equal(t, time.Minute, cfg.Trigger.Interval)
	assert.Equal(t, 10*time.Minute, cfg.Trigger.MaxInterval)
	assert.Equal(t, 8081, cfg.Health.Port)
	assert.Equal(t, 9090, cfg.Telemetry.PrometheusPort)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ONEINCH_API_KEY", "env-key")
	t.Setenv("ONEINCH_NETWORK_NAME", "polygon")
	t.Setenv("ONEINCH_LOG_LEVEL", "debug")
	t.Setenv("ONEINCH_RATE_LIMIT_TIER", "pro")

	cfg, err := Load(writeConfig(t, "oneinch:\n  api_key: file-key\n"))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.OneInch.APIKey)
	assert.Equal(t, "polygon", cfg.Network.Name)
	assert.Equal(t, "debug", cfg.App.LogLevel)

	net, err := cfg.SelectedNetwork()
	require.NoError(t, err)
	assert.Equal(t, uint64(137), net.ChainID)

	assert.Equal(t, ratelimit.TierPro, cfg.Transport().Tier)
}

func TestLoadNetworkFromEnv(t *testing.T) {
	t.Setenv("ONEINCH_CHAIN", "base")
	t.Setenv("ONEINCH_CUSTOM_RPC_URL", "http://localhost:8545")

	cfg, err := Load(writeConfig(t, "network:\n  rpc_url: http://node:8545\n"))
	require.NoError(t, err)
	assert.Equal(t, "base", cfg.Network.Name)
	assert.Equal(t, "http://node:8545", cfg.Network.RPCURL)
	assert.Equal(t, uint64(1), cfg.Network.CustomChainID)

	net, err := cfg.SelectedNetwork()
	require.NoError(t, err)
	assert.Equal(t, uint64(8453), net.ChainID)
}

func TestLoadRejectsSectionEnv(t *testing.T) {
	t.Setenv("ONEINCH_NETWORK", "polygon")

	_, err := Load(writeConfig(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ONEINCH_NETWORK_NAME")
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	_, err := Load(writeConfig(t, "network:\n  name: atlantis\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown network.name: atlantis")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad tier", func(c *Config) { c.OneInch.RateLimitTier = "gold" }, "oneinch.rate_limit_tier"},
		{"unknown network", func(c *Config) { c.Network.Name = "atlantis" }, "unknown network.name"},
		{"custom without chain id", func(c *Config) { c.Network.Name = "custom" }, "network.custom_chain_id"},
		{"custom with chain id", func(c *Config) {
			c.Network.Name = "custom"
			c.Network.CustomChainID = 31337
		}, ""},
		{"bad resolver mode", func(c *Config) { c.Fusion.ResolverMode = "maker" }, "fusion.resolver_mode"},
		{"valid private key", func(c *Config) { c.Network.PrivateKey = testKey }, ""},
		{"valid prefixed key", func(c *Config) { c.Fusion.PrivateKey = "0x" + testKey }, ""},
		{"malformed private key", func(c *Config) { c.Network.PrivateKey = "0xdeadbeef" }, "network.private_key"},
		{"malformed resolver key", func(c *Config) { c.Fusion.ResolverPrivateKey = "zz" }, "fusion.resolver_private_key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateTrigger(t *testing.T) {
	const weth = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	base := TriggerConfig{Network: "ethereum", AlertType: "above", Interval: time.Minute}

	tests := []struct {
		name    string
		mutate  func(*TriggerConfig)
		wantErr string
	}{
		{"price alert", func(t *TriggerConfig) {
			t.Event, t.TokenAddress, t.ThresholdPrice = "priceAlert", weth, "3000"
		}, ""},
		{"price alert bad token", func(t *TriggerConfig) {
			t.Event, t.TokenAddress, t.ThresholdPrice = "priceAlert", "weth", "3000"
		}, "trigger.token_address"},
		{"price alert bad direction", func(t *TriggerConfig) {
			t.Event, t.TokenAddress, t.ThresholdPrice, t.AlertType = "priceAlert", weth, "3000", "sideways"
		}, "trigger.alert_type"},
		{"price alert bad threshold", func(t *TriggerConfig) {
			t.Event, t.TokenAddress, t.ThresholdPrice = "priceAlert", weth, "lots"
		}, "trigger.threshold_price"},
		{"price change", func(t *TriggerConfig) {
			t.Event, t.TokenAddress, t.ChangePercentage = "priceChange", weth, "5"
		}, ""},
		{"price change missing percentage", func(t *TriggerConfig) {
			t.Event, t.TokenAddress = "priceChange", weth
		}, "trigger.change_percentage"},
		{"gas alert", func(t *TriggerConfig) { t.Event, t.MaxGasGwei = "gasPriceAlert", "30" }, ""},
		{"gas alert missing max", func(t *TriggerConfig) { t.Event = "gasPriceAlert" }, "trigger.max_gas_gwei"},
		{"unknown event", func(t *TriggerConfig) { t.Event = "volumeSpike" }, "unknown trigger.event"},
		{"unknown network", func(t *TriggerConfig) {
			t.Event, t.MaxGasGwei, t.Network = "gasPriceAlert", "30", "atlantis"
		}, "unknown trigger.network"},
		{"zero interval", func(t *TriggerConfig) {
			t.Event, t.MaxGasGwei, t.Interval = "gasPriceAlert", "30", 0
		}, "trigger.interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Trigger = base
			tt.mutate(&cfg.Trigger)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTransport(t *testing.T) {
	cfg := validConfig()
	cfg.OneInch.APIKey = "main-key"
	cfg.OneInch.BaseURL = "https://example.test"

	tc := cfg.Transport()
	assert.Equal(t, "main-key", tc.APIKey)
	assert.Equal(t, ratelimit.TierFree, tc.Tier)
	assert.Nil(t, tc.Breaker)
	assert.Equal(t, "main-key", cfg.FusionTransport().APIKey)

	cfg.Fusion.APIKey = "fusion-key"
	assert.Equal(t, "fusion-key", cfg.FusionTransport().APIKey)

	cfg.Breaker = BreakerConfig{Enabled: true, MaxFailures: 3, OpenTimeout: 10 * time.Second}
	tc = cfg.Transport()
	require.NotNil(t, tc.Breaker)
	assert.Equal(t, uint32(3), tc.Breaker.MaxFailures)
	assert.Equal(t, 10*time.Second, tc.Breaker.Timeout)
}

func TestSelectedNetworkCustom(t *testing.T) {
	cfg := validConfig()
	cfg.Network = NetworkConfig{Name: "Custom", CustomChainID: 31337, CustomRPCURL: "http://localhost:8545"}

	net, err := cfg.SelectedNetwork()
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), net.ChainID)
	assert.Equal(t, "http://localhost:8545", net.RPCURL())
}
