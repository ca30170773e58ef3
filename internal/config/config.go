// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/oneinch-nodes/internal/circuitbreaker"
	"github.com/fd1az/oneinch-nodes/internal/network"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/ratelimit"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	OneInch   OneInchConfig   `mapstructure:"oneinch"`
	Network   NetworkConfig   `mapstructure:"network"`
	Fusion    FusionConfig    `mapstructure:"fusion"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Trigger   TriggerConfig   `mapstructure:"trigger"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Health    HealthConfig    `mapstructure:"health"`

	// Meters is set at startup once telemetry is running.
	Meters metric.MeterProvider `mapstructure:"-"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"` // console or json
}

// OneInchConfig holds the API credential and transport settings.
type OneInchConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	RateLimitTier    string        `mapstructure:"rate_limit_tier"`
	EnforceRateLimit bool          `mapstructure:"enforce_rate_limit"`
	DefaultChainID   uint64        `mapstructure:"default_chain_id"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// NetworkConfig selects the chain. Name "custom" uses the custom fields.
type NetworkConfig struct {
	Name          string `mapstructure:"name"`
	CustomRPCURL  string `mapstructure:"custom_rpc_url"`
	CustomChainID uint64 `mapstructure:"custom_chain_id"`
	PrivateKey    string `mapstructure:"private_key"`
	RPCURL        string `mapstructure:"rpc_url"` // overrides the table RPC for allowance reads
}

// FusionConfig holds the Fusion credential. An empty APIKey falls back to
// oneinch.api_key.
type FusionConfig struct {
	APIKey             string `mapstructure:"api_key"`
	PrivateKey         string `mapstructure:"private_key"`
	DefaultChainID     uint64 `mapstructure:"default_chain_id"`
	ResolverMode       string `mapstructure:"resolver_mode"`
	ResolverPrivateKey string `mapstructure:"resolver_private_key"`
}

// BreakerConfig controls the optional circuit breaker on outbound calls.
type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
	Interval    time.Duration `mapstructure:"interval"`
}

// PolicyConfig holds the tunable heuristics.
type PolicyConfig struct {
	InfiniteApprovalExponent uint          `mapstructure:"infinite_approval_exponent"`
	BaseGas                  uint64        `mapstructure:"base_gas"`
	GasPerHop                uint64        `mapstructure:"gas_per_hop"`
	GasPerProtocol           uint64        `mapstructure:"gas_per_protocol"`
	StaleAfter               time.Duration `mapstructure:"stale_after"`
}

// TriggerConfig configures the polling trigger run by serve mode.
type TriggerConfig struct {
	Event            string        `mapstructure:"event"` // priceAlert, gasPriceAlert, priceChange
	Network          string        `mapstructure:"network"`
	TokenAddress     string        `mapstructure:"token_address"`
	AlertType        string        `mapstructure:"alert_type"` // above or below
	ThresholdPrice   string        `mapstructure:"threshold_price"`
	ChangePercentage string        `mapstructure:"change_percentage"`
	MaxGasGwei       string        `mapstructure:"max_gas_gwei"`
	Interval         time.Duration `mapstructure:"interval"`
	MaxInterval      time.Duration `mapstructure:"max_interval"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	TraceExporter  string `mapstructure:"trace_exporter"` // zipkin, otlp-grpc, otlp-http, console
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// HealthConfig holds the health server settings.
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// AutomaticEnv resolves ONEINCH_NETWORK to the whole network section.
	if _, ok := os.LookupEnv("ONEINCH_NETWORK"); ok {
		return nil, fmt.Errorf("ONEINCH_NETWORK is not supported, use ONEINCH_NETWORK_NAME")
	}

	v.SetEnvPrefix("ONEINCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "ONEINCH_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "ONEINCH_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "ONEINCH_LOG_LEVEL", "LOG_LEVEL")
	v.BindEnv("app.log_format", "ONEINCH_LOG_FORMAT")

	// API credential
	v.BindEnv("oneinch.api_key", "ONEINCH_API_KEY")
	v.BindEnv("oneinch.base_url", "ONEINCH_BASE_URL")
	v.BindEnv("oneinch.rate_limit_tier", "ONEINCH_RATE_LIMIT_TIER")
	v.BindEnv("oneinch.enforce_rate_limit", "ONEINCH_ENFORCE_RATE_LIMIT")
	v.BindEnv("oneinch.default_chain_id", "ONEINCH_DEFAULT_CHAIN_ID")

	// Network credential
	v.BindEnv("network.name", "ONEINCH_NETWORK_NAME", "ONEINCH_CHAIN")
	v.BindEnv("network.custom_rpc_url", "ONEINCH_CUSTOM_RPC_URL")
	v.BindEnv("network.custom_chain_id", "ONEINCH_CUSTOM_CHAIN_ID")
	v.BindEnv("network.private_key", "ONEINCH_PRIVATE_KEY")
	v.BindEnv("network.rpc_url", "ONEINCH_RPC_URL", "ETH_HTTP_URL")

	// Fusion credential
	v.BindEnv("fusion.api_key", "ONEINCH_FUSION_API_KEY")
	v.BindEnv("fusion.private_key", "ONEINCH_FUSION_PRIVATE_KEY")
	v.BindEnv("fusion.resolver_mode", "ONEINCH_FUSION_RESOLVER_MODE")
	v.BindEnv("fusion.resolver_private_key", "ONEINCH_FUSION_RESOLVER_PRIVATE_KEY")

	// Trigger
	v.BindEnv("trigger.event", "ONEINCH_TRIGGER_EVENT")
	v.BindEnv("trigger.token_address", "ONEINCH_TRIGGER_TOKEN")
	v.BindEnv("trigger.threshold_price", "ONEINCH_TRIGGER_THRESHOLD")

	// Telemetry
	v.BindEnv("telemetry.enabled", "ONEINCH_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "ONEINCH_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "ONEINCH_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "oneinch-nodes")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "console")

	v.SetDefault("oneinch.base_url", oneinch.DefaultBaseURL)
	v.SetDefault("oneinch.rate_limit_tier", "free")
	v.SetDefault("oneinch.enforce_rate_limit", false)
	v.SetDefault("oneinch.default_chain_id", 1)
	v.SetDefault("oneinch.timeout", "30s")

	v.SetDefault("network.name", "ethereum")
	v.SetDefault("network.custom_chain_id", 1)

	v.SetDefault("fusion.default_chain_id", 1)
	v.SetDefault("fusion.resolver_mode", "user")

	v.SetDefault("breaker.enabled", false)
	v.SetDefault("breaker.max_failures", 5)
	v.SetDefault("breaker.open_timeout", "30s")
	v.SetDefault("breaker.interval", "60s")

	v.SetDefault("policy.infinite_approval_exponent", 50)
	v.SetDefault("policy.base_gas", 21000)
	v.SetDefault("policy.gas_per_hop", 100000)
	v.SetDefault("policy.gas_per_protocol", 50000)
	v.SetDefault("policy.stale_after", "5m")

	v.SetDefault("trigger.network", "ethereum")
	v.SetDefault("trigger.alert_type", "above")
	v.SetDefault("trigger.interval", "1m")
	v.SetDefault("trigger.max_interval", "10m")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "oneinch-nodes")
	v.SetDefault("telemetry.trace_exporter", "zipkin")
	v.SetDefault("telemetry.prometheus_port", 9090)

	v.SetDefault("health.port", 8081)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := ratelimit.ParseTier(c.OneInch.RateLimitTier); err != nil {
		return fmt.Errorf("oneinch.rate_limit_tier: %w", err)
	}

	if strings.EqualFold(c.Network.Name, network.CustomName) {
		if c.Network.CustomChainID == 0 {
			return fmt.Errorf("network.custom_chain_id must be greater than 0")
		}
	} else if _, ok := network.ChainID(c.Network.Name); !ok {
		return fmt.Errorf("unknown network.name: %s", c.Network.Name)
	}

	switch c.Fusion.ResolverMode {
	case "user", "resolver":
	default:
		return fmt.Errorf("fusion.resolver_mode must be user or resolver, got %q", c.Fusion.ResolverMode)
	}

	for name, key := range map[string]string{
		"network.private_key":         c.Network.PrivateKey,
		"fusion.private_key":          c.Fusion.PrivateKey,
		"fusion.resolver_private_key": c.Fusion.ResolverPrivateKey,
	} {
		if !validKey(key) {
			return fmt.Errorf("%s is not a valid secp256k1 private key", name)
		}
	}

	if c.Trigger.Event != "" {
		if err := c.Trigger.validate(); err != nil {
			return err
		}
	}
	return nil
}

// validKey accepts an empty key or a hex secp256k1 key with optional 0x.
func validKey(k string) bool {
	k = strings.TrimPrefix(strings.TrimSpace(k), "0x")
	if k == "" {
		return true
	}
	_, err := crypto.HexToECDSA(k)
	return err == nil
}

func (t *TriggerConfig) validate() error {
	if _, ok := network.ChainID(t.Network); !ok {
		return fmt.Errorf("unknown trigger.network: %s", t.Network)
	}
	if t.Interval <= 0 {
		return fmt.Errorf("trigger.interval must be positive")
	}

	switch t.Event {
	case "priceAlert":
		if !common.IsHexAddress(t.TokenAddress) {
			return fmt.Errorf("invalid trigger.token_address: %s", t.TokenAddress)
		}
		if t.AlertType != "above" && t.AlertType != "below" {
			return fmt.Errorf("trigger.alert_type must be above or below, got %q", t.AlertType)
		}
		if _, err := decimal.NewFromString(t.ThresholdPrice); err != nil {
			return fmt.Errorf("invalid trigger.threshold_price: %q", t.ThresholdPrice)
		}
	case "priceChange":
		if !common.IsHexAddress(t.TokenAddress) {
			return fmt.Errorf("invalid trigger.token_address: %s", t.TokenAddress)
		}
		if _, err := decimal.NewFromString(t.ChangePercentage); err != nil {
			return fmt.Errorf("invalid trigger.change_percentage: %q", t.ChangePercentage)
		}
	case "gasPriceAlert":
		if _, err := decimal.NewFromString(t.MaxGasGwei); err != nil {
			return fmt.Errorf("invalid trigger.max_gas_gwei: %q", t.MaxGasGwei)
		}
	default:
		return fmt.Errorf("unknown trigger.event: %s", t.Event)
	}
	return nil
}

// Transport returns the REST transport settings for the API credential.
func (c *Config) Transport() oneinch.Config {
	tier, _ := ratelimit.ParseTier(c.OneInch.RateLimitTier)
	tc := oneinch.Config{
		BaseURL:          c.OneInch.BaseURL,
		APIKey:           c.OneInch.APIKey,
		Timeout:          c.OneInch.Timeout,
		Tier:             tier,
		EnforceRateLimit: c.OneInch.EnforceRateLimit,
		MeterProvider:    c.Meters,
	}
	if c.Breaker.Enabled {
		bc := c.Breaker.CircuitBreaker("oneinch")
		tc.Breaker = &bc
	}
	return tc
}

// FusionTransport is Transport with the Fusion API key when one is set.
func (c *Config) FusionTransport() oneinch.Config {
	tc := c.Transport()
	if c.Fusion.APIKey != "" {
		tc.APIKey = c.Fusion.APIKey
	}
	return tc
}

// CircuitBreaker converts the settings into a breaker config.
func (b BreakerConfig) CircuitBreaker(name string) circuitbreaker.Config {
	cfg := circuitbreaker.DefaultConfig(name)
	if b.MaxFailures > 0 {
		cfg.MaxFailures = b.MaxFailures
	}
	if b.OpenTimeout > 0 {
		cfg.Timeout = b.OpenTimeout
	}
	if b.Interval > 0 {
		cfg.Interval = b.Interval
	}
	return cfg
}

// SelectedNetwork resolves the network credential into a network.
func (c *Config) SelectedNetwork() (network.Network, error) {
	if strings.EqualFold(c.Network.Name, network.CustomName) {
		return network.Custom(c.Network.CustomChainID, c.Network.CustomRPCURL), nil
	}
	return network.Lookup(c.Network.Name)
}
