package app

import (
	"strings"

	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// ConfigResolver resolves network names against the configuration: an empty
// name is the configured network and "custom" uses the custom chain fields.
// Chain ids are accepted in place of names.
func ConfigResolver(cfg *config.Config) NetworkResolver {
	return func(name string) (network.Network, error) {
		switch {
		case strings.TrimSpace(name) == "":
			return cfg.SelectedNetwork()
		case strings.EqualFold(name, network.CustomName):
			return network.Custom(cfg.Network.CustomChainID, cfg.Network.CustomRPCURL), nil
		}
		return network.Resolve(name)
	}
}
