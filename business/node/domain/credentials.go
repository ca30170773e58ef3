package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/network"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/ratelimit"
)

// Credential type names.
const (
	CredentialAPI     = "oneInchApi"
	CredentialNetwork = "oneInchNetwork"
	CredentialFusion  = "oneInchFusion"
)

// Resolver modes of the Fusion credential.
const (
	ResolverModeUser     = "user"
	ResolverModeResolver = "resolver"
)

// FusionChains are the chains the Fusion credential may default to.
var FusionChains = []uint64{1, 137, 56, 42161, 10, 43114, 100, 8453}

// TestRequest is the request used to check a credential.
type TestRequest struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// CredentialType describes a credential and how it is tested.
type CredentialType struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	DocsURL     string      `json:"documentationUrl"`
	Fields      []Param     `json:"properties"`
	Test        TestRequest `json:"test"`
}

func secret(name, desc string) Param {
	return Param{Name: name, Type: TypeString, Description: desc}
}

// CredentialTypes returns the credential descriptions.
func CredentialTypes() []CredentialType {
	chains := make([]string, len(FusionChains))
	for i, id := range FusionChains {
		chains[i] = fmt.Sprint(id)
	}
	swapTest := TestRequest{Method: "GET", Path: oneinch.Path(oneinch.SwapTokens, 1)}

	return []CredentialType{
		{
			Name:        CredentialAPI,
			DisplayName: "1inch API",
			DocsURL:     "https://portal.1inch.dev/documentation",
			Fields: []Param{
				req("apiKey", TypeString, "API key from the 1inch developer portal"),
				options("rateLimitTier", "free", "free", "basic", "pro", "enterprise"),
				opt("defaultChainId", TypeNumber, 1, "Chain used when a node sets none"),
			},
			Test: swapTest,
		},
		{
			Name:        CredentialNetwork,
			DisplayName: "1inch Network",
			DocsURL:     "https://portal.1inch.dev/documentation",
			Fields: []Param{
				{Name: "network", Type: TypeOptions, Default: "ethereum", Options: Networks()},
				opt("customRpcUrl", TypeString, nil, "RPC endpoint of a custom network"),
				opt("customChainId", TypeNumber, nil, "Chain id of a custom network"),
				secret("privateKey", "Wallet key used to sign orders"),
				secret("apiKey", "API key from the 1inch developer portal"),
			},
			Test: swapTest,
		},
		{
			Name:        CredentialFusion,
			DisplayName: "1inch Fusion",
			DocsURL:     "https://portal.1inch.dev/documentation/fusion",
			Fields: []Param{
				req("apiKey", TypeString, "API key from the 1inch developer portal"),
				req("privateKey", TypeString, "Wallet key used to sign Fusion orders"),
				{Name: "defaultChainId", Type: TypeOptions, Default: "1", Options: chains},
				options("resolverMode", ResolverModeUser, ResolverModeUser, ResolverModeResolver),
				secret("resolverPrivateKey", "Resolver wallet key, resolver mode only"),
			},
			Test: TestRequest{Method: "GET", Path: oneinch.Path(oneinch.FusionResolvers, 1)},
		},
	}
}

// APICredential is the oneInchApi credential.
type APICredential struct {
	APIKey         string
	RateLimitTier  string
	DefaultChainID uint64
}

// Validate checks the API credential.
func (c APICredential) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return apperror.Validation(apperror.CodeMissingParameter, "apiKey")
	}
	if _, err := ratelimit.ParseTier(c.RateLimitTier); err != nil {
		return apperror.Validation(apperror.CodeInvalidInput, "rateLimitTier "+c.RateLimitTier)
	}
	if c.DefaultChainID != 0 {
		if _, err := network.LookupByChainID(c.DefaultChainID); err != nil {
			return err
		}
	}
	return nil
}

// NetworkCredential is the oneInchNetwork credential.
type NetworkCredential struct {
	Network       string
	CustomRPCURL  string
	CustomChainID uint64
	PrivateKey    string
	APIKey        string
}

// Validate checks the network credential.
func (c NetworkCredential) Validate() error {
	if _, err := c.Resolve(); err != nil {
		return err
	}
	return validateKey("privateKey", c.PrivateKey)
}

// Resolve returns the network the credential selects.
func (c NetworkCredential) Resolve() (network.Network, error) {
	if strings.EqualFold(c.Network, network.CustomName) {
		if c.CustomChainID == 0 {
			return network.Network{}, apperror.Validation(apperror.CodeMissingParameter, "customChainId")
		}
		return network.Custom(c.CustomChainID, c.CustomRPCURL), nil
	}
	return network.Lookup(c.Network)
}

// FusionCredential is the oneInchFusion credential.
type FusionCredential struct {
	APIKey             string
	PrivateKey         string
	DefaultChainID     uint64
	ResolverMode       string
	ResolverPrivateKey string
}

// Validate checks the Fusion credential.
func (c FusionCredential) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return apperror.Validation(apperror.CodeMissingParameter, "apiKey")
	}
	if c.DefaultChainID != 0 && !fusionChain(c.DefaultChainID) {
		return apperror.Validation(apperror.CodeUnsupportedNetwork, fmt.Sprintf("chain %d has no Fusion support", c.DefaultChainID))
	}
	switch c.ResolverMode {
	case "", ResolverModeUser:
	case ResolverModeResolver:
		if c.ResolverPrivateKey == "" {
			return apperror.Validation(apperror.CodeMissingParameter, "resolverPrivateKey")
		}
	default:
		return apperror.Validation(apperror.CodeInvalidInput, "resolverMode "+c.ResolverMode)
	}
	if err := validateKey("privateKey", c.PrivateKey); err != nil {
		return err
	}
	return validateKey("resolverPrivateKey", c.ResolverPrivateKey)
}

func fusionChain(id uint64) bool {
	for _, c := range FusionChains {
		if c == id {
			return true
		}
	}
	return false
}

func validateKey(field, key string) error {
	key = strings.TrimPrefix(strings.TrimSpace(key), "0x")
	if key == "" {
		return nil
	}
	if _, err := crypto.HexToECDSA(key); err != nil {
		return apperror.New(apperror.CodeInvalidCredentials, apperror.WithContext(field), apperror.WithCause(err))
	}
	return nil
}
