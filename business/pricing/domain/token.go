package domain

// TokenDetails is token metadata as served by the token API.
type TokenDetails struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Decimals  uint8    `json:"decimals"`
	LogoURI   string   `json:"logoURI,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Providers []string `json:"providers,omitempty"`
	EIP2612   bool     `json:"eip2612,omitempty"`
	IsFoT     bool     `json:"isFoT,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
}

// DefaultSearchLimit is the result cap of a token search when none is given.
const DefaultSearchLimit = 10
