package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TokenInfo is the token metadata 1inch returns alongside quotes.
type TokenInfo struct {
	Address  string   `json:"address"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Decimals uint8    `json:"decimals"`
	LogoURI  string   `json:"logoURI,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// DecimalsOr returns the token's decimals, or fallback when the token is
// missing or reports 0.
func (t *TokenInfo) DecimalsOr(fallback uint8) uint8 {
	if t == nil || t.Decimals == 0 {
		return fallback
	}
	return t.Decimals
}

// QuoteOptions are the optional routing knobs shared by quote and swap.
type QuoteOptions struct {
	Fee               decimal.NullDecimal
	Protocols         string
	GasPrice          string
	ComplexityLevel   *int
	ConnectorTokens   string
	GasLimit          *uint64
	IncludeTokensInfo *bool
	IncludeProtocols  *bool
	IncludeGas        *bool
}

// QuoteRequest asks for the best route without building a transaction.
type QuoteRequest struct {
	ChainID uint64
	Src     string
	Dst     string
	Amount  string
	QuoteOptions
}

// SwapRequest asks for executable swap calldata.
type SwapRequest struct {
	ChainID         uint64
	Src             string
	Dst             string
	Amount          string
	From            string
	Slippage        decimal.Decimal
	Receiver        string
	Referrer        string
	Permit          string
	DisableEstimate bool
	AllowPartial    bool
	QuoteOptions
}

// QuoteResponse is the aggregation quote body.
type QuoteResponse struct {
	DstAmount string          `json:"dstAmount"`
	SrcToken  *TokenInfo      `json:"srcToken,omitempty"`
	DstToken  *TokenInfo      `json:"dstToken,omitempty"`
	Protocols json.RawMessage `json:"protocols,omitempty"`
	Gas       uint64          `json:"gas,omitempty"`
}

// Transaction is an unsigned transaction returned by the API.
type Transaction struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Data     string `json:"data"`
	Value    string `json:"value"`
	Gas      uint64 `json:"gas"`
	GasPrice string `json:"gasPrice"`
}

// SwapResponse is the aggregation swap body.
type SwapResponse struct {
	DstAmount string          `json:"dstAmount"`
	SrcToken  *TokenInfo      `json:"srcToken,omitempty"`
	DstToken  *TokenInfo      `json:"dstToken,omitempty"`
	Protocols json.RawMessage `json:"protocols,omitempty"`
	Tx        Transaction     `json:"tx"`
}

// ApproveTransaction is the approve/transaction body.
type ApproveTransaction struct {
	Data     string `json:"data"`
	GasPrice string `json:"gasPrice"`
	To       string `json:"to"`
	Value    string `json:"value"`
}

// LiquiditySource is one entry of the liquidity-sources body.
type LiquiditySource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Img      string `json:"img,omitempty"`
	ImgColor string `json:"img_color,omitempty"`
}
