// Package domain contains the Fusion and Fusion+ types: quotes, auction
// presets, relayer orders and their status.
package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
)

// MaxFeeBps caps the integrator fee of a quote request.
const MaxFeeBps = 300

// QuoteParams are the inputs of a Fusion quote.
type QuoteParams struct {
	FromTokenAddress string `json:"fromTokenAddress"`
	ToTokenAddress   string `json:"toTokenAddress"`
	Amount           string `json:"amount"`
	WalletAddress    string `json:"walletAddress"`
	EnableEstimate   bool   `json:"enableEstimate,omitempty"`
	// Fee is the integrator fee in basis points.
	Fee       int  `json:"fee,omitempty"`
	IsPermit2 bool `json:"isPermit2,omitempty"`
}

// Validate collects every invalid field into one VALIDATION_FAILED error.
// Fusion swaps start from an ERC20 token, never the native currency.
func (p QuoteParams) Validate() error {
	var errs []string
	switch {
	case !common.IsHexAddress(p.FromTokenAddress):
		errs = append(errs, "Invalid source token address")
	case asset.IsNativeToken(p.FromTokenAddress):
		errs = append(errs, "Source token must be an ERC20 token, not native")
	}
	if !common.IsHexAddress(p.ToTokenAddress) {
		errs = append(errs, "Invalid destination token address")
	}
	if common.IsHexAddress(p.FromTokenAddress) && strings.EqualFold(p.FromTokenAddress, p.ToTokenAddress) {
		errs = append(errs, "Source and destination tokens must be different")
	}
	if !isPositiveInt(p.Amount) {
		errs = append(errs, "Amount must be a positive integer")
	}
	if !common.IsHexAddress(p.WalletAddress) {
		errs = append(errs, "Invalid wallet address")
	}
	if p.Fee < 0 || p.Fee > MaxFeeBps {
		errs = append(errs, fmt.Sprintf("Fee must be between 0 and %d bps", MaxFeeBps))
	}
	if len(errs) > 0 {
		return apperror.Validation(apperror.CodeValidationError, strings.Join(errs, ", "))
	}
	return nil
}

// Query renders the params as quoter query parameters.
func (p QuoteParams) Query() map[string]string {
	q := map[string]string{
		"fromTokenAddress": p.FromTokenAddress,
		"toTokenAddress":   p.ToTokenAddress,
		"amount":           p.Amount,
		"walletAddress":    p.WalletAddress,
	}
	if p.EnableEstimate {
		q["enableEstimate"] = "true"
	}
	if p.Fee > 0 {
		q["fee"] = strconv.Itoa(p.Fee)
	}
	if p.IsPermit2 {
		q["isPermit2"] = "true"
	}
	return q
}

func isPositiveInt(s string) bool {
	v, err := asset.ParseRaw(s)
	return err == nil && v.Sign() > 0
}

// AuctionPoint is one step of the auction curve. Delay is relative to the
// previous point.
type AuctionPoint struct {
	Delay       int64 `json:"delay"`
	Coefficient int64 `json:"coefficient"`
}

// Preset is one auction speed offered by the quoter.
type Preset struct {
	AuctionDuration    int64          `json:"auctionDuration"`
	StartAuctionIn     int64          `json:"startAuctionIn"`
	InitialRateBump    int64          `json:"initialRateBump"`
	AuctionStartAmount string         `json:"auctionStartAmount"`
	AuctionEndAmount   string         `json:"auctionEndAmount"`
	Points             []AuctionPoint `json:"points,omitempty"`
}

// RateBumpAt returns the rate bump elapsed seconds after the auction
// started. It falls from InitialRateBump through the points to zero at
// AuctionDuration.
func (p Preset) RateBumpAt(elapsed int64) int64 {
	if elapsed <= 0 {
		return p.InitialRateBump
	}
	if elapsed >= p.AuctionDuration {
		return 0
	}

	prevAt, prevBump := int64(0), p.InitialRateBump
	var at int64
	for _, pt := range p.Points {
		at += pt.Delay
		if at > p.AuctionDuration {
			break
		}
		if elapsed <= at {
			return interpolate(prevAt, prevBump, at, pt.Coefficient, elapsed)
		}
		prevAt, prevBump = at, pt.Coefficient
	}
	return interpolate(prevAt, prevBump, p.AuctionDuration, 0, elapsed)
}

func interpolate(x0, y0, x1, y1, x int64) int64 {
	if x1 <= x0 {
		return y1
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

// Presets maps a preset name to its auction parameters. The quoter sends an
// object keyed by name; a bare array is keyed by position.
type Presets map[string]Preset

// UnmarshalJSON accepts both the object and the array form.
func (p *Presets) UnmarshalJSON(b []byte) error {
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*p = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []Preset
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		out := make(Presets, len(list))
		for i, preset := range list {
			out[strconv.Itoa(i)] = preset
		}
		*p = out
		return nil
	}
	var m map[string]*Preset
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(Presets, len(m))
	for name, preset := range m {
		if preset != nil {
			out[name] = *preset
		}
	}
	*p = out
	return nil
}

// Names returns the preset names sorted.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Quote is a Fusion quoter response.
type Quote struct {
	QuoteID           string   `json:"quoteId"`
	FromTokenAmount   string   `json:"fromTokenAmount"`
	ToTokenAmount     string   `json:"toTokenAmount"`
	FeeToken          string   `json:"feeToken"`
	EstimatedGas      int64    `json:"estimatedGas"`
	Presets           Presets  `json:"presets"`
	RecommendedPreset string   `json:"recommendedPreset"`
	SettlementAddress string   `json:"settlementAddress"`
	Whitelist         []string `json:"whitelist"`
}

// Recommended returns the recommended preset, if the quote carries it.
func (q Quote) Recommended() (Preset, bool) {
	p, ok := q.Presets[q.RecommendedPreset]
	return p, ok
}

// ReadyToAccept is the quoter's answer on whether a quote can be filled now.
type ReadyToAccept struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}
