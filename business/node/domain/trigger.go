package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	pricing "github.com/fd1az/oneinch-nodes/business/pricing/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// Trigger events.
const (
	EventPriceAlert    = "priceAlert"
	EventGasPriceAlert = "gasPriceAlert"
	EventPriceChange   = "priceChange"
)

// Alert directions of a price alert.
const (
	AlertAbove = "above"
	AlertBelow = "below"
)

// Price change directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

var (
	DefaultChangePercentage = decimal.NewFromInt(5)
	DefaultMaxGasGwei       = decimal.NewFromInt(30)
)

// OneInchTrigger describes the polling trigger node.
func OneInchTrigger() Node {
	return Node{
		Name:        "oneInchTrigger",
		DisplayName: "1inch Trigger",
		Description: "Trigger workflows on 1inch price and gas events",
		Group:       "trigger",
		Version:     1,
		Credentials: []CredentialRef{{Name: CredentialAPI, Required: true}},
		Networks:    network.Names(),
		Params: []Param{
			{Name: "network", Type: TypeOptions, Default: "ethereum", Options: network.Names()},
			options("event", EventPriceAlert, EventPriceAlert, EventGasPriceAlert, EventPriceChange),
			opt("tokenAddress", TypeAddress, nil, "Token to watch, price events only"),
			options("alertType", AlertAbove, AlertAbove, AlertBelow),
			opt("thresholdPrice", TypeNumber, 0, "USD price that fires a price alert"),
			opt("changePercentage", TypeNumber, 5, "Minimum percentage change to trigger (absolute value)"),
			opt("maxGasPrice", TypeNumber, 30, "Fire when gas drops to this many gwei or below"),
		},
	}
}

// TriggerParams are the settings of one trigger.
type TriggerParams struct {
	Event            string
	Network          network.Network
	TokenAddress     string
	AlertType        string
	ThresholdPrice   decimal.Decimal
	ChangePercentage decimal.Decimal
	MaxGasPrice      decimal.Decimal
	// StaleAfter is the age past which the price change baseline is
	// reported stale. Zero means pricing.DefaultStaleAfter.
	StaleAfter       time.Duration
}

// Validate checks the fields the event uses.
func (p TriggerParams) Validate() error {
	switch p.Event {
	case EventPriceAlert:
		if p.AlertType != AlertAbove && p.AlertType != AlertBelow {
			return apperror.Validation(apperror.CodeInvalidInput, "alertType "+p.AlertType)
		}
		fallthrough
	case EventPriceChange:
		if !common.IsHexAddress(p.TokenAddress) {
			return apperror.Validation(apperror.CodeInvalidAddress, p.TokenAddress)
		}
	case EventGasPriceAlert:
	default:
		return apperror.Validation(apperror.CodeInvalidInput, "event "+p.Event)
	}
	return nil
}

// StaticData is the state a trigger keeps between polls. Nil means unset.
type StaticData struct {
	LastTriggeredPrice *decimal.Decimal `json:"lastTriggeredPrice,omitempty"`
	LastGasPrice       *decimal.Decimal `json:"lastGasPrice,omitempty"`
	LastPrice          *decimal.Decimal `json:"lastPrice,omitempty"`
	LastPriceAt        *time.Time       `json:"lastPriceAt,omitempty"`
}

// PriceAlert is emitted when a price crosses its threshold.
type PriceAlert struct {
	Event          string          `json:"event"`
	Network        string          `json:"network"`
	ChainID        uint64          `json:"chainId"`
	TokenAddress   string          `json:"tokenAddress"`
	AlertType      string          `json:"alertType"`
	ThresholdPrice decimal.Decimal `json:"thresholdPrice"`
	CurrentPrice   decimal.Decimal `json:"currentPrice"`
	Triggered      bool            `json:"triggered"`
	Timestamp      string          `json:"timestamp"`
}

// GasPriceAlert is emitted when gas drops to the configured maximum.
type GasPriceAlert struct {
	Event           string          `json:"event"`
	Network         string          `json:"network"`
	ChainID         uint64          `json:"chainId"`
	MaxGasPrice     decimal.Decimal `json:"maxGasPrice"`
	CurrentGasPrice decimal.Decimal `json:"currentGasPrice"`
	Triggered       bool            `json:"triggered"`
	Timestamp       string          `json:"timestamp"`
}

// PriceChange is emitted when a price moves by at least the configured percentage.
type PriceChange struct {
	Event              string          `json:"event"`
	Network            string          `json:"network"`
	ChainID            uint64          `json:"chainId"`
	TokenAddress       string          `json:"tokenAddress"`
	PreviousPrice      decimal.Decimal `json:"previousPrice"`
	CurrentPrice       decimal.Decimal `json:"currentPrice"`
	ChangePercentage   decimal.Decimal `json:"changePercentage"`
	Direction          string          `json:"direction"`
	// PreviousPriceStale is set when the baseline is older than StaleAfter,
	// e.g. after a run of failed polls.
	PreviousPriceStale bool            `json:"previousPriceStale"`
	Triggered          bool            `json:"triggered"`
	Timestamp          string          `json:"timestamp"`
}

func stamp(now time.Time) string {
	return now.UTC().Format("2006-01-02T15:04:05.000Z")
}

// EvaluatePriceAlert fires once per distinct price beyond the threshold.
func EvaluatePriceAlert(p TriggerParams, state *StaticData, current decimal.Decimal, now time.Time) (*PriceAlert, bool) {
	crossed := (p.AlertType == AlertAbove && current.GreaterThanOrEqual(p.ThresholdPrice)) ||
		(p.AlertType == AlertBelow && current.LessThanOrEqual(p.ThresholdPrice))
	if !crossed || (state.LastTriggeredPrice != nil && state.LastTriggeredPrice.Equal(current)) {
		return nil, false
	}
	state.LastTriggeredPrice = &current
	return &PriceAlert{
		Event:          EventPriceAlert,
		Network:        p.Network.Name,
		ChainID:        p.Network.ChainID,
		TokenAddress:   p.TokenAddress,
		AlertType:      p.AlertType,
		ThresholdPrice: p.ThresholdPrice,
		CurrentPrice:   current,
		Triggered:      true,
		Timestamp:      stamp(now),
	}, true
}

// EvaluateGasPriceAlert fires once per distinct gas price at or below the maximum.
func EvaluateGasPriceAlert(p TriggerParams, state *StaticData, gwei decimal.Decimal, now time.Time) (*GasPriceAlert, bool) {
	if gwei.GreaterThan(p.MaxGasPrice) || (state.LastGasPrice != nil && state.LastGasPrice.Equal(gwei)) {
		return nil, false
	}
	state.LastGasPrice = &gwei
	return &GasPriceAlert{
		Event:           EventGasPriceAlert,
		Network:         p.Network.Name,
		ChainID:         p.Network.ChainID,
		MaxGasPrice:     p.MaxGasPrice,
		CurrentGasPrice: gwei,
		Triggered:       true,
		Timestamp:       stamp(now),
	}, true
}

// EvaluatePriceChange compares current with the last seen price. The last
// price is updated on every call.
func EvaluatePriceChange(p TriggerParams, state *StaticData, current decimal.Decimal, now time.Time) (*PriceChange, bool) {
	last := current
	if state.LastPrice != nil && !state.LastPrice.IsZero() {
		last = *state.LastPrice
	}
	stale := state.LastPriceAt != nil && pricing.IsStaleAt(*state.LastPriceAt, p.StaleAfter, now)
	state.LastPrice = &current
	state.LastPriceAt = &now

	change := decimal.Zero
	if !last.IsZero() {
		change = current.Sub(last).Div(last).Mul(decimal.NewFromInt(100)).Abs()
	}
	if change.LessThan(p.ChangePercentage) {
		return nil, false
	}

	direction := DirectionDown
	if current.GreaterThan(last) {
		direction = DirectionUp
	}
	return &PriceChange{
		Event:              EventPriceChange,
		Network:            p.Network.Name,
		ChainID:            p.Network.ChainID,
		TokenAddress:       p.TokenAddress,
		PreviousPrice:      last,
		CurrentPrice:       current,
		ChangePercentage:   change,
		Direction:          direction,
		PreviousPriceStale: stale,
		Triggered:          true,
		Timestamp:          stamp(now),
	}, true
}
