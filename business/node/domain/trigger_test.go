package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/internal/network"
)

const weth = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func triggerParams(t *testing.T, event string) TriggerParams {
	t.Helper()
	eth, err := network.Lookup("ethereum")
	require.NoError(t, err)
	return TriggerParams{
		Event:            event,
		Network:          eth,
		TokenAddress:     weth,
		AlertType:        AlertAbove,
		ThresholdPrice:   d("3000"),
		ChangePercentage: DefaultChangePercentage,
		MaxGasPrice:      DefaultMaxGasGwei,
	}
}

func TestPriceAlert(t *testing.T) {
	p := triggerParams(t, EventPriceAlert)
	var state StaticData

	_, fired := EvaluatePriceAlert(p, &state, d("2999.99"), now)
	assert.False(t, fired)
	assert.Nil(t, state.LastTriggeredPrice)

	ev, fired := EvaluatePriceAlert(p, &state, d("3000"), now)
	require.True(t, fired)
	assert.Equal(t, "ethereum", ev.Network)
	assert.Equal(t, uint64(1), ev.ChainID)
	assert.Equal(t, "3000", ev.CurrentPrice.String())
	assert.Equal(t, "2024-03-01T12:00:00.000Z", ev.Timestamp)

	_, fired = EvaluatePriceAlert(p, &state, d("3000"), now)
	assert.False(t, fired, "same price fires once")

	_, fired = EvaluatePriceAlert(p, &state, d("3100"), now)
	assert.True(t, fired)
}

func TestPriceAlertBelow(t *testing.T) {
	p := triggerParams(t, EventPriceAlert)
	p.AlertType = AlertBelow
	var state StaticData

	_, fired := EvaluatePriceAlert(p, &state, d("3000.01"), now)
	assert.False(t, fired)
	_, fired = EvaluatePriceAlert(p, &state, d("2500"), now)
	assert.True(t, fired)
}

func TestGasPriceAlert(t *testing.T) {
	p := triggerParams(t, EventGasPriceAlert)
	var state StaticData

	_, fired := EvaluateGasPriceAlert(p, &state, d("31"), now)
	assert.False(t, fired)

	ev, fired := EvaluateGasPriceAlert(p, &state, d("30"), now)
	require.True(t, fired)
	assert.Equal(t, "30", ev.MaxGasPrice.String())
	assert.Equal(t, "30", ev.CurrentGasPrice.String())

	_, fired = EvaluateGasPriceAlert(p, &state, d("30"), now)
	assert.False(t, fired)
	_, fired = EvaluateGasPriceAlert(p, &state, d("12.5"), now)
	assert.True(t, fired)
}

func TestPriceChange(t *testing.T) {
	p := triggerParams(t, EventPriceChange)
	var state StaticData

	_, fired := EvaluatePriceChange(p, &state, d("100"), now)
	assert.False(t, fired, "first poll only records the price")
	require.NotNil(t, state.LastPrice)
	assert.Equal(t, "100", state.LastPrice.String())

	_, fired = EvaluatePriceChange(p, &state, d("104"), now)
	assert.False(t, fired)
	assert.Equal(t, "104", state.LastPrice.String(), "last price moves on every poll")

	ev, fired := EvaluatePriceChange(p, &state, d("78"), now)
	require.True(t, fired)
	assert.Equal(t, "104", ev.PreviousPrice.String())
	assert.Equal(t, "25", ev.ChangePercentage.String())
	assert.Equal(t, DirectionDown, ev.Direction)

	ev, fired = EvaluatePriceChange(p, &state, d("117"), now)
	require.True(t, fired)
	assert.Equal(t, "50", ev.ChangePercentage.String())
	assert.Equal(t, DirectionUp, ev.Direction)
}

func TestTriggerParamsValidate(t *testing.T) {
	p := triggerParams(t, EventPriceAlert)
	assert.NoError(t, p.Validate())

	p.AlertType = "sideways"
	assert.Error(t, p.Validate())

	p = triggerParams(t, EventPriceChange)
	p.TokenAddress = "eth"
	assert.Error(t, p.Validate())

	p = triggerParams(t, EventGasPriceAlert)
	p.TokenAddress = ""
	assert.NoError(t, p.Validate())

	p.Event = "blockMined"
	assert.Error(t, p.Validate())
}

func TestPriceChangeStaleBaseline(t *testing.T) {
	p := triggerParams(t, EventPriceChange)
	var state StaticData

	_, fired := EvaluatePriceChange(p, &state, d("100"), now)
	assert.False(t, fired)
	require.NotNil(t, state.LastPriceAt)

	ev, fired := EvaluatePriceChange(p, &state, d("90"), now.Add(4*time.Minute))
	require.True(t, fired)
	assert.False(t, ev.PreviousPriceStale, "default window is five minutes")

	ev, fired = EvaluatePriceChange(p, &state, d("80"), now.Add(10*time.Minute))
	require.True(t, fired)
	assert.True(t, ev.PreviousPriceStale)

	p.StaleAfter = time.Hour
	ev, fired = EvaluatePriceChange(p, &state, d("70"), now.Add(40*time.Minute))
	require.True(t, fired)
	assert.False(t, ev.PreviousPriceStale)
}
