package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/business/node/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

type fakeMarket struct {
	mu     sync.Mutex
	prices []string
	gas    []string
	err    error
	tiers  []string
}

func (f *fakeMarket) SpotPriceValue(_ context.Context, _ network.Network, _ string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return decimal.Zero, f.err
	}
	p := f.prices[0]
	if len(f.prices) > 1 {
		f.prices = f.prices[1:]
	}
	return decimal.RequireFromString(p), nil
}

func (f *fakeMarket) GasPriceGwei(_ context.Context, _ network.Network, tier string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tiers = append(f.tiers, tier)
	if f.err != nil {
		return decimal.Zero, f.err
	}
	g := f.gas[0]
	if len(f.gas) > 1 {
		f.gas = f.gas[1:]
	}
	return decimal.RequireFromString(g), nil
}

func triggerConfig(event string) config.TriggerConfig {
	return config.TriggerConfig{
		Event:          event,
		Network:        "ethereum",
		TokenAddress:   weth,
		AlertType:      "above",
		ThresholdPrice: "3000",
		Interval:       time.Millisecond,
	}
}

func newPoller(t *testing.T, cfg config.TriggerConfig, market MarketData) *Poller {
	t.Helper()
	p, err := NewPollerFromConfig(cfg, 0, market, nil, logger.NewNop())
	require.NoError(t, err)
	return p
}

func TestPollPriceAlert(t *testing.T) {
	market := &fakeMarket{prices: []string{"2900", "3050", "3050"}}
	p := newPoller(t, triggerConfig(domain.EventPriceAlert), market)
	ctx := context.Background()

	ev, err := p.Poll(ctx)
	require.NoError(t, err)
	assert.Nil(t, ev)

	ev, err = p.Poll(ctx)
	require.NoError(t, err)
	alert, ok := ev.(*domain.PriceAlert)
	require.True(t, ok)
	assert.Equal(t, "3050", alert.CurrentPrice.String())
	assert.Equal(t, "3000", alert.ThresholdPrice.String())

	ev, err = p.Poll(ctx)
	require.NoError(t, err)
	assert.Nil(t, ev, "unchanged price must not fire again")
	assert.Equal(t, "3050", p.State().LastTriggeredPrice.String())
}

func TestPollGasPriceAlertUsesMediumTier(t *testing.T) {
	market := &fakeMarket{gas: []string{"25.5"}}
	cfg := triggerConfig(domain.EventGasPriceAlert)
	p := newPoller(t, cfg, market)

	ev, err := p.Poll(context.Background())
	require.NoError(t, err)
	alert, ok := ev.(*domain.GasPriceAlert)
	require.True(t, ok)
	assert.Equal(t, "30", alert.MaxGasPrice.String(), "defaults to 30 gwei")
	assert.Equal(t, "25.5", alert.CurrentGasPrice.String())
	assert.Equal(t, []string{"medium"}, market.tiers)
}

func TestPollPriceChange(t *testing.T) {
	market := &fakeMarket{prices: []string{"100", "110"}}
	cfg := triggerConfig(domain.EventPriceChange)
	cfg.ChangePercentage = "10"
	p := newPoller(t, cfg, market)

	ev, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.Nil(t, ev)

	ev, err = p.Poll(context.Background())
	require.NoError(t, err)
	change := ev.(*domain.PriceChange)
	assert.Equal(t, domain.DirectionUp, change.Direction)
	assert.Equal(t, "10", change.ChangePercentage.String())
}

func TestPollPriceChangeReportsStaleBaseline(t *testing.T) {
	market := &fakeMarket{prices: []string{"100", "120", "100"}}
	cfg := triggerConfig(domain.EventPriceChange)
	cfg.ChangePercentage = "10"

	p, err := NewPollerFromConfig(cfg, time.Minute, market, nil, logger.NewNop())
	require.NoError(t, err)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return clock }

	_, err = p.Poll(context.Background())
	require.NoError(t, err)

	clock = clock.Add(30 * time.Second)
	ev, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.False(t, ev.(*domain.PriceChange).PreviousPriceStale)

	clock = clock.Add(2 * time.Minute)
	ev, err = p.Poll(context.Background())
	require.NoError(t, err)
	assert.True(t, ev.(*domain.PriceChange).PreviousPriceStale, "baseline older than stale_after")
}

func TestPollError(t *testing.T) {
	market := &fakeMarket{err: apperror.New(apperror.CodeUpstreamAPIError)}
	p := newPoller(t, triggerConfig(domain.EventPriceAlert), market)

	_, err := p.Poll(context.Background())
	assert.Equal(t, apperror.CodeUpstreamAPIError, apperror.GetCode(err))
}

func TestNewPollerFromConfigRejects(t *testing.T) {
	cfg := triggerConfig(domain.EventPriceAlert)
	cfg.ThresholdPrice = "lots"
	_, err := NewPollerFromConfig(cfg, 0, &fakeMarket{}, nil, logger.NewNop())
	assert.Error(t, err)

	cfg = triggerConfig(domain.EventPriceAlert)
	cfg.Interval = 0
	_, err = NewPollerFromConfig(cfg, 0, &fakeMarket{}, nil, logger.NewNop())
	assert.Error(t, err)

	cfg = triggerConfig(domain.EventPriceAlert)
	cfg.Network = "custom"
	_, err = NewPollerFromConfig(cfg, 0, &fakeMarket{}, nil, logger.NewNop())
	assert.Error(t, err)
}

func TestRunEmitsUntilCancelled(t *testing.T) {
	market := &fakeMarket{prices: []string{"3001", "3002", "3003"}}
	p := newPoller(t, triggerConfig(domain.EventPriceAlert), market)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var events []any
	err := p.Run(ctx, func(_ context.Context, ev any) error {
		events = append(events, ev)
		if len(events) == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestRunStopsOnEmitError(t *testing.T) {
	market := &fakeMarket{prices: []string{"3001"}}
	p := newPoller(t, triggerConfig(domain.EventPriceAlert), market)

	boom := errors.New("sink closed")
	err := p.Run(context.Background(), func(context.Context, any) error { return boom })
	assert.ErrorIs(t, err, boom)
}
