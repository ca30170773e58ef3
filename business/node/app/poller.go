package app

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/oneinch-nodes/business/node/domain"
	pricing "github.com/fd1az/oneinch-nodes/business/pricing/domain"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/config"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

// MarketData is the market service surface the trigger reads.
type MarketData interface {
	SpotPriceValue(ctx context.Context, net network.Network, token string) (decimal.Decimal, error)
	GasPriceGwei(ctx context.Context, net network.Network, tier string) (decimal.Decimal, error)
}

// EmitFunc receives every event the poller fires.
type EmitFunc func(ctx context.Context, event any) error

type pollerMetrics struct {
	polls metric.Int64Counter
}

// Poller evaluates one trigger against live market data. It owns the
// trigger's StaticData.
type Poller struct {
	params      domain.TriggerParams
	market      MarketData
	interval    time.Duration
	maxInterval time.Duration
	notice      *Notice
	log         logger.LoggerInterface
	tracer      trace.Tracer
	metrics     pollerMetrics
	now         func() time.Time

	mu    sync.Mutex
	state domain.StaticData
}

// NewPoller creates a poller that polls every interval and widens the
// interval up to maxInterval while polls fail.
func NewPoller(params domain.TriggerParams, market MarketData, interval, maxInterval time.Duration, notice *Notice, log logger.LoggerInterface) (*Poller, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if interval <= 0 {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "poll interval must be positive")
	}
	if maxInterval < interval {
		maxInterval = interval
	}

	p := &Poller{
		params:      params,
		market:      market,
		interval:    interval,
		maxInterval: maxInterval,
		notice:      notice,
		log:         log,
		tracer:      otel.Tracer(tracerName),
		now:         time.Now,
	}
	if err := p.initMetrics(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPollerFromConfig builds the poller serve mode runs. staleAfter is the
// age past which a price change baseline is reported stale.
func NewPollerFromConfig(cfg config.TriggerConfig, staleAfter time.Duration, market MarketData, notice *Notice, log logger.LoggerInterface) (*Poller, error) {
	net, err := network.Lookup(cfg.Network)
	if err != nil {
		return nil, err
	}

	params := domain.TriggerParams{
		Event:            cfg.Event,
		Network:          net,
		TokenAddress:     cfg.TokenAddress,
		AlertType:        cfg.AlertType,
		ChangePercentage: domain.DefaultChangePercentage,
		MaxGasPrice:      domain.DefaultMaxGasGwei,
		StaleAfter:       staleAfter,
	}
	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"threshold_price", cfg.ThresholdPrice, &params.ThresholdPrice},
		{"change_percentage", cfg.ChangePercentage, &params.ChangePercentage},
		{"max_gas_gwei", cfg.MaxGasGwei, &params.MaxGasPrice},
	} {
		if f.raw == "" {
			continue
		}
		v, err := decimal.NewFromString(f.raw)
		if err != nil {
			return nil, apperror.Validation(apperror.CodeInvalidInput, "trigger."+f.name+" "+f.raw)
		}
		*f.dst = v
	}

	return NewPoller(params, market, cfg.Interval, cfg.MaxInterval, notice, log)
}

func (p *Poller) initMetrics() error {
	meter := otel.Meter(meterName)

	var err error
	p.metrics.polls, err = meter.Int64Counter(
		"trigger_polls_total",
		metric.WithDescription("Trigger polls by event and outcome"),
		metric.WithUnit("{poll}"),
	)
	return err
}

// State returns a copy of the trigger state.
func (p *Poller) State() domain.StaticData {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Poll reads the market once and returns the fired event, or nil when the
// trigger does not fire.
func (p *Poller) Poll(ctx context.Context) (any, error) {
	ctx, span := p.tracer.Start(ctx, "trigger.poll", trace.WithAttributes(
		attribute.String("trigger.event", p.params.Event),
		attribute.String("trigger.network", p.params.Network.Name),
	))
	defer span.End()

	if p.notice != nil {
		p.notice.Emit(ctx)
	}

	event, err := p.poll(ctx)

	outcome := "idle"
	switch {
	case err != nil:
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case event != nil:
		outcome = "fired"
	}
	p.metrics.polls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event", p.params.Event),
		attribute.String("outcome", outcome),
	))
	return event, err
}

func (p *Poller) poll(ctx context.Context) (any, error) {
	switch p.params.Event {
	case domain.EventGasPriceAlert:
		gwei, err := p.market.GasPriceGwei(ctx, p.params.Network, pricing.TierMedium)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if ev, fired := domain.EvaluateGasPriceAlert(p.params, &p.state, gwei, p.now()); fired {
			return ev, nil
		}
		return nil, nil

	case domain.EventPriceAlert, domain.EventPriceChange:
		price, err := p.market.SpotPriceValue(ctx, p.params.Network, p.params.TokenAddress)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.params.Event == domain.EventPriceAlert {
			if ev, fired := domain.EvaluatePriceAlert(p.params, &p.state, price, p.now()); fired {
				return ev, nil
			}
			return nil, nil
		}
		if ev, fired := domain.EvaluatePriceChange(p.params, &p.state, price, p.now()); fired {
			return ev, nil
		}
		return nil, nil
	}
	return nil, apperror.Validation(apperror.CodeInvalidInput, "event "+p.params.Event)
}

// Run polls until ctx is done and hands fired events to emit. Failed polls
// widen the wait with exponential backoff; a successful poll resets it.
func (p *Poller) Run(ctx context.Context, emit EmitFunc) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.interval
	b.MaxInterval = p.maxInterval

	p.log.Info(ctx, "trigger poller started",
		"event", p.params.Event, "network", p.params.Network.Name, "interval", p.interval.String())

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info(ctx, "trigger poller stopped")
			return nil
		case <-timer.C:
		}

		wait := p.interval
		event, err := p.Poll(ctx)
		switch {
		case err != nil:
			wait = b.NextBackOff()
			p.log.Warn(ctx, "trigger poll failed", "event", p.params.Event, "error", err.Error(), "retry_in", wait.String())
		default:
			b.Reset()
			if event != nil {
				if err := emit(ctx, event); err != nil {
					return err
				}
			}
		}
		timer.Reset(wait)
	}
}
