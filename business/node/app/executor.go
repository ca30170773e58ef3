// Package app runs node operations against the bounded-context services
// and polls trigger events.
package app

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	fusionApp "github.com/fd1az/oneinch-nodes/business/fusion/app"
	limitApp "github.com/fd1az/oneinch-nodes/business/limitorder/app"
	"github.com/fd1az/oneinch-nodes/business/node/domain"
	portfolioApp "github.com/fd1az/oneinch-nodes/business/portfolio/app"
	pricingApp "github.com/fd1az/oneinch-nodes/business/pricing/app"
	swapApp "github.com/fd1az/oneinch-nodes/business/swap/app"
	"github.com/fd1az/oneinch-nodes/internal/apm"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
)

const (
	tracerName = "github.com/fd1az/oneinch-nodes/business/node"
	meterName  = "github.com/fd1az/oneinch-nodes/business/node"
)

// Services are the bounded-context services operations run against. A nil
// service disables the resources that need it.
type Services struct {
	Swap       *swapApp.SwapService
	Market     *pricingApp.MarketService
	LimitOrder *limitApp.LimitOrderService
	Fusion     *fusionApp.FusionService
	Portfolio  *portfolioApp.PortfolioService
}

// NetworkResolver maps a network name to a network. An empty name selects
// the configured default.
type NetworkResolver func(name string) (network.Network, error)

// Request is one batch of items for a single resource and operation.
type Request struct {
	Resource       string
	Operation      string
	Network        string
	Items          []domain.Params
	ContinueOnFail bool
}

// PairedItem points an output record at its input item.
type PairedItem struct {
	Item int `json:"item"`
}

// Record is one output item.
type Record struct {
	JSON       any        `json:"json"`
	PairedItem PairedItem `json:"pairedItem"`
}

// ErrorRecord is the output of a failed item when failures are caught.
type ErrorRecord struct {
	Error string `json:"error"`
}

type service int

const (
	none service = iota
	swapService
	marketService
	limitOrderService
	fusionService
	portfolioService
)

func (s service) String() string {
	switch s {
	case swapService:
		return "swap"
	case marketService:
		return "market data"
	case limitOrderService:
		return "limit order"
	case fusionService:
		return "fusion"
	case portfolioService:
		return "portfolio"
	}
	return "none"
}

type handlerFunc func(ctx context.Context, net network.Network, p domain.Params) (any, error)

type handler struct {
	needs service
	run   handlerFunc
}

type executorMetrics struct {
	items metric.Int64Counter
}

// Executor runs node operations item by item.
type Executor struct {
	services Services
	resolve  NetworkResolver
	node     domain.Node
	handlers map[string]map[string]handler
	notice   *Notice
	log      logger.LoggerInterface
	tracer   trace.Tracer
	metrics  executorMetrics
}

// NewExecutor creates an executor over the given services.
func NewExecutor(services Services, resolve NetworkResolver, notice *Notice, log logger.LoggerInterface) (*Executor, error) {
	e := &Executor{
		services: services,
		resolve:  resolve,
		node:     domain.OneInch(),
		notice:   notice,
		log:      log,
		tracer:   otel.Tracer(tracerName),
	}
	e.handlers = map[string]map[string]handler{
		"swap":             e.swapHandlers(),
		"approve":          e.approveHandlers(),
		"fusion":           e.fusionHandlers(),
		"crossChain":       e.crossChainHandlers(),
		"limitOrder":       e.limitOrderHandlers(),
		"token":            e.tokenHandlers(),
		"price":            e.priceHandlers(),
		"gas":              e.gasHandlers(),
		"balance":          e.balanceHandlers(),
		"portfolio":        e.portfolioHandlers(),
		"liquiditySources": e.liquiditySourceHandlers(),
		"healthCheck":      e.healthHandlers(),
	}
	if err := e.initMetrics(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Executor) initMetrics() error {
	meter := otel.Meter(meterName)

	var err error
	e.metrics.items, err = meter.Int64Counter(
		"node_items_total",
		metric.WithDescription("Items processed by node operations"),
		metric.WithUnit("{item}"),
	)
	return err
}

// Node returns the description the executor serves.
func (e *Executor) Node() domain.Node {
	return e.node
}

// Execute runs the operation for every item in order. Without
// ContinueOnFail the first failing item aborts the batch.
func (e *Executor) Execute(ctx context.Context, req Request) ([]Record, error) {
	ctx, span := e.tracer.Start(ctx, "node.execute", trace.WithAttributes(
		attribute.String("node.resource", req.Resource),
		attribute.String("node.operation", req.Operation),
		attribute.Int("node.items", len(req.Items)),
	))
	defer span.End()

	if e.notice != nil {
		e.notice.Emit(ctx)
	}

	op, h, err := e.lookup(req.Resource, req.Operation)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	net, err := e.resolve(req.Network)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int64("node.chain_id", int64(net.ChainID)))

	out := make([]Record, 0, len(req.Items))
	for i, item := range req.Items {
		res, err := e.runItem(ctx, op, h, net, item)
		e.count(ctx, req, err)
		if err != nil {
			if !req.ContinueOnFail {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			args := []any{"resource", req.Resource, "operation", req.Operation, "item", i, "error", err.Error()}
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				args = append(args, "detail", appErr.WithTraceID(apm.TraceID(ctx)).ToLog())
			}
			e.log.Warn(ctx, "node item failed", args...)
			res = ErrorRecord{Error: err.Error()}
		}
		out = append(out, Record{JSON: res, PairedItem: PairedItem{Item: i}})
	}
	return out, nil
}

func (e *Executor) lookup(resource, operation string) (domain.Operation, handler, error) {
	op, err := e.node.Operation(resource, operation)
	if err != nil {
		return domain.Operation{}, handler{}, err
	}
	h, ok := e.handlers[resource][operation]
	if !ok {
		return domain.Operation{}, handler{}, apperror.New(apperror.CodeUnsupportedOperation,
			apperror.WithContext(resource+"."+operation))
	}
	if !e.available(h.needs) {
		return domain.Operation{}, handler{}, apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("no "+h.needs.String()+" service configured for "+resource+"."+operation))
	}
	return op, h, nil
}

func (e *Executor) runItem(ctx context.Context, op domain.Operation, h handler, net network.Network, item domain.Params) (any, error) {
	p, err := op.Bind(item)
	if err != nil {
		return nil, err
	}
	return h.run(ctx, net, p)
}

func (e *Executor) available(s service) bool {
	switch s {
	case swapService:
		return e.services.Swap != nil
	case marketService:
		return e.services.Market != nil
	case limitOrderService:
		return e.services.LimitOrder != nil
	case fusionService:
		return e.services.Fusion != nil
	case portfolioService:
		return e.services.Portfolio != nil
	}
	return true
}

func (e *Executor) count(ctx context.Context, req Request, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	e.metrics.items.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resource", req.Resource),
		attribute.String("operation", req.Operation),
		attribute.String("outcome", outcome),
	))
}
