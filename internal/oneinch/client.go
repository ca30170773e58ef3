// Package oneinch is the shared REST transport every 1inch API family client
// is built on: base URL, bearer auth, fixed timeout, error mapping, tracing.
package oneinch

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/circuitbreaker"
	"github.com/fd1az/oneinch-nodes/internal/httpclient"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/ratelimit"
)

const defaultTimeout = 30 * time.Second

// Config holds transport settings shared by all API families.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// Tier is informational unless EnforceRateLimit is set.
	Tier             ratelimit.Tier
	EnforceRateLimit bool
	// Breaker, when non-nil, guards every call.
	Breaker *circuitbreaker.Config
	// MeterProvider records request counts; nil falls back to the global provider.
	MeterProvider metric.MeterProvider
}

// Headers returns the default request headers for an API key.
func Headers(apiKey string) map[string]string {
	h := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if apiKey != "" {
		h["Authorization"] = "Bearer " + apiKey
	}
	return h
}

// Client performs 1inch REST calls.
type Client struct {
	http   httpclient.Client
	tracer trace.Tracer
	logger logger.LoggerInterface
	family string
}

// NewClient creates a transport for one API family ("swap", "fusion", ...).
func NewClient(cfg Config, family string, log logger.LoggerInterface) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}

	opts := []httpclient.ClientOption{
		httpclient.WithBaseURL(baseURL),
		httpclient.WithHeaders(Headers(cfg.APIKey)),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithProviderName("oneinch-" + family),
	}
	if cfg.MeterProvider != nil {
		opts = append(opts, httpclient.WithMeterProvider(cfg.MeterProvider))
	}

	if cfg.EnforceRateLimit {
		tier := cfg.Tier
		if tier == "" {
			tier = ratelimit.TierFree
		}
		limiter, err := ratelimit.ForTier(tier)
		if err != nil {
			return nil, apperror.New(apperror.CodeConfigurationError, apperror.WithCause(err), apperror.WithContext(err.Error()))
		}
		opts = append(opts, httpclient.WithLimiter(limiter))
	}

	if cfg.Breaker != nil {
		bcfg := *cfg.Breaker
		bcfg.Name = "oneinch-" + family
		bcfg.OnStateChange = func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		}
		opts = append(opts, httpclient.WithCircuitBreaker(circuitbreaker.New[*httpclient.Response](bcfg)))
	}

	hc, err := httpclient.NewInstrumentedClient(opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   hc,
		tracer: otel.Tracer("oneinch." + family),
		logger: log,
		family: family,
	}, nil
}

// Get issues a GET with query params and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, op, path string, query map[string]string, out any) error {
	return c.call(ctx, op, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, op, path string, body, out any) error {
	return c.call(ctx, op, path, nil, body, out)
}

func (c *Client) call(ctx context.Context, op, path string, query map[string]string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "oneinch."+c.family+"."+op,
		trace.WithAttributes(
			attribute.String("path", path),
		),
	)
	defer span.End()

	req := c.http.NewRequestWithOptions(
		httpclient.WithLabels(
			httpclient.NewLabel("family", c.family),
			httpclient.NewLabel("operation", op),
		),
		httpclient.WithResponseErrorHandler(ErrorHandler),
		httpclient.WithHeadersLogConfig(true, "Authorization"),
	).SetQueryParams(query)

	if out != nil {
		req = req.SetResult(out)
	}

	var err error
	if body != nil {
		_, err = req.SetBody(body).Post(ctx, path)
	} else {
		_, err = req.Get(ctx, path)
	}
	if err != nil {
		err = WrapTransportError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug(ctx, "1inch request failed", "family", c.family, "operation", op, "path", path, "error", err)
		return err
	}

	c.logger.Debug(ctx, "1inch request ok", "family", c.family, "operation", op, "path", path)
	return nil
}
