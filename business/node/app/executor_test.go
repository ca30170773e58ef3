package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/oneinch-nodes/business/node/domain"
	pricingApp "github.com/fd1az/oneinch-nodes/business/pricing/app"
	pricingInfra "github.com/fd1az/oneinch-nodes/business/pricing/infra/oneinch"
	swapApp "github.com/fd1az/oneinch-nodes/business/swap/app"
	swapInfra "github.com/fd1az/oneinch-nodes/business/swap/infra/oneinch"
	"github.com/fd1az/oneinch-nodes/internal/apm"
	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/network"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
)

const (
	weth = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	usdc = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/swap/v6.0/1/quote", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, weth, r.URL.Query().Get("src"))
		_, _ = w.Write([]byte(`{"dstAmount":"3000000000"}`))
	})
	mux.HandleFunc("/price/v1.1/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"` + strings.ToLower(weth) + `":"3012.5"}`))
	})
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func resolveDefault(name string) (network.Network, error) {
	if name == "" {
		name = "ethereum"
	}
	return network.Lookup(name)
}

func newExecutor(t *testing.T, services Services, log logger.LoggerInterface) *Executor {
	t.Helper()
	e, err := NewExecutor(services, resolveDefault, NewNotice(log), log)
	require.NoError(t, err)
	return e
}

func liveServices(t *testing.T) Services {
	t.Helper()
	srv := fakeAPI(t)
	cfg := oneinch.Config{BaseURL: srv.URL}
	log := logger.NewNop()

	swapClient, err := swapInfra.NewClient(cfg, log)
	require.NoError(t, err)
	market, err := pricingInfra.NewClient(cfg, log)
	require.NoError(t, err)

	registry := asset.DefaultRegistry()
	return Services{
		Swap:   swapApp.NewSwapService(swapClient, nil, registry, swapApp.DefaultSettings(), log),
		Market: pricingApp.NewMarketService(market, market, market, market, registry, log),
	}
}

func quoteItem(src, dst, amount string) domain.Params {
	return domain.Params{"srcToken": src, "dstToken": dst, "amount": amount}
}

func TestExecutePairsItems(t *testing.T) {
	e := newExecutor(t, liveServices(t), logger.NewNop())

	out, err := e.Execute(context.Background(), Request{
		Resource:  "swap",
		Operation: "getQuote",
		Network:   "ethereum",
		Items: []domain.Params{
			quoteItem(weth, usdc, "1000000000000000000"),
			quoteItem(weth, usdc, "2000000000000000000"),
		},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	for i, rec := range out {
		assert.Equal(t, i, rec.PairedItem.Item)
		q, ok := rec.JSON.(*swapApp.QuoteResult)
		require.True(t, ok)
		assert.Equal(t, uint64(1), q.ChainID)
		assert.Equal(t, "ethereum", q.Network)
		assert.Equal(t, "3000.0", q.DstAmountFormatted)
	}
	assert.Equal(t, "1.0", out[0].JSON.(*swapApp.QuoteResult).SrcAmountFormatted)
}

func TestExecuteContinueOnFail(t *testing.T) {
	e := newExecutor(t, liveServices(t), logger.NewNop())
	items := []domain.Params{
		quoteItem(weth, weth, "1"),
		{"srcToken": weth, "dstToken": usdc},
		quoteItem(weth, usdc, "1000000000000000000"),
	}

	out, err := e.Execute(context.Background(), Request{
		Resource: "swap", Operation: "getQuote", Items: items, ContinueOnFail: true,
	})
	require.NoError(t, err)
	require.Len(t, out, 3)

	first, ok := out[0].JSON.(ErrorRecord)
	require.True(t, ok)
	assert.Contains(t, first.Error, "must be different")
	assert.Equal(t, ErrorRecord{Error: "Missing required parameter: amount"}, out[1].JSON)
	assert.Equal(t, 2, out[2].PairedItem.Item)

	b, err := json.Marshal(out[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"json":{"error":"Missing required parameter: amount"},"pairedItem":{"item":1}}`, string(b))

	_, err = e.Execute(context.Background(), Request{Resource: "swap", Operation: "getQuote", Items: items})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be different")
}

func TestExecuteUnsupported(t *testing.T) {
	e := newExecutor(t, Services{}, logger.NewNop())

	_, err := e.Execute(context.Background(), Request{Resource: "swap", Operation: "fly", Items: []domain.Params{{}}})
	require.Error(t, err)
	assert.Equal(t, `Operation "fly" is not supported for resource "swap"`, err.Error())

	_, err = e.Execute(context.Background(), Request{Resource: "nft", Operation: "getQuote", Items: []domain.Params{{}}})
	require.Error(t, err)
	assert.Equal(t, `Resource "nft" is not supported`, err.Error())
}

func TestExecuteWithoutService(t *testing.T) {
	e := newExecutor(t, Services{}, logger.NewNop())

	_, err := e.Execute(context.Background(), Request{
		Resource: "fusion", Operation: "getResolvers", Items: []domain.Params{{}},
	})
	assert.Equal(t, apperror.CodeConfigurationError, apperror.GetCode(err))
}

func TestExecuteUnknownNetwork(t *testing.T) {
	e := newExecutor(t, Services{}, logger.NewNop())

	_, err := e.Execute(context.Background(), Request{
		Resource: "liquiditySources", Operation: "list", Network: "mars", Items: []domain.Params{{}},
	})
	assert.Equal(t, apperror.CodeUnsupportedNetwork, apperror.GetCode(err))
}

func TestStaticLiquiditySources(t *testing.T) {
	e := newExecutor(t, Services{}, logger.NewNop())

	out, err := e.Execute(context.Background(), Request{
		Resource: "liquiditySources", Operation: "list", Network: "polygon", Items: []domain.Params{{}},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	res := out[0].JSON.(*StaticSourcesResult)
	assert.Equal(t, uint64(137), res.ChainID)
	assert.Equal(t, len(res.Sources), res.Count)
	assert.NotEmpty(t, res.Sources)
}

func TestMarketOperations(t *testing.T) {
	e := newExecutor(t, liveServices(t), logger.NewNop())

	out, err := e.Execute(context.Background(), Request{
		Resource: "price", Operation: "getSpotPrice", Items: []domain.Params{{"tokenAddress": weth}},
	})
	require.NoError(t, err)
	price := out[0].JSON.(*pricingApp.SpotPriceResult)
	assert.Equal(t, "USD", price.Currency)
	assert.True(t, price.Found)
	assert.Equal(t, "3012.5", price.Price)

	out, err = e.Execute(context.Background(), Request{
		Resource: "healthCheck", Operation: "check", Items: []domain.Params{{}},
	})
	require.NoError(t, err)
	assert.True(t, out[0].JSON.(*pricingApp.HealthResult).Healthy)
}

func TestHandlersMatchDescription(t *testing.T) {
	e := newExecutor(t, Services{}, logger.NewNop())

	described := map[string]bool{}
	for _, r := range e.Node().Resources {
		for _, op := range r.Operations {
			key := r.Name + "." + op.Name
			described[key] = true
			_, ok := e.handlers[r.Name][op.Name]
			assert.True(t, ok, "no handler for %s", key)
		}
	}
	for res, ops := range e.handlers {
		for name := range ops {
			assert.True(t, described[res+"."+name], "handler %s.%s is not described", res, name)
		}
	}
}

func TestNoticeEmittedOnce(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "test", nil)
	e := newExecutor(t, Services{}, log)

	req := Request{Resource: "liquiditySources", Operation: "list", Items: []domain.Params{{}}}
	for i := 0; i < 3; i++ {
		_, err := e.Execute(context.Background(), req)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "Velocity BPA Licensing Notice"))
	assert.Contains(t, buf.String(), "WARN")
}

func TestExecuteLogsFailureDetail(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.LevelInfo, "test", apm.TraceID, logger.WithJSON())
	e := newExecutor(t, liveServices(t), log)

	traceID := trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36}
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     trace.SpanID{0, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
		TraceFlags: trace.FlagsSampled,
	}))

	_, err := e.Execute(ctx, Request{
		Resource: "swap", Operation: "getQuote", ContinueOnFail: true,
		Items: []domain.Params{{"srcToken": weth, "dstToken": usdc}},
	})
	require.NoError(t, err)

	var entry struct {
		Msg     string         `json:"msg"`
		TraceID string         `json:"trace_id"`
		Detail  map[string]any `json:"detail"`
	}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "node item failed") {
			require.NoError(t, json.Unmarshal([]byte(line), &entry))
		}
	}
	require.Equal(t, "node item failed", entry.Msg)
	assert.Equal(t, traceID.String(), entry.TraceID)
	assert.Equal(t, string(apperror.CodeMissingParameter), entry.Detail["code"])
	assert.Equal(t, traceID.String(), entry.Detail["traceId"])
	assert.NotEmpty(t, entry.Detail["stack"])
}
