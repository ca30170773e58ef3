package oneinch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/circuitbreaker"
	"github.com/fd1az/oneinch-nodes/internal/ratelimit"
)

func TestPath(t *testing.T) {
	assert.Equal(t, "/swap/v6.0/137/quote", Path(SwapQuote, 137))
	assert.Equal(t, "/fusion/relayer/v2.0/1/order/status/0xabc", Path(FusionOrderStatus, 1, "orderHash", "0xabc"))
	assert.Equal(t, "/price/v1.1/56/0x1,0x2", Path(PriceSpotMulti, 56, "addresses", "0x1,0x2"))
	assert.Equal(t, "/orderbook/v4.0/1/has-active-orders-with-permit/0xw/0xt",
		Path(OrderbookHasActiveOrders, 1, "walletAddress", "0xw", "tokenAddress", "0xt"))
	assert.Equal(t, "/token/v1.2/1/a%2Fb", Path(TokenInfo, 1, "address", "a/b"))
}

func TestHeaders(t *testing.T) {
	h := Headers("secret")
	assert.Equal(t, "Bearer secret", h["Authorization"])
	assert.Equal(t, "application/json", h["Accept"])

	_, ok := Headers("")["Authorization"]
	assert.False(t, ok)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"success", 200, `{}`, ""},
		{"description wins", 400, `{"error":"Bad Request","description":"insufficient liquidity"}`, "1inch API Error: insufficient liquidity"},
		{"error field", 401, `{"error":"Unauthorized"}`, "1inch API Error: Unauthorized"},
		{"message field", 429, `{"message":"Too many requests"}`, "1inch API Error: Too many requests"},
		{"non json", 502, `<html>bad gateway</html>`, "1inch API Error: Request failed with status code 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ErrorHandler(tt.status, []byte(tt.body))
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, apperror.CodeUpstreamAPIError, apperror.GetCode(err))
		})
	}
}

func TestClient_GetAndPost(t *testing.T) {
	var auth, query string
	var posted map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		switch r.Method {
		case http.MethodGet:
			query = r.URL.RawQuery
			w.Write([]byte(`{"address":"0x111111125421cA6dc452d289314280a0f8842A65"}`))
		case http.MethodPost:
			json.NewDecoder(r.Body).Decode(&posted)
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer server.Close()

	c, err := NewClient(Config{BaseURL: server.URL, APIKey: "k"}, "swap", nil)
	require.NoError(t, err)

	var spender struct {
		Address string `json:"address"`
	}
	err = c.Get(context.Background(), "spender", Path(SwapApproveSpender, 1), map[string]string{"a": "1"}, &spender)
	require.NoError(t, err)
	assert.Equal(t, "Bearer k", auth)
	assert.Equal(t, "a=1", query)
	assert.Equal(t, "0x111111125421cA6dc452d289314280a0f8842A65", spender.Address)

	var ok struct{ OK bool }
	require.NoError(t, c.Post(context.Background(), "custom", "/x", map[string]any{"addresses": []string{"0x1"}}, &ok))
	assert.True(t, ok.OK)
	assert.Equal(t, []any{"0x1"}, posted["addresses"])
}

func TestClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"description":"cannot estimate"}`))
	}))
	defer server.Close()

	c, err := NewClient(Config{BaseURL: server.URL}, "swap", nil)
	require.NoError(t, err)

	err = c.Get(context.Background(), "quote", "/q", nil, &struct{}{})
	require.Error(t, err)
	assert.Equal(t, "1inch API Error: cannot estimate", err.Error())
}

func TestClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1,2`))
	}))
	defer server.Close()

	c, err := NewClient(Config{BaseURL: server.URL}, "price", nil)
	require.NoError(t, err)

	err = c.Get(context.Background(), "spot", "/p", nil, &map[string]string{})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUpstreamAPIError, apperror.GetCode(err))
	assert.Contains(t, err.Error(), "malformed response")
}

func TestClient_TransportError(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, "gas", nil)
	require.NoError(t, err)

	err = c.Get(context.Background(), "price", "/gas", nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUpstreamAPIError, apperror.GetCode(err))
}

func TestNewClient_Options(t *testing.T) {
	bcfg := circuitbreaker.DefaultConfig("")
	_, err := NewClient(Config{EnforceRateLimit: true, Tier: ratelimit.TierPro, Breaker: &bcfg}, "swap", nil)
	assert.NoError(t, err)

	_, err = NewClient(Config{EnforceRateLimit: true, Tier: "GOLD"}, "swap", nil)
	assert.Error(t, err)
}

func TestClient_RecordsRequestsOnMeterProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	c, err := NewClient(Config{BaseURL: server.URL, MeterProvider: mp}, "gas", nil)
	require.NoError(t, err)
	require.NoError(t, c.Get(context.Background(), "price", "/gas", nil, &struct{}{}))
	require.NoError(t, c.Get(context.Background(), "price", "/gas", nil, &struct{}{}))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http_client_requests_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), total)
}
