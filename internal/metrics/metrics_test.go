package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/oneinch-nodes/internal/logger"
)

func TestPrometheusEndpoint(t *testing.T) {
	ctx := context.Background()
	mp, err := NewMetricProvider(ctx,
		WithServiceName("oneinch-test"),
		WithProviderConfig(ProviderCfg{Provider: PrometheusProvider}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	counter, err := mp.Meter("test").Int64Counter("node_items_total")
	require.NoError(t, err)
	counter.Add(ctx, 2, metric.WithAttributes(attribute.String("outcome", "success")))

	srv := httptest.NewServer(NewServer(0, mp, logger.NewNop()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "node_items_total")
	assert.Contains(t, string(body), `outcome="success"`)
}

func TestNoPrometheusReader(t *testing.T) {
	mp, err := NewMetricProvider(context.Background())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownProvider(t *testing.T) {
	_, err := NewMetricProvider(context.Background(), WithProviderConfig(ProviderCfg{Provider: "statsd"}))
	assert.Error(t, err)
}

func TestServerStopsOnCancel(t *testing.T) {
	mp, err := NewMetricProvider(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, NewServer(0, mp, logger.NewNop()).Run(ctx))
}
