package oneinch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/business/swap/domain"
	"github.com/fd1az/oneinch-nodes/internal/logger"
	"github.com/fd1az/oneinch-nodes/internal/oneinch"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(oneinch.Config{BaseURL: srv.URL, APIKey: "k"}, logger.NewNop())
	require.NoError(t, err)
	return c
}

func TestClient_Quote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swap/v6.0/137/quote", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "0xsrc", q.Get("src"))
		assert.Equal(t, "1000", q.Get("amount"))
		assert.Equal(t, "true", q.Get("includeProtocols"))
		assert.Equal(t, "1", q.Get("complexityLevel"))
		assert.False(t, q.Has("protocols"), "empty params are omitted")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dstAmount":"2000","gas":150000,"srcToken":{"symbol":"WETH","decimals":18},"protocols":[]}`))
	})

	level := 1
	out, err := c.Quote(context.Background(), domain.QuoteRequest{
		ChainID:      137,
		Src:          "0xsrc",
		Dst:          "0xdst",
		Amount:       "1000",
		QuoteOptions: domain.QuoteOptions{ComplexityLevel: &level},
	})
	require.NoError(t, err)
	assert.Equal(t, "2000", out.DstAmount)
	assert.Equal(t, uint64(150000), out.Gas)
	assert.Equal(t, uint8(18), out.SrcToken.Decimals)
}

func TestClient_Swap(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swap/v6.0/1/swap", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "0.5", q.Get("slippage"))
		assert.Equal(t, "0xfrom", q.Get("from"))
		assert.Equal(t, "true", q.Get("disableEstimate"))
		assert.Equal(t, "0.25", q.Get("fee"))

		w.Write([]byte(`{"dstAmount":"10","tx":{"from":"0xfrom","to":"0xrouter","data":"0xdead","value":"0","gas":200000,"gasPrice":"1"}}`))
	})

	out, err := c.Swap(context.Background(), domain.SwapRequest{
		ChainID:         1,
		Src:             "0xsrc",
		Dst:             "0xdst",
		Amount:          "5",
		From:            "0xfrom",
		Slippage:        decimal.RequireFromString("0.5"),
		DisableEstimate: true,
		QuoteOptions:    domain.QuoteOptions{Fee: decimal.NewNullDecimal(decimal.RequireFromString("0.25"))},
	})
	require.NoError(t, err)
	assert.Equal(t, "0xdead", out.Tx.Data)
	assert.Equal(t, uint64(200000), out.Tx.Gas)
}

func TestClient_ApprovalEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/swap/v6.0/1/approve/allowance":
			assert.Equal(t, "0xw", r.URL.Query().Get("walletAddress"))
			w.Write([]byte(`{"allowance":"42"}`))
		case "/swap/v6.0/1/approve/spender":
			w.Write([]byte(`{"address":"0x111111125421ca6dc452d289314280a0f8842a65"}`))
		case "/swap/v6.0/1/approve/transaction":
			w.Write([]byte(`{"data":"0x095ea7b3","gasPrice":"1","to":"0xtoken","value":"0"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()
	allowance, err := c.Allowance(ctx, 1, "0xt", "0xw")
	require.NoError(t, err)
	assert.Equal(t, "42", allowance)

	spender, err := c.Spender(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0x111111125421ca6dc452d289314280a0f8842a65", spender)

	tx, err := c.ApproveTransaction(ctx, 1, "0xtoken", "")
	require.NoError(t, err)
	assert.Equal(t, "0xtoken", tx.To)
}

func TestClient_ListsAndErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/swap/v6.0/1/liquidity-sources":
			w.Write([]byte(`{"protocols":[{"id":"UNISWAP_V3","title":"Uniswap V3"}]}`))
		case "/swap/v6.0/1/tokens":
			w.Write([]byte(`{"tokens":{"0xa":{"symbol":"A","decimals":6}}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Bad Request","description":"cannot sync"}`))
		}
	})

	ctx := context.Background()
	sources, err := c.LiquiditySources(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "Uniswap V3", sources[0].Title)

	tokens, err := c.Tokens(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", tokens["0xa"].Symbol)

	_, err = c.Spender(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, "1inch API Error: cannot sync", err.Error())
}
