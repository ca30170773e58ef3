package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

const (
	weth   = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	usdc   = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	wallet = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
	native = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"
)

func TestQuoteParamsValidate(t *testing.T) {
	valid := QuoteParams{FromTokenAddress: weth, ToTokenAddress: usdc, Amount: "1000", WalletAddress: wallet}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*QuoteParams)
		want   string
	}{
		{"native source", func(p *QuoteParams) { p.FromTokenAddress = native }, "not native"},
		{"bad destination", func(p *QuoteParams) { p.ToTokenAddress = "0x12" }, "Invalid destination token address"},
		{"same tokens", func(p *QuoteParams) { p.ToTokenAddress = weth }, "must be different"},
		{"zero amount", func(p *QuoteParams) { p.Amount = "0" }, "Amount must be a positive integer"},
		{"empty amount", func(p *QuoteParams) { p.Amount = "" }, "Amount must be a positive integer"},
		{"bad wallet", func(p *QuoteParams) { p.WalletAddress = "" }, "Invalid wallet address"},
		{"fee too high", func(p *QuoteParams) { p.Fee = MaxFeeBps + 1 }, "Fee must be between"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Equal(t, apperror.CodeValidationError, apperror.GetCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestQuoteParamsQuery(t *testing.T) {
	p := QuoteParams{FromTokenAddress: weth, ToTokenAddress: usdc, Amount: "1", WalletAddress: wallet}
	q := p.Query()
	assert.NotContains(t, q, "fee")
	assert.NotContains(t, q, "enableEstimate")

	p.Fee, p.EnableEstimate, p.IsPermit2 = 25, true, true
	q = p.Query()
	assert.Equal(t, "25", q["fee"])
	assert.Equal(t, "true", q["enableEstimate"])
	assert.Equal(t, "true", q["isPermit2"])
}

func TestPresetRateBumpAt(t *testing.T) {
	p := Preset{
		AuctionDuration: 180,
		InitialRateBump: 50000,
		Points:          []AuctionPoint{{Delay: 60, Coefficient: 30000}, {Delay: 60, Coefficient: 10000}},
	}
	tests := []struct {
		elapsed int64
		want    int64
	}{
		{-5, 50000},
		{0, 50000},
		{30, 40000},
		{60, 30000},
		{90, 20000},
		{150, 5000},
		{180, 0},
		{400, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.RateBumpAt(tt.elapsed), "elapsed %d", tt.elapsed)
	}

	linear := Preset{AuctionDuration: 100, InitialRateBump: 1000}
	assert.Equal(t, int64(500), linear.RateBumpAt(50))
}

func TestPresetsUnmarshal(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		var q Quote
		raw := `{"quoteId":"q1","presets":{"fast":{"auctionDuration":180},"slow":{"auctionDuration":600}},"recommendedPreset":"fast"}`
		require.NoError(t, json.Unmarshal([]byte(raw), &q))
		assert.Equal(t, []string{"fast", "slow"}, q.Presets.Names())
		rec, ok := q.Recommended()
		require.True(t, ok)
		assert.Equal(t, int64(180), rec.AuctionDuration)
	})

	t.Run("array", func(t *testing.T) {
		var q Quote
		raw := `{"presets":[{"auctionDuration":60},{"auctionDuration":120}],"recommendedPreset":"1"}`
		require.NoError(t, json.Unmarshal([]byte(raw), &q))
		rec, ok := q.Recommended()
		require.True(t, ok)
		assert.Equal(t, int64(120), rec.AuctionDuration)
	})

	t.Run("null", func(t *testing.T) {
		var q Quote
		require.NoError(t, json.Unmarshal([]byte(`{"presets":null}`), &q))
		_, ok := q.Recommended()
		assert.False(t, ok)
	})
}
