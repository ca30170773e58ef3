package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("pro")
	require.NoError(t, err)
	assert.Equal(t, TierPro, tier)

	tier, err = ParseTier("")
	require.NoError(t, err)
	assert.Equal(t, TierFree, tier)

	_, err = ParseTier("platinum")
	assert.Error(t, err)
}

func TestQuotaFor(t *testing.T) {
	tests := []struct {
		tier Tier
		want Quota
	}{
		{TierFree, Quota{PerSecond: 1, PerMinute: 30}},
		{TierBasic, Quota{PerSecond: 5, PerMinute: 200}},
		{TierPro, Quota{PerSecond: 20, PerMinute: 1000}},
		{TierEnterprise, Quota{PerSecond: 100, PerMinute: 5000}},
	}
	for _, tt := range tests {
		got, ok := QuotaFor(tt.tier)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, string(tt.tier))
	}
}

func TestForTier_Burst(t *testing.T) {
	l, err := ForTier(TierBasic)
	require.NoError(t, err)

	allowed := 0
	for i := 0; i < 10; i++ {
		if l.Allow() {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l, err := ForTier(TierFree)
	require.NoError(t, err)
	require.True(t, l.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}

func TestNew(t *testing.T) {
	l := New(600)
	require.NoError(t, l.Wait(context.Background()))
}
