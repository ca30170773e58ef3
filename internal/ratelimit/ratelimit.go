// Package ratelimit provides a wrapper around golang.org/x/time/rate and the
// 1inch API subscription tiers.
package ratelimit

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
)

// Tier is a 1inch API subscription level.
type Tier string

// Known tiers.
const (
	TierFree       Tier = "FREE"
	TierBasic      Tier = "BASIC"
	TierPro        Tier = "PRO"
	TierEnterprise Tier = "ENTERPRISE"
)

// Quota is the request allowance of a tier.
type Quota struct {
	PerSecond int `json:"requestsPerSecond"`
	PerMinute int `json:"requestsPerMinute"`
}

var quotas = map[Tier]Quota{
	TierFree:       {PerSecond: 1, PerMinute: 30},
	TierBasic:      {PerSecond: 5, PerMinute: 200},
	TierPro:        {PerSecond: 20, PerMinute: 1000},
	TierEnterprise: {PerSecond: 100, PerMinute: 5000},
}

// ParseTier normalizes a tier name; an empty string is FREE.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if t == "" {
		return TierFree, nil
	}
	if _, ok := quotas[t]; !ok {
		return "", fmt.Errorf("unknown rate limit tier %q", s)
	}
	return t, nil
}

// QuotaFor returns the allowance of a tier.
func QuotaFor(t Tier) (Quota, bool) {
	q, ok := quotas[t]
	return q, ok
}

// Limiter enforces a per-second and a per-minute budget together.
type Limiter struct {
	perSecond *rate.Limiter
	perMinute *rate.Limiter
}

// New creates a limiter allowing requestsPerMinute, with bursts of 10% of the rate.
func New(requestsPerMinute int) *Limiter {
	rps := float64(requestsPerMinute) / 60.0
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		perSecond: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// ForTier builds a limiter matching a tier's quota.
func ForTier(t Tier) (*Limiter, error) {
	q, ok := quotas[t]
	if !ok {
		return nil, fmt.Errorf("unknown rate limit tier %q", t)
	}
	return &Limiter{
		perSecond: rate.NewLimiter(rate.Limit(q.PerSecond), q.PerSecond),
		perMinute: rate.NewLimiter(rate.Limit(float64(q.PerMinute)/60.0), q.PerMinute),
	}, nil
}

// Wait blocks until both budgets allow a request or the context is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.perSecond.Wait(ctx); err != nil {
		return err
	}
	if l.perMinute != nil {
		return l.perMinute.Wait(ctx)
	}
	return nil
}

// Allow reports whether a request may happen now, consuming from both budgets.
func (l *Limiter) Allow() bool {
	if l.perMinute != nil && l.perMinute.Tokens() < 1 {
		return false
	}
	if !l.perSecond.Allow() {
		return false
	}
	if l.perMinute != nil {
		return l.perMinute.Allow()
	}
	return true
}
