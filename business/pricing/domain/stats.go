package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultStaleAfter is the age past which a price is considered stale.
const DefaultStaleAfter = 5 * time.Minute

// PricePoint is one timestamped price sample.
type PricePoint struct {
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
}

// Trade is one fill used for volume weighting.
type Trade struct {
	Price  decimal.Decimal `json:"price"`
	Volume decimal.Decimal `json:"volume"`
}

// TWAP returns the time-weighted average of points, which must be in
// timestamp order. Each interval is weighted by the mean of its two ends.
// One sample yields its price; no samples, or samples spanning no time, yield zero.
func TWAP(points []PricePoint) decimal.Decimal {
	switch len(points) {
	case 0:
		return decimal.Zero
	case 1:
		return points[0].Price
	}

	weighted := decimal.Zero
	for i := 1; i < len(points); i++ {
		dt := decimal.NewFromFloat(points[i].Timestamp.Sub(points[i-1].Timestamp).Seconds())
		avg := points[i].Price.Add(points[i-1].Price).Div(two)
		weighted = weighted.Add(avg.Mul(dt))
	}

	total := decimal.NewFromFloat(points[len(points)-1].Timestamp.Sub(points[0].Timestamp).Seconds())
	if total.IsZero() {
		return decimal.Zero
	}
	return weighted.DivRound(total, 18)
}

// VWAP returns the volume-weighted average price, zero when there is no volume.
func VWAP(trades []Trade) decimal.Decimal {
	value, volume := decimal.Zero, decimal.Zero
	for _, t := range trades {
		value = value.Add(t.Price.Mul(t.Volume))
		volume = volume.Add(t.Volume)
	}
	if volume.IsZero() {
		return decimal.Zero
	}
	return value.DivRound(volume, 18)
}

// PercentageChange returns (to-from)/from*100. From a zero base it returns
// 100 for a positive to and 0 otherwise.
func PercentageChange(from, to decimal.Decimal) decimal.Decimal {
	if from.IsZero() {
		if to.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return to.Sub(from).DivRound(from, 18).Mul(hundred)
}

// Confidence weights and thresholds.
var (
	confidenceSpreadWeight = decimal.NewFromFloat(0.7)
	confidenceDepthWeight  = decimal.NewFromFloat(0.3)
	// spread percent at which the spread factor reaches zero
	confidenceMaxSpread = decimal.NewFromInt(10)
	// depth at which the depth factor saturates
	confidenceFullDepth = decimal.NewFromInt(1_000_000)
)

// PriceConfidence scores a quote in [0, 100] from its bid/ask spread and
// book depth. A missing bid or ask scores zero.
func PriceConfidence(bid, ask, depth decimal.Decimal) decimal.Decimal {
	if bid.IsZero() || ask.IsZero() {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)

	spread := ask.Sub(bid).DivRound(bid, 18).Mul(hundred)
	spreadFactor := decimal.Max(decimal.Zero, one.Sub(spread.DivRound(confidenceMaxSpread, 18)))
	spreadFactor = decimal.Min(one, spreadFactor)
	depthFactor := decimal.Min(one, decimal.Max(decimal.Zero, depth.DivRound(confidenceFullDepth, 18)))

	score := confidenceSpreadWeight.Mul(spreadFactor).Add(confidenceDepthWeight.Mul(depthFactor))
	return score.Mul(hundred)
}

// IsStaleAt reports whether lastUpdate is older than maxAge at now. A
// non-positive maxAge means DefaultStaleAfter.
func IsStaleAt(lastUpdate time.Time, maxAge time.Duration, now time.Time) bool {
	if maxAge <= 0 {
		maxAge = DefaultStaleAfter
	}
	return now.Sub(lastUpdate) > maxAge
}
