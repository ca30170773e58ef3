package domain

import "github.com/shopspring/decimal"

// DefaultMinProfitPercent is the spread below which no opportunity is reported.
var DefaultMinProfitPercent = decimal.NewFromFloat(0.5)

// Spread represents the price difference between two sources.
type Spread struct {
	Reference decimal.Decimal
	Compare   decimal.Decimal
	Absolute  decimal.Decimal // Reference - Compare
	Percent   decimal.Decimal // |Reference - Compare| / Reference * 100
	Direction Side
}

// CalculateSpread computes the spread of compare against reference.
// Direction is buy when the reference price is higher, sell otherwise.
func CalculateSpread(reference, compare decimal.Decimal) Spread {
	absolute := reference.Sub(compare)
	pct := decimal.Zero
	if !reference.IsZero() {
		pct = absolute.Div(reference).Mul(hundred).Abs()
	}

	direction := SideSell
	if reference.GreaterThan(compare) {
		direction = SideBuy
	}

	return Spread{
		Reference: reference,
		Compare:   compare,
		Absolute:  absolute,
		Percent:   pct,
		Direction: direction,
	}
}

// Opportunity is the result of comparing one token's price on two venues.
type Opportunity struct {
	Exists          bool            `json:"exists"`
	PriceDifference decimal.Decimal `json:"priceDifference"`
	Direction       Side            `json:"direction"`
	PotentialProfit decimal.Decimal `json:"potentialProfit"`
}

// ArbitrageOpportunity reports whether the spread between p1 and p2 reaches
// minProfitPercent, and the profit on amount if it does. A zero p1 never
// yields an opportunity.
func ArbitrageOpportunity(p1, p2, amount, minProfitPercent decimal.Decimal) Opportunity {
	s := CalculateSpread(p1, p2)
	exists := !p1.IsZero() && s.Percent.GreaterThanOrEqual(minProfitPercent)

	profit := decimal.Zero
	if exists {
		profit = amount.Mul(s.Percent).Div(hundred)
	}

	return Opportunity{
		Exists:          exists,
		PriceDifference: s.Percent,
		Direction:       s.Direction,
		PotentialProfit: profit,
	}
}
