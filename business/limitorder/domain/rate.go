package domain

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/fd1az/oneinch-nodes/internal/asset"
)

// Rate is the price of an order seen from each side.
type Rate struct {
	// MakerRate is taker units received per maker unit.
	MakerRate decimal.Decimal `json:"makerRate"`
	// TakerRate is maker units received per taker unit.
	TakerRate decimal.Decimal `json:"takerRate"`
}

// CalculateOrderRate computes both rates in human units. A zero side yields
// a zero rate instead of dividing by zero.
func CalculateOrderRate(making, taking *big.Int, makerDecimals, takerDecimals uint8) Rate {
	m := asset.HumanDecimal(making, makerDecimals)
	t := asset.HumanDecimal(taking, takerDecimals)

	r := Rate{MakerRate: decimal.Zero, TakerRate: decimal.Zero}
	if !m.IsZero() {
		r.MakerRate = t.DivRound(m, 18)
	}
	if !t.IsZero() {
		r.TakerRate = m.DivRound(t, 18)
	}
	return r
}
