package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

func TestFormatGasPrice(t *testing.T) {
	got := FormatGasPrice(big.NewInt(25_500_000_000))
	assert.Equal(t, FormattedGasPrice{Wei: "25500000000", Gwei: "25.50", Eth: "0.000000026"}, got)

	assert.Equal(t, "0", FormatGasPrice(nil).Wei)
}

func TestEstimateTransactionCost(t *testing.T) {
	got := EstimateTransactionCost(big.NewInt(20_000_000_000), 21_000, d("3000"))
	assert.Equal(t, TransactionCost{
		CostWei: "420000000000000",
		CostEth: "0.000420",
		CostUSD: "1.26",
	}, got)
}

func TestNewGasPrice(t *testing.T) {
	p := NewGasPrice(big.NewInt(30_000_000_000))
	assert.True(t, p.Gwei.Equal(d("30")))
	assert.False(t, p.Timestamp.IsZero())

	_, err := ParseGasPrice("abc")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err))
}

func TestGasPricesTier(t *testing.T) {
	g := GasPrices{
		BaseFee: "10000000000",
		Low:     Tier{MaxPriorityFeePerGas: "1000000000", MaxFeePerGas: "11000000000"},
		Medium:  Tier{MaxPriorityFeePerGas: "1500000000", MaxFeePerGas: "12500000000"},
		High:    Tier{MaxPriorityFeePerGas: "2000000000", MaxFeePerGas: "14000000000"},
		Instant: Tier{MaxPriorityFeePerGas: "3000000000", MaxFeePerGas: "16000000000"},
	}

	gwei, err := g.MaxFeeGwei("")
	require.NoError(t, err)
	assert.True(t, gwei.Equal(d("12.5")))

	gwei, err = g.MaxFeeGwei("Instant")
	require.NoError(t, err)
	assert.True(t, gwei.Equal(d("16")))

	_, err = g.Tier("ludicrous")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidInput, apperror.GetCode(err))
}
