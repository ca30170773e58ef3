package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	limitorder "github.com/fd1az/oneinch-nodes/business/limitorder/domain"
)

func TestStatusIsFinal(t *testing.T) {
	assert.False(t, StatusPending.IsFinal())
	assert.False(t, StatusPartiallyFilled.IsFinal())
	assert.True(t, StatusFilled.IsFinal())
	assert.True(t, StatusCancelled.IsFinal())
	assert.True(t, StatusExpired.IsFinal())
}

func TestOrderStatusFills(t *testing.T) {
	o := OrderStatus{
		Status: StatusPartiallyFilled,
		Order:  limitorder.Order{MakingAmount: "1000"},
		Fills: []Fill{
			{TxHash: "0x1", FilledMakerAmount: "200"},
			{TxHash: "0x2", FilledMakerAmount: "50"},
			{TxHash: "0x3", FilledMakerAmount: "junk"},
		},
		AuctionStartTime: 1_700_000_000,
		AuctionDuration:  180,
	}
	assert.Equal(t, "250", o.FilledMakingAmount().String())
	assert.Equal(t, "25", o.FilledPercent().String())
	assert.Equal(t, time.Unix(1_700_000_180, 0).UTC(), o.AuctionEnd())

	assert.True(t, OrderStatus{}.FilledPercent().IsZero())
	assert.True(t, OrderStatus{}.AuctionEnd().IsZero())
}

func TestSignedOrderJSON(t *testing.T) {
	b, err := json.Marshal(SignedOrder{Order: limitorder.Order{Maker: wallet}, Signature: "0xsig", QuoteID: "q1"})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "0xsig", m["signature"])
	assert.Equal(t, "q1", m["quoteId"])
	assert.Equal(t, wallet, m["order"].(map[string]any)["maker"])
}

func TestValidOrderHash(t *testing.T) {
	assert.True(t, ValidOrderHash("0x"+strings.Repeat("ab", 32)))
	assert.False(t, ValidOrderHash("0x1234"))
	assert.False(t, ValidOrderHash(""))
}

func TestCrossChain(t *testing.T) {
	valid := CrossChainQuoteParams{SrcChain: 1, DstChain: 137, SrcTokenAddress: usdc, DstTokenAddress: usdc, Amount: "5", WalletAddress: wallet}
	require.NoError(t, valid.Validate())

	same := valid
	same.DstChain = 1
	err := same.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chains must be different")

	missing := valid
	missing.SrcChain = 0
	assert.ErrorContains(t, missing.Validate(), "chains are required")

	assert.True(t, CrossChainStatus{Status: StatusFilled}.Settled())
	assert.True(t, CrossChainStatus{Status: StatusFilled, BridgeStatus: BridgeCompleted}.Settled())
	assert.False(t, CrossChainStatus{Status: StatusFilled, BridgeStatus: BridgePending}.Settled())
	assert.False(t, CrossChainStatus{Status: StatusPending}.Settled())
}
