package domain

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

const (
	maker = "0x00000000000000000000000000000000000000A1"
	weth  = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	usdc  = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

func validParams() BuildParams {
	return BuildParams{
		MakerAsset:   weth,
		TakerAsset:   usdc,
		Maker:        maker,
		MakingAmount: "1000000000000000000",
		TakingAmount: "3000000000",
	}
}

func TestBuildLimitOrder(t *testing.T) {
	p := validParams()
	p.Expiry = 1_700_000_000

	o, err := BuildLimitOrder(p, bytes.NewReader(bytes.Repeat([]byte{0xab}, SaltBytes)))
	require.NoError(t, err)

	assert.Equal(t, maker, o.Receiver, "receiver defaults to maker")
	assert.Equal(t, "0x"+strings.Repeat("ab", 32), o.Salt)
	assert.Equal(t, "0x"+strings.Repeat("0", 56)+"6553f100", o.MakerTraits)

	exp, ok := Expiry(o.MakerTraits)
	require.True(t, ok)
	assert.Equal(t, int64(1_700_000_000), exp)
}

func TestBuildLimitOrderRandomSalt(t *testing.T) {
	a, err := BuildLimitOrder(validParams(), nil)
	require.NoError(t, err)
	b, err := BuildLimitOrder(validParams(), nil)
	require.NoError(t, err)

	assert.Len(t, a.Salt, 2+2*SaltBytes)
	assert.NotEqual(t, a.Salt, b.Salt)
	assert.Equal(t, "0x"+strings.Repeat("0", 64), a.MakerTraits)
}

func TestBuildParamsValidateAccumulates(t *testing.T) {
	p := BuildParams{
		MakerAsset:   usdc,
		TakerAsset:   usdc,
		Maker:        "nope",
		MakingAmount: "0",
		TakingAmount: "abc",
		Expiry:       -1,
	}
	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidationError, apperror.GetCode(err))

	msg := err.Error()
	for _, want := range []string{
		"Invalid maker address",
		"Maker and taker assets must be different",
		"Making amount must be a positive integer",
		"Taking amount must be a positive integer",
		"Expiry must not be negative",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestBuildParamsRejectsNativeAsset(t *testing.T) {
	p := validParams()
	p.MakerAsset = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "makerAsset must be an ERC20 token")
}

func TestCalculateOrderRate(t *testing.T) {
	making, _ := new(big.Int).SetString("2000000000000000000", 10)
	r := CalculateOrderRate(making, big.NewInt(6_000_000_000), 18, 6)
	assert.Equal(t, "3000", r.MakerRate.String())
	assert.Equal(t, "0.000333333333333333", r.TakerRate.String())

	zero := CalculateOrderRate(new(big.Int), big.NewInt(1), 18, 6)
	assert.True(t, zero.MakerRate.IsZero())
	assert.True(t, zero.TakerRate.IsZero())
}

func TestSignAndRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := crypto.PubkeyToAddress(key.PublicKey).Hex()

	p := validParams()
	p.Maker = signer
	o, err := BuildLimitOrder(p, nil)
	require.NoError(t, err)

	const router = "0x111111125421cA6dc452d289314280a0f8842A65"
	hash, sig, err := Sign(o, 1, router, key)
	require.NoError(t, err)

	again, err := Hash(o, 1, router)
	require.NoError(t, err)
	assert.Equal(t, hash, again)

	other, err := Hash(o, 137, router)
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "chain id is part of the domain")

	got, err := RecoverSigner(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, signer, got.Hex())
}

func TestSignRejectsForeignMaker(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	o, err := BuildLimitOrder(validParams(), nil)
	require.NoError(t, err)

	_, _, err = Sign(o, 1, "0x111111125421cA6dc452d289314280a0f8842A65", key)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidInput, apperror.GetCode(err))

	_, _, err = Sign(o, 1, "0x111111125421cA6dc452d289314280a0f8842A65", nil)
	assert.Equal(t, apperror.CodeConfigurationError, apperror.GetCode(err))
}

func TestFilledPercent(t *testing.T) {
	r := OrderRecord{
		RemainingMakerAmount: "250",
		Data:                 Order{MakingAmount: "1000"},
	}
	assert.Equal(t, "75", r.FilledPercent().String())

	assert.True(t, OrderRecord{}.FilledPercent().IsZero())
}
