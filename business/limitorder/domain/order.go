// Package domain contains the limit order protocol types: order structs,
// maker traits, rates and EIP-712 hashing.
package domain

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
	"github.com/fd1az/oneinch-nodes/internal/asset"
)

// SaltBytes is the length of a random order salt.
const SaltBytes = 32

// Order is a limit order protocol v4 order.
type Order struct {
	Salt         string `json:"salt"`
	Maker        string `json:"maker"`
	Receiver     string `json:"receiver"`
	MakerAsset   string `json:"makerAsset"`
	TakerAsset   string `json:"takerAsset"`
	MakingAmount string `json:"makingAmount"`
	TakingAmount string `json:"takingAmount"`
	MakerTraits  string `json:"makerTraits"`
}

// BuildParams are the user inputs of a new order.
type BuildParams struct {
	MakerAsset   string `json:"makerAsset"`
	TakerAsset   string `json:"takerAsset"`
	Maker        string `json:"maker"`
	Receiver     string `json:"receiver,omitempty"`
	MakingAmount string `json:"makingAmount"`
	TakingAmount string `json:"takingAmount"`
	// Expiry is a unix timestamp; zero means the order does not expire.
	Expiry int64 `json:"expiry,omitempty"`
}

// Validate collects every invalid field into one VALIDATION_FAILED error.
func (p BuildParams) Validate() error {
	var errs []string
	check := func(field, addr string) {
		switch {
		case !common.IsHexAddress(addr):
			errs = append(errs, fmt.Sprintf("Invalid %s address", field))
		case asset.IsNativeToken(addr) && field != "maker" && field != "receiver":
			errs = append(errs, fmt.Sprintf("%s must be an ERC20 token", field))
		}
	}
	check("maker", p.Maker)
	check("makerAsset", p.MakerAsset)
	check("takerAsset", p.TakerAsset)
	if p.Receiver != "" {
		check("receiver", p.Receiver)
	}
	if common.IsHexAddress(p.MakerAsset) && strings.EqualFold(p.MakerAsset, p.TakerAsset) {
		errs = append(errs, "Maker and taker assets must be different")
	}
	if !isPositiveUint256(p.MakingAmount) {
		errs = append(errs, "Making amount must be a positive integer")
	}
	if !isPositiveUint256(p.TakingAmount) {
		errs = append(errs, "Taking amount must be a positive integer")
	}
	if p.Expiry < 0 {
		errs = append(errs, "Expiry must not be negative")
	}
	if len(errs) > 0 {
		return apperror.Validation(apperror.CodeValidationError, strings.Join(errs, ", "))
	}
	return nil
}

func isPositiveUint256(s string) bool {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() <= 0 {
		return false
	}
	_, overflow := uint256.FromBig(v)
	return !overflow
}

// BuildLimitOrder validates p and assembles an order with a random salt read
// from r (crypto/rand when nil). The receiver defaults to the maker.
func BuildLimitOrder(p BuildParams, r io.Reader) (Order, error) {
	if err := p.Validate(); err != nil {
		return Order{}, err
	}
	salt, err := GenerateSalt(r)
	if err != nil {
		return Order{}, err
	}

	receiver := p.Receiver
	if receiver == "" {
		receiver = p.Maker
	}
	return Order{
		Salt:         salt,
		Maker:        p.Maker,
		Receiver:     receiver,
		MakerAsset:   p.MakerAsset,
		TakerAsset:   p.TakerAsset,
		MakingAmount: strings.TrimSpace(p.MakingAmount),
		TakingAmount: strings.TrimSpace(p.TakingAmount),
		MakerTraits:  MakerTraits(p.Expiry),
	}, nil
}

// GenerateSalt returns 32 random bytes as 0x-prefixed hex.
func GenerateSalt(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, SaltBytes)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", apperror.Internal(apperror.CodeInternalError, "failed to generate order salt", err)
	}
	return hexutil.Encode(b), nil
}

// MakerTraits encodes the expiry as a 0x-prefixed, 64 digit hex word.
// No expiry encodes as all zeros.
func MakerTraits(expiry int64) string {
	if expiry <= 0 {
		expiry = 0
	}
	return fmt.Sprintf("0x%064x", expiry)
}

// Expiry decodes the expiry MakerTraits put in the low bits of the word.
func Expiry(makerTraits string) (int64, bool) {
	v, ok := new(big.Int).SetString(strings.TrimPrefix(makerTraits, "0x"), 16)
	if !ok || !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}
