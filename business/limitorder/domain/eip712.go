package domain

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

// EIP-712 domain of the aggregation router that hosts the protocol.
const (
	DomainName    = "1inch Aggregation Router"
	DomainVersion = "6"
)

var orderTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Order": {
		{Name: "salt", Type: "uint256"},
		{Name: "maker", Type: "address"},
		{Name: "receiver", Type: "address"},
		{Name: "makerAsset", Type: "address"},
		{Name: "takerAsset", Type: "address"},
		{Name: "makingAmount", Type: "uint256"},
		{Name: "takingAmount", Type: "uint256"},
		{Name: "makerTraits", Type: "uint256"},
	},
}

// TypedData returns the EIP-712 payload of o on a chain.
func TypedData(o Order, chainID uint64, verifyingContract string) apitypes.TypedData {
	return apitypes.TypedData{
		Types:       orderTypes,
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              DomainName,
			Version:           DomainVersion,
			ChainId:           math.NewHexOrDecimal256(int64(chainID)),
			VerifyingContract: verifyingContract,
		},
		Message: apitypes.TypedDataMessage{
			"salt":         o.Salt,
			"maker":        o.Maker,
			"receiver":     o.Receiver,
			"makerAsset":   o.MakerAsset,
			"takerAsset":   o.TakerAsset,
			"makingAmount": o.MakingAmount,
			"takingAmount": o.TakingAmount,
			"makerTraits":  o.MakerTraits,
		},
	}
}

// Hash returns the EIP-712 digest of o, the order hash the orderbook indexes.
func Hash(o Order, chainID uint64, verifyingContract string) (common.Hash, error) {
	digest, _, err := apitypes.TypedDataAndHash(TypedData(o, chainID, verifyingContract))
	if err != nil {
		return common.Hash{}, apperror.New(apperror.CodeInvalidInput,
			apperror.WithCause(err),
			apperror.WithContext("order cannot be hashed: "+err.Error()))
	}
	return common.BytesToHash(digest), nil
}

// Sign hashes o and signs the digest with key. The signature carries v as 27/28.
func Sign(o Order, chainID uint64, verifyingContract string, key *ecdsa.PrivateKey) (common.Hash, string, error) {
	if key == nil {
		return common.Hash{}, "", apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("no signing key configured"))
	}
	if addr := crypto.PubkeyToAddress(key.PublicKey); !strings.EqualFold(addr.Hex(), o.Maker) {
		return common.Hash{}, "", apperror.Validation(apperror.CodeInvalidInput,
			"signing key belongs to "+addr.Hex()+", not the order maker")
	}

	h, err := Hash(o, chainID, verifyingContract)
	if err != nil {
		return common.Hash{}, "", err
	}
	sig, err := crypto.Sign(h.Bytes(), key)
	if err != nil {
		return common.Hash{}, "", apperror.Internal(apperror.CodeInternalError, "failed to sign order", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return h, hexutil.Encode(sig), nil
}

// RecoverSigner returns the address that produced signature over hash.
func RecoverSigner(hash common.Hash, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return common.Address{}, apperror.Validation(apperror.CodeInvalidInput, "malformed signature")
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return common.Address{}, apperror.Validation(apperror.CodeInvalidInput, "signature does not recover: "+err.Error())
	}
	return crypto.PubkeyToAddress(*pub), nil
}
