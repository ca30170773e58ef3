package app

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/fd1az/oneinch-nodes/internal/apperror"
)

// ParseKey reads a hex private key, with or without 0x. Empty input is no key.
func ParseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, nil
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, apperror.New(apperror.CodeInvalidCredentials,
			apperror.WithCause(err),
			apperror.WithContext("private key is not a valid secp256k1 key"))
	}
	return key, nil
}

func addressOf(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}
