package signer

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs receipt payloads with the platform key. The signature covers
// keccak256 of the serialized payload, so anyone holding the payload can
// recover and verify the signer address.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// New creates a Signer from a hex-encoded private key. An empty key returns
// (nil, nil): signing is optional and receipts degrade to unsigned.
func New(hexKey string) (*Signer, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, nil
	}

	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid platform private key: %w", err)
	}

	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the lowercase hex address derived from the key.
func (s *Signer) Address() string {
	return strings.ToLower(s.address.Hex())
}

// Sign hashes the payload with keccak256 and signs the digest.
func (s *Signer) Sign(payload []byte) (signature string, signer string, err error) {
	digest := crypto.Keccak256(payload)
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign payload: %w", err)
	}
	return hexutil.Encode(sig), s.Address(), nil
}

// Verify recovers the signing address from a payload/signature pair and
// compares it to want (case-insensitive).
func Verify(payload []byte, signature, want string) (bool, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false, fmt.Errorf("invalid signature encoding: %w", err)
	}

	pub, err := crypto.SigToPub(crypto.Keccak256(payload), sig)
	if err != nil {
		return false, fmt.Errorf("failed to recover public key: %w", err)
	}

	recovered := crypto.PubkeyToAddress(*pub)
	return strings.EqualFold(recovered.Hex(), want), nil
}
