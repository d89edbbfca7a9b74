package mnemonic

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip39"

	"mcwallet/internal/keycodec"
	"mcwallet/internal/model"
)

// Default derivation paths per network.
const (
	DefaultPathBSC    = "m/44'/60'/0'/0/0"
	DefaultPathSolana = "m/44'/501'/0'/0'"
)

// DeriveKey derives the keypair for a network from a mnemonic at the given
// path (network default when empty). Deterministic: the same mnemonic, path
// and network always yield the same address.
func DeriveKey(phrase string, network keycodec.Network, path string) (address, privateKey string, err error) {
	normalized := Normalize(phrase)
	if !Validate(normalized) {
		return "", "", &model.ValidationError{Field: "mnemonic", Message: "invalid mnemonic (word count or checksum)"}
	}

	if path == "" {
		switch network {
		case keycodec.BSC:
			path = DefaultPathBSC
		case keycodec.Solana:
			path = DefaultPathSolana
		default:
			return "", "", &model.ValidationError{Field: "network", Message: "unsupported network"}
		}
	}

	indices, err := parsePath(path)
	if err != nil {
		return "", "", err
	}

	seed := bip39.NewSeed(normalized, "")
	defer clear(seed)

	// chaincfg params only feed extended-key version bytes, which never
	// surface here; they do not affect derived key material.
	node, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", "", fmt.Errorf("failed to create master key: %w", err)
	}
	for _, index := range indices {
		node, err = node.Derive(index)
		if err != nil {
			return "", "", fmt.Errorf("failed to derive node: %w", err)
		}
	}

	ecKey, err := node.ECPrivKey()
	if err != nil {
		return "", "", fmt.Errorf("failed to extract private key: %w", err)
	}
	raw := ecKey.Serialize()
	defer clear(raw)

	switch network {
	case keycodec.BSC:
		key, err := crypto.ToECDSA(raw)
		if err != nil {
			return "", "", fmt.Errorf("failed to build secp256k1 key: %w", err)
		}
		address = crypto.PubkeyToAddress(key.PublicKey).Hex()
		privateKey = "0x" + hex.EncodeToString(raw)
		return address, privateKey, nil

	case keycodec.Solana:
		// First 32 bytes of the node key as Ed25519 seed; see package doc
		// for why this is not SLIP-0010.
		edKey := ed25519.NewKeyFromSeed(raw[:32])
		defer clear(edKey)

		solKey := solana.PrivateKey(edKey)
		address = solKey.PublicKey().String()
		privateKey = base64.StdEncoding.EncodeToString(edKey)
		return address, privateKey, nil

	default:
		return "", "", &model.ValidationError{Field: "network", Message: "unsupported network"}
	}
}

// parsePath parses a BIP-32 path string ("m/44'/60'/0'/0/0") into child
// indices. Both ' and h mark hardened components.
func parsePath(path string) ([]uint32, error) {
	trimmed := strings.TrimSpace(path)
	trimmed = strings.TrimPrefix(trimmed, "m/")
	trimmed = strings.TrimPrefix(trimmed, "M/")
	if trimmed == "" {
		return nil, &model.ValidationError{Field: "path", Message: "derivation path cannot be empty"}
	}

	parts := strings.Split(trimmed, "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H") {
			hardened = true
			part = part[:len(part)-1]
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n >= hdkeychain.HardenedKeyStart {
			return nil, &model.ValidationError{
				Field:   "path",
				Message: fmt.Sprintf("invalid path component %q", part),
			}
		}
		index := uint32(n)
		if hardened {
			index += hdkeychain.HardenedKeyStart
		}
		indices = append(indices, index)
	}
	return indices, nil
}
