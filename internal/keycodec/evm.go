package keycodec

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"mcwallet/internal/model"
)

const (
	// 0x + 64 hex chars (32 bytes)
	evmPrivateKeyLen = 66
	// 0x + 40 hex chars (20 bytes)
	evmAddressLen = 42
)

var (
	evmAddressRe    = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	evmPrivateKeyRe = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// generateEVM creates a fresh secp256k1 keypair. The private key canonical
// form is 0x + 64 hex chars, the address 0x + 40 hex chars.
func generateEVM() (string, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}

	raw := crypto.FromECDSA(key)
	defer clear(raw)

	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	privateKey := "0x" + hex.EncodeToString(raw)
	return address, privateKey, nil
}

// evmFromPrivateKey normalizes an imported key (trim whitespace, add a
// missing 0x prefix) and rejects anything that is not exactly 0x + 64 hex.
func evmFromPrivateKey(input string) (string, string, error) {
	normalized := strings.TrimSpace(input)
	if normalized == "" {
		return "", "", &model.ValidationError{Field: "privateKey", Message: "cannot be empty"}
	}
	if strings.HasPrefix(normalized, "0X") {
		normalized = "0x" + normalized[2:]
	}
	if !strings.HasPrefix(normalized, "0x") {
		normalized = "0x" + normalized
	}
	if len(normalized) != evmPrivateKeyLen || !evmPrivateKeyRe.MatchString(normalized) {
		return "", "", &model.ValidationError{
			Field:   "privateKey",
			Message: fmt.Sprintf("must be %d hex characters with 0x prefix", evmPrivateKeyLen),
		}
	}

	key, err := crypto.HexToECDSA(normalized[2:])
	if err != nil {
		return "", "", &model.ValidationError{Field: "privateKey", Message: "not a valid secp256k1 key"}
	}

	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	return address, normalized, nil
}

// isValidEVMAddress is a strict structural check: exactly 42 characters,
// 0x prefix, 40 hex digits.
func isValidEVMAddress(address string) bool {
	return len(address) == evmAddressLen && evmAddressRe.MatchString(address)
}
