package keycodec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"mcwallet/internal/model"
)

const (
	// 32-byte seed + 32-byte public key, per the Solana keypair convention
	solanaSecretKeyLen = 64

	solanaAddressMinLen = 32
	solanaAddressMaxLen = 44
)

// generateSolana creates a fresh Ed25519 keypair. The private key canonical
// form is Base64 of the 64-byte secret key, the address its Base58 public key.
func generateSolana() (string, string, error) {
	wallet := solana.NewWallet()
	defer clear(wallet.PrivateKey)

	address := wallet.PublicKey().String()
	privateKey := base64.StdEncoding.EncodeToString(wallet.PrivateKey)
	return address, privateKey, nil
}

// solanaFromPrivateKey accepts either a Base64 string or a JSON array of
// integers and rejects anything that does not decode to exactly 64 bytes.
func solanaFromPrivateKey(input string) (string, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", "", &model.ValidationError{Field: "privateKey", Message: "cannot be empty"}
	}

	var raw []byte
	if strings.HasPrefix(trimmed, "[") {
		var ints []int
		if err := json.Unmarshal([]byte(trimmed), &ints); err != nil {
			return "", "", &model.ValidationError{Field: "privateKey", Message: "not a valid JSON byte array"}
		}
		raw = make([]byte, len(ints))
		for i, v := range ints {
			if v < 0 || v > 255 {
				return "", "", &model.ValidationError{Field: "privateKey", Message: "byte values must be 0-255"}
			}
			raw[i] = byte(v)
		}
	} else {
		decoded, err := base64.StdEncoding.DecodeString(trimmed)
		if err != nil {
			return "", "", &model.ValidationError{Field: "privateKey", Message: "not valid Base64"}
		}
		raw = decoded
	}
	defer clear(raw)

	if len(raw) != solanaSecretKeyLen {
		return "", "", &model.ValidationError{
			Field:   "privateKey",
			Message: fmt.Sprintf("secret key must decode to exactly %d bytes, got %d", solanaSecretKeyLen, len(raw)),
		}
	}

	key := solana.PrivateKey(raw)
	address := key.PublicKey().String()
	privateKey := base64.StdEncoding.EncodeToString(raw)
	return address, privateKey, nil
}

// isValidSolanaAddress checks the 32-44 character length range and that the
// string decodes as Base58 (rejecting characters outside the alphabet).
func isValidSolanaAddress(address string) bool {
	if len(address) < solanaAddressMinLen || len(address) > solanaAddressMaxLen {
		return false
	}
	decoded, err := base58.Decode(address)
	if err != nil {
		return false
	}
	return len(decoded) == solana.PublicKeyLength
}
