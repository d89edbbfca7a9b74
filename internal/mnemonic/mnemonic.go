// Package mnemonic generates and validates BIP-39 mnemonics and derives
// per-network keys through BIP-32 hierarchical derivation.
//
// Solana keys are derived by reusing the secp256k1 BIP-32 node at
// m/44'/501'/0'/0' and truncating its private key to a 32-byte Ed25519 seed.
// This is not SLIP-0010 and will not match addresses other wallets derive
// from the same mnemonic; it is kept for continuity with existing records.
package mnemonic

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"

	"mcwallet/internal/model"
)

// Supported entropy sizes in bits.
const (
	entropy12Words = 128
	entropy24Words = 256
)

// Generate creates a new mnemonic of 12 or 24 words from fresh entropy.
func Generate(wordCount int) (string, error) {
	var bits int
	switch wordCount {
	case 12:
		bits = entropy12Words
	case 24:
		bits = entropy24Words
	default:
		return "", &model.ValidationError{
			Field:   "wordCount",
			Message: fmt.Sprintf("must be 12 or 24, got %d", wordCount),
		}
	}

	entropy := make([]byte, bits/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return phrase, nil
}

// Validate normalizes the phrase (trim, lowercase, collapse spaces) and
// checks word count and checksum. Word counts outside {12,15,18,21,24}
// fail before the checksum is even looked at.
func Validate(phrase string) bool {
	normalized := Normalize(phrase)
	if normalized == "" {
		return false
	}

	switch len(strings.Split(normalized, " ")) {
	case 12, 15, 18, 21, 24:
	default:
		return false
	}

	return bip39.IsMnemonicValid(normalized)
}

// Normalize trims, lowercases and collapses whitespace in a phrase.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(phrase))), " ")
}
