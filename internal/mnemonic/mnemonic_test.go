package mnemonic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"

	"mcwallet/internal/keycodec"
	"mcwallet/internal/model"
)

// Standard BIP-39 test mnemonic (all-zero entropy).
const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGenerate_WordCounts(t *testing.T) {
	wordList := map[string]bool{}
	for _, w := range bip39.GetWordList() {
		wordList[w] = true
	}

	for _, count := range []int{12, 24} {
		phrase, err := Generate(count)
		require.NoError(t, err)

		words := strings.Split(phrase, " ")
		assert.Len(t, words, count)
		for _, w := range words {
			assert.True(t, wordList[w], "word %q not in the BIP-39 wordlist", w)
		}
		assert.True(t, Validate(phrase), "generated mnemonic must validate")
	}
}

func TestGenerate_RejectsOtherCounts(t *testing.T) {
	for _, count := range []int{0, 6, 15, 18, 21, 23, 25} {
		_, err := Generate(count)
		require.Error(t, err, "count %d", count)
		assert.True(t, model.IsValidationError(err))
	}
}

func TestGenerate_Fresh(t *testing.T) {
	a, err := Generate(12)
	require.NoError(t, err)
	b, err := Generate(12)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidate_Boundary(t *testing.T) {
	assert.True(t, Validate(testMnemonic))

	// normalization: case, surrounding and internal whitespace
	assert.True(t, Validate("  "+strings.ToUpper(testMnemonic)+"  "))
	assert.True(t, Validate(strings.ReplaceAll(testMnemonic, " ", "   ")))

	words := strings.Split(testMnemonic, " ")

	// non-canonical word counts
	assert.False(t, Validate(strings.Join(words[:11], " ")))
	assert.False(t, Validate(strings.Join(append(append([]string{}, words...), "abandon"), " ")))
	assert.False(t, Validate(""))
	assert.False(t, Validate("abandon"))

	// correct length, corrupted checksum
	corrupted := append([]string{}, words...)
	corrupted[11] = "zoo"
	assert.False(t, Validate(strings.Join(corrupted, " ")))

	// word outside the wordlist
	bad := append([]string{}, words...)
	bad[0] = "notaword"
	assert.False(t, Validate(strings.Join(bad, " ")))
}

func TestDeriveKey_BSCKnownVector(t *testing.T) {
	// Reference vector for the all-zero-entropy mnemonic at m/44'/60'/0'/0/0.
	address, privateKey, err := DeriveKey(testMnemonic, keycodec.BSC, "")
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", address)
	assert.Equal(t, "0x1837c1be8e2995ec11cda2b066151be2cfb48adf9e47b151d46adab3a21cdf67", privateKey)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	for _, network := range []keycodec.Network{keycodec.BSC, keycodec.Solana} {
		first, firstKey, err := DeriveKey(testMnemonic, network, "")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			address, key, err := DeriveKey(testMnemonic, network, "")
			require.NoError(t, err)
			assert.Equal(t, first, address, "network %s", network)
			assert.Equal(t, firstKey, key)
		}

		assert.True(t, keycodec.IsValidAddress(network, first))
	}
}

func TestDeriveKey_PathChangesAddress(t *testing.T) {
	base, _, err := DeriveKey(testMnemonic, keycodec.BSC, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	next, _, err := DeriveKey(testMnemonic, keycodec.BSC, "m/44'/60'/0'/0/1")
	require.NoError(t, err)
	assert.NotEqual(t, base, next)
}

func TestDeriveKey_MatchesCodecImport(t *testing.T) {
	// The derived key must re-import to the same address through the codec.
	for _, network := range []keycodec.Network{keycodec.BSC, keycodec.Solana} {
		address, privateKey, err := DeriveKey(testMnemonic, network, "")
		require.NoError(t, err)

		gotAddress, _, err := keycodec.FromPrivateKey(network, privateKey)
		require.NoError(t, err)
		assert.Equal(t, address, gotAddress, "network %s", network)
	}
}

func TestDeriveKey_InvalidInputs(t *testing.T) {
	_, _, err := DeriveKey("not a mnemonic at all", keycodec.BSC, "")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	for _, path := range []string{"m/", "m/44'/x/0", "m/44'/60'/0'/0/4294967296", "//"} {
		_, _, err := DeriveKey(testMnemonic, keycodec.BSC, path)
		require.Error(t, err, "path %q", path)
		assert.True(t, model.IsValidationError(err))
	}
}
