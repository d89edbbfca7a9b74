package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"mcwallet/internal/model"
)

const (
	// PBKDF2 parameters for the record cipher.
	//
	// 100k iterations of HMAC-SHA256 keeps a single derivation in the
	// low-millisecond range while staying expensive enough for offline
	// brute force against the stored blobs.
	kdfIterations = 100_000
	kdfKeyLen     = 32

	saltLen = 16
	ivLen   = 16
)

// Encrypt encrypts plaintext with a key derived from password and returns
// the storage blob: Base64(salt(16) || iv(16) || ciphertext). The byte order
// is the wire format for persisted records and must not change.
func Encrypt(plaintext, password string) (string, error) {
	if plaintext == "" {
		return "", &model.ValidationError{Field: "plaintext", Message: "cannot be empty"}
	}
	if password == "" {
		return "", &model.ValidationError{Field: "password", Message: "cannot be empty"}
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, kdfIterations, kdfKeyLen, sha256.New)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	defer clear(padded)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	// salt first, then IV, then ciphertext - no prefixes, no delimiters
	blob := make([]byte, 0, saltLen+ivLen+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, iv...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// EncryptObject JSON-marshals v and encrypts the result. No extra framing.
func EncryptObject(v any, password string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal object: %w", err)
	}
	defer clear(data)
	return Encrypt(string(data), password)
}

// pkcs7Pad pads data to a multiple of blockSize. A full block of padding is
// added when data is already aligned, so unpadding is always unambiguous.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}
