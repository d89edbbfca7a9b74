package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"mcwallet/internal/model"
)

// errDecryptionFailed is the one message surfaced for any unrecoverable
// blob: wrong password and corrupted data are deliberately not distinguished.
const errDecryptionFailed = "decryption failed, password may be incorrect"

// Decrypt reverses Encrypt: Base64-decode, split at 0:16 (salt) and
// 16:32 (IV), re-derive the key from password and the recovered salt, then
// AES-256-CBC decrypt and strip PKCS7 padding. An empty or unrecoverable
// plaintext is an error, never a return value.
func Decrypt(blob, password string) (string, error) {
	if blob == "" {
		return "", &model.ValidationError{Field: "blob", Message: "cannot be empty"}
	}
	if password == "" {
		return "", &model.ValidationError{Field: "password", Message: "cannot be empty"}
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", &model.CryptoError{Message: errDecryptionFailed}
	}
	if len(raw) < saltLen+ivLen+aes.BlockSize || (len(raw)-saltLen-ivLen)%aes.BlockSize != 0 {
		return "", &model.CryptoError{Message: errDecryptionFailed}
	}

	salt := raw[:saltLen]
	iv := raw[saltLen : saltLen+ivLen]
	ciphertext := raw[saltLen+ivLen:]

	key := pbkdf2.Key([]byte(password), salt, kdfIterations, kdfKeyLen, sha256.New)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)
	defer clear(padded)

	plaintext, ok := pkcs7Unpad(padded, aes.BlockSize)
	if !ok || len(plaintext) == 0 {
		return "", &model.CryptoError{Message: errDecryptionFailed}
	}

	return string(plaintext), nil
}

// DecryptObject decrypts blob and JSON-unmarshals the plaintext into v.
func DecryptObject(blob, password string, v any) error {
	plaintext, err := Decrypt(blob, password)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(plaintext), v); err != nil {
		return &model.CryptoError{Message: errDecryptionFailed}
	}
	return nil
}

// pkcs7Unpad validates and strips PKCS7 padding. Returns false when the
// padding is malformed, which is how a wrong key usually manifests in CBC.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, false
	}
	for i := len(data) - padLen; i < len(data); i++ {
		if int(data[i]) != padLen {
			return nil, false
		}
	}
	return data[:len(data)-padLen], true
}
