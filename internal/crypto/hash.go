package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the SHA-256 hex digest of password. Used only for
// login-verification hashes, never for key derivation - derived keys always
// go through PBKDF2 with a salt.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPasswordHash recomputes the hash of password and compares it with
// hash in constant time.
func VerifyPasswordHash(password, hash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
