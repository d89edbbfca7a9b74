package keymanager

import (
	"sync"

	"mcwallet/internal/model"
)

// RevealedKey wraps a plaintext private key handed to a caller for one-time
// display or backup. Reveal works exactly once and wipes the value after,
// so holding on to the wrapper is useless and accidental retention of the
// plaintext takes deliberate effort.
type RevealedKey struct {
	mu       sync.Mutex
	value    string
	revealed bool
}

func newRevealedKey(value string) *RevealedKey {
	return &RevealedKey{value: value}
}

// Reveal returns the plaintext key on the first call and an error on every
// call after that.
func (k *RevealedKey) Reveal() (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.revealed {
		return "", &model.CryptoError{Message: "private key already revealed"}
	}
	k.revealed = true
	value := k.value
	k.value = ""
	return value, nil
}
