package model

import (
	"errors"
	"fmt"
)

// ConfigError indicates an invalid configuration, typically a missing or
// too-weak password at manager construction time. Fatal to construction.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// IsConfigError checks if error is ConfigError
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// ValidationError indicates malformed caller input: address, private key,
// mnemonic or derivation path.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError checks if error is ValidationError
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// CryptoError indicates a failed encryption or decryption. The message stays
// generic on purpose: a wrong password and a corrupted blob read the same to
// an attacker, while the caller still knows decryption did not succeed.
type CryptoError struct {
	Message string
}

func (e *CryptoError) Error() string {
	return e.Message
}

// IsCryptoError checks if error is CryptoError
func IsCryptoError(err error) bool {
	var e *CryptoError
	return errors.As(err, &e)
}

// NetworkError indicates a balance-lookup failure. Timeout distinguishes a
// deadline hit from a connection or server failure.
type NetworkError struct {
	Message string
	Timeout bool
}

func (e *NetworkError) Error() string {
	return e.Message
}

// IsNetworkError checks if error is NetworkError
func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsTimeoutError checks if error is a NetworkError caused by a timeout
func IsTimeoutError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e) && e.Timeout
}

// StorageError indicates a persistence failure. Duplicate and LimitReached
// let callers check for the two recoverable conditions.
type StorageError struct {
	Message      string
	Duplicate    bool
	LimitReached bool
}

func (e *StorageError) Error() string {
	return e.Message
}

// IsStorageError checks if error is StorageError
func IsStorageError(err error) bool {
	var e *StorageError
	return errors.As(err, &e)
}

// IsDuplicateAddressError checks if error is a StorageError for a duplicate address
func IsDuplicateAddressError(err error) bool {
	var e *StorageError
	return errors.As(err, &e) && e.Duplicate
}

// IsWalletLimitError checks if error is a StorageError for the record cap
func IsWalletLimitError(err error) bool {
	var e *StorageError
	return errors.As(err, &e) && e.LimitReached
}

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
