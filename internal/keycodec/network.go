// Package keycodec encodes and decodes raw key material to and from each
// network's canonical private-key and address string formats.
package keycodec

import (
	"mcwallet/internal/model"
)

// Network is the closed set of supported networks. Dispatch is an exhaustive
// switch in every component so adding a network is a compile-time exercise.
type Network int

const (
	// BSC is the EVM-style network: secp256k1 keys, 0x-hex addresses.
	BSC Network = iota
	// Solana is the Ed25519 network: 64-byte secret keys, Base58 addresses.
	Solana
)

// Wire tags used in persisted records and API payloads.
const (
	networkTagBSC    = "BSC"
	networkTagSolana = "Solana"
)

// String returns the wire tag for the network.
func (n Network) String() string {
	switch n {
	case BSC:
		return networkTagBSC
	case Solana:
		return networkTagSolana
	default:
		return "unknown"
	}
}

// NativeSymbol returns the native-currency ticker for the network.
func (n Network) NativeSymbol() string {
	switch n {
	case BSC:
		return "BNB"
	case Solana:
		return "SOL"
	default:
		return ""
	}
}

// ParseNetwork maps a wire tag to its Network. Unknown tags are a
// ValidationError, never a silent default.
func ParseNetwork(tag string) (Network, error) {
	switch tag {
	case networkTagBSC:
		return BSC, nil
	case networkTagSolana:
		return Solana, nil
	default:
		return 0, &model.ValidationError{Field: "network", Message: "unsupported network: " + tag}
	}
}

// Generate creates a fresh keypair for the network from a cryptographically
// secure random source. Returns the canonical address and private-key strings.
func Generate(network Network) (address, privateKey string, err error) {
	switch network {
	case BSC:
		return generateEVM()
	case Solana:
		return generateSolana()
	default:
		return "", "", &model.ValidationError{Field: "network", Message: "unsupported network"}
	}
}

// FromPrivateKey normalizes and validates an imported private key and
// re-derives its address.
func FromPrivateKey(network Network, input string) (address, privateKey string, err error) {
	switch network {
	case BSC:
		return evmFromPrivateKey(input)
	case Solana:
		return solanaFromPrivateKey(input)
	default:
		return "", "", &model.ValidationError{Field: "network", Message: "unsupported network"}
	}
}

// IsValidAddress reports whether address is structurally valid for the network.
func IsValidAddress(network Network, address string) bool {
	switch network {
	case BSC:
		return isValidEVMAddress(address)
	case Solana:
		return isValidSolanaAddress(address)
	default:
		return false
	}
}
