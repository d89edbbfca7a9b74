// Package keymanager orchestrates key generation, import, encryption and
// balance reporting across the supported networks. A manager instance owns
// its password for its whole lifetime; plaintext keys leave it exactly once,
// wrapped in a RevealedKey, and never reach persistent storage.
package keymanager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/ratelimit"

	"mcwallet/internal/crypto"
	"mcwallet/internal/keycodec"
	"mcwallet/internal/mnemonic"
	"mcwallet/internal/model"
	"mcwallet/internal/password"
)

// Import type tags accepted by ImportWallet.
const (
	ImportTypePrivateKey = "privateKey"
	ImportTypeMnemonic   = "mnemonic"
)

// DefaultBalanceTimeout bounds a single balance lookup.
const DefaultBalanceTimeout = 10 * time.Second

// balanceRatePerSecond paces sequential batch lookups so upstream RPC rate
// limits are respected.
const balanceRatePerSecond = 5

// BalanceLookup is the external balance collaborator for one network.
// NativeBalance returns the balance as a decimal string in the network's
// native unit, never its smallest subunit.
type BalanceLookup interface {
	NativeBalance(ctx context.Context, address string) (string, error)
	Symbol() string
}

// Wallet is the result of a create or import operation. PrivateKey is a
// reveal-once wrapper around the plaintext key for user backup; EncryptedKey
// is the only form meant for persistence.
type Wallet struct {
	ID           string
	Name         string
	Address      string
	Network      keycodec.Network
	PrivateKey   *RevealedKey
	EncryptedKey string
	CreatedAt    int64
}

// Record converts the wallet to its persisted layout. The plaintext key is
// deliberately absent.
func (w *Wallet) Record() model.WalletRecord {
	return model.WalletRecord{
		ID:           w.ID,
		Name:         w.Name,
		Address:      w.Address,
		Network:      w.Network.String(),
		EncryptedKey: w.EncryptedKey,
		CreatedAt:    w.CreatedAt,
	}
}

// Options configures a KeyManager.
type Options struct {
	// Password becomes the instance encryption secret. Must pass the
	// strength gate.
	Password string
	// Lookups maps each network to its balance collaborator. Optional;
	// balance operations fail cleanly for networks without one.
	Lookups map[keycodec.Network]BalanceLookup
	// BalanceTimeout bounds one lookup. Defaults to DefaultBalanceTimeout.
	BalanceTimeout time.Duration
	// Limiter paces batch lookups. Defaults to balanceRatePerSecond per
	// second; tests inject ratelimit.NewUnlimited().
	Limiter ratelimit.Limiter
}

// KeyManager exposes the wallet operations. Construct with New; a manager
// whose password failed the gate is never returned.
type KeyManager struct {
	secret         string
	lookups        map[keycodec.Network]BalanceLookup
	balanceTimeout time.Duration
	limiter        ratelimit.Limiter
}

// New validates the password against the strength gate and returns a ready
// manager. A ConfigError means no usable instance exists.
func New(opts Options) (*KeyManager, error) {
	if err := password.Validate(opts.Password); err != nil {
		return nil, err
	}

	timeout := opts.BalanceTimeout
	if timeout <= 0 {
		timeout = DefaultBalanceTimeout
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = ratelimit.New(balanceRatePerSecond)
	}

	return &KeyManager{
		secret:         opts.Password,
		lookups:        opts.Lookups,
		balanceTimeout: timeout,
		limiter:        limiter,
	}, nil
}

// CreateWallet generates a fresh keypair for the network and encrypts the
// private key under the instance password. Persistence is the caller's
// responsibility.
func (m *KeyManager) CreateWallet(name string, network keycodec.Network) (*Wallet, error) {
	if name == "" {
		return nil, &model.ValidationError{Field: "name", Message: "cannot be empty"}
	}

	address, privateKey, err := keycodec.Generate(network)
	if err != nil {
		return nil, err
	}

	return m.assemble(name, network, address, privateKey)
}

// CreateMultipleWallets creates count wallets sequentially. Wallets are
// independent: a failure at index k returns the k wallets already created
// together with an error naming the failing index.
func (m *KeyManager) CreateMultipleWallets(count int, network keycodec.Network, namePrefix string) ([]*Wallet, error) {
	if count <= 0 {
		return nil, &model.ValidationError{Field: "count", Message: "must be positive"}
	}
	if namePrefix == "" {
		return nil, &model.ValidationError{Field: "namePrefix", Message: "cannot be empty"}
	}

	wallets := make([]*Wallet, 0, count)
	for i := 1; i <= count; i++ {
		wallet, err := m.CreateWallet(fmt.Sprintf("%s-%d", namePrefix, i), network)
		if err != nil {
			return wallets, fmt.Errorf("wallet %d of %d: %w", i, count, err)
		}
		wallets = append(wallets, wallet)
	}
	return wallets, nil
}

// ImportWallet imports key material from a raw private key or a mnemonic
// and encrypts it like CreateWallet. path applies to mnemonic imports only;
// empty means the network default.
func (m *KeyManager) ImportWallet(name string, network keycodec.Network, data, importType, path string) (*Wallet, error) {
	if name == "" {
		return nil, &model.ValidationError{Field: "name", Message: "cannot be empty"}
	}
	if data == "" {
		return nil, &model.ValidationError{Field: "data", Message: "cannot be empty"}
	}

	var (
		address    string
		privateKey string
		err        error
	)
	switch importType {
	case ImportTypePrivateKey:
		address, privateKey, err = keycodec.FromPrivateKey(network, data)
	case ImportTypeMnemonic:
		address, privateKey, err = mnemonic.DeriveKey(data, network, path)
	default:
		return nil, &model.ValidationError{Field: "type", Message: "must be privateKey or mnemonic"}
	}
	if err != nil {
		return nil, err
	}

	return m.assemble(name, network, address, privateKey)
}

// DecryptPrivateKey decrypts a stored blob with the instance password.
func (m *KeyManager) DecryptPrivateKey(blob string) (string, error) {
	return crypto.Decrypt(blob, m.secret)
}

// RecoverWallet re-derives the address for a raw private key without
// needing the password. Used to verify a decrypted key matches an expected
// address.
func (m *KeyManager) RecoverWallet(network keycodec.Network, privateKey string) (string, error) {
	address, _, err := keycodec.FromPrivateKey(network, privateKey)
	if err != nil {
		return "", err
	}
	return address, nil
}

// ValidateAddress reports whether address is structurally valid for the
// network.
func (m *KeyManager) ValidateAddress(address string, network keycodec.Network) bool {
	return keycodec.IsValidAddress(network, address)
}

// GetBalance validates the address locally, then queries the network's
// balance collaborator under the configured timeout. Collaborator failures
// surface as NetworkError; a deadline hit is a distinct timeout flavor.
// No caching, no internal retry.
func (m *KeyManager) GetBalance(ctx context.Context, address string, network keycodec.Network) (*model.BalanceResult, error) {
	if !keycodec.IsValidAddress(network, address) {
		return nil, &model.ValidationError{Field: "address", Message: "invalid address for network " + network.String()}
	}

	lookup, ok := m.lookups[network]
	if !ok {
		return nil, &model.ConfigError{Message: "no balance lookup configured for network " + network.String()}
	}

	queryCtx, cancel := context.WithTimeout(ctx, m.balanceTimeout)
	defer cancel()

	balance, err := lookup.NativeBalance(queryCtx, address)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || queryCtx.Err() == context.DeadlineExceeded {
			return nil, &model.NetworkError{Message: "balance query failed: timeout", Timeout: true}
		}
		return nil, &model.NetworkError{Message: fmt.Sprintf("balance query failed: %v", err)}
	}

	return &model.BalanceResult{
		Address:       address,
		Network:       network.String(),
		NativeBalance: balance,
		NativeSymbol:  lookup.Symbol(),
	}, nil
}

// GetBalances runs GetBalance sequentially over queries, paced by the rate
// limiter. Lenient batch semantics: a failing entry degrades to a
// zero-balance placeholder instead of aborting the batch.
func (m *KeyManager) GetBalances(ctx context.Context, queries []model.BalanceQuery) []model.BalanceResult {
	results := make([]model.BalanceResult, 0, len(queries))
	for _, q := range queries {
		m.limiter.Take()

		network, err := keycodec.ParseNetwork(q.Network)
		if err != nil {
			results = append(results, zeroBalance(q))
			continue
		}

		result, err := m.GetBalance(ctx, q.Address, network)
		if err != nil {
			results = append(results, zeroBalance(q))
			continue
		}
		results = append(results, *result)
	}
	return results
}

// zeroBalance is the placeholder for a failed batch entry. This is the only
// path where "0" may stand in for a failure.
func zeroBalance(q model.BalanceQuery) model.BalanceResult {
	symbol := ""
	if network, err := keycodec.ParseNetwork(q.Network); err == nil {
		symbol = network.NativeSymbol()
	}
	return model.BalanceResult{
		Address:       q.Address,
		Network:       q.Network,
		NativeBalance: "0",
		NativeSymbol:  symbol,
	}
}

// assemble encrypts the private key and builds the wallet object. The
// plaintext key is referenced only by the reveal-once wrapper from here on.
func (m *KeyManager) assemble(name string, network keycodec.Network, address, privateKey string) (*Wallet, error) {
	encrypted, err := crypto.Encrypt(privateKey, m.secret)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		ID:           uuid.NewString(),
		Name:         name,
		Address:      address,
		Network:      network,
		PrivateKey:   newRevealedKey(privateKey),
		EncryptedKey: encrypted,
		CreatedAt:    time.Now().UnixMilli(),
	}, nil
}
