package model

// WalletRecord is the persisted wallet layout. EncryptedKey is the only form
// of the private key that ever reaches storage: a Base64 blob of
// salt(16) || iv(16) || ciphertext, opaque to the store.
type WalletRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Network      string `json:"network"` // "BSC" or "Solana"
	EncryptedKey string `json:"encrypted_key"`
	CreatedAt    int64  `json:"created_at"` // epoch milliseconds
}

// CreateWalletRequest represents request body for POST /wallets
type CreateWalletRequest struct {
	Name    string `json:"name"`
	Network string `json:"network"`
}

// CreateBatchRequest represents request body for POST /wallets/batch
type CreateBatchRequest struct {
	Count      int    `json:"count"`
	Network    string `json:"network"`
	NamePrefix string `json:"name_prefix"`
}

// ImportWalletRequest represents request body for POST /wallets/import
type ImportWalletRequest struct {
	Name    string `json:"name"`
	Network string `json:"network"`
	Data    string `json:"data"`
	Type    string `json:"type"` // "privateKey" or "mnemonic"
	Path    string `json:"path,omitempty"`
}

// WalletResponse is returned by create and import endpoints. PrivateKey is
// present exactly once, for user backup; it is never returned again.
type WalletResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Network      string `json:"network"`
	PrivateKey   string `json:"private_key,omitempty"`
	EncryptedKey string `json:"encrypted_key"`
	CreatedAt    int64  `json:"created_at"`
	AddressQR    string `json:"address_qr,omitempty"` // base64 PNG
}

// RecoverRequest represents request body for POST /wallets/recover
type RecoverRequest struct {
	Network    string `json:"network"`
	PrivateKey string `json:"private_key"`
}

// RecoverResponse represents response for POST /wallets/recover
type RecoverResponse struct {
	Address string `json:"address"`
	Network string `json:"network"`
}

// ScoreRequest represents request body for POST /password/score
type ScoreRequest struct {
	Password string `json:"password"`
}

// ScoreResponse represents response for POST /password/score
type ScoreResponse struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}
