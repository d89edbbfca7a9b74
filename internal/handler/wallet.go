package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"mcwallet/internal/keycodec"
	"mcwallet/internal/keymanager"
	"mcwallet/internal/model"
	"mcwallet/internal/password"
	"mcwallet/internal/store"
)

// WalletHandler serves the wallet operations over HTTP.
type WalletHandler struct {
	manager *keymanager.KeyManager
	store   *store.SqliteStore
	logger  *zap.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(manager *keymanager.KeyManager, s *store.SqliteStore, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{manager: manager, store: s, logger: logger}
}

// Create handles POST /wallets
// @Summary      Create wallet
// @Description  Generates a new wallet for the given network, persists the encrypted record and returns the plaintext private key exactly once for backup
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateWalletRequest  true  "Wallet data"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	network, err := keycodec.ParseNetwork(req.Network)
	if err != nil {
		writeError(w, err)
		return
	}

	wallet, err := h.manager.CreateWallet(req.Name, network)
	if err != nil {
		writeError(w, err)
		return
	}

	record := wallet.Record()
	if _, err := h.store.Insert(r.Context(), record); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("wallet created",
		zap.String("id", wallet.ID),
		zap.String("network", record.Network),
		zap.String("address", wallet.Address),
	)
	writeJSON(w, http.StatusOK, h.walletResponse(wallet, true))
}

// CreateBatch handles POST /wallets/batch
// @Summary      Create multiple wallets
// @Description  Creates wallets sequentially; a failure at index k leaves wallets 1..k-1 persisted and reports the failing index
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateBatchRequest  true  "Batch data"
// @Success      200      {array}   model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/batch [post]
func (h *WalletHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	network, err := keycodec.ParseNetwork(req.Network)
	if err != nil {
		writeError(w, err)
		return
	}

	wallets, err := h.manager.CreateMultipleWallets(req.Count, network, req.NamePrefix)
	if err != nil && len(wallets) == 0 {
		writeError(w, err)
		return
	}

	responses := make([]model.WalletResponse, 0, len(wallets))
	for _, wallet := range wallets {
		if _, insertErr := h.store.Insert(r.Context(), wallet.Record()); insertErr != nil {
			writeError(w, insertErr)
			return
		}
		responses = append(responses, h.walletResponse(wallet, false))
	}
	if err != nil {
		// surface the failing index after persisting the earlier wallets
		writeError(w, err)
		return
	}

	h.logger.Info("wallet batch created", zap.Int("count", len(responses)), zap.String("network", req.Network))
	writeJSON(w, http.StatusOK, responses)
}

// Import handles POST /wallets/import
// @Summary      Import wallet
// @Description  Imports a wallet from a private key or mnemonic and persists the encrypted record
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportWalletRequest  true  "Import data"
// @Success      200      {object}  model.WalletResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	network, err := keycodec.ParseNetwork(req.Network)
	if err != nil {
		writeError(w, err)
		return
	}

	wallet, err := h.manager.ImportWallet(req.Name, network, req.Data, req.Type, req.Path)
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.store.Insert(r.Context(), wallet.Record()); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("wallet imported",
		zap.String("id", wallet.ID),
		zap.String("network", req.Network),
		zap.String("address", wallet.Address),
	)
	writeJSON(w, http.StatusOK, h.walletResponse(wallet, true))
}

// List handles GET /wallets
// @Summary      List wallets
// @Description  Lists all persisted wallet records (encrypted keys only, no plaintext)
// @Tags         wallets
// @Produce      json
// @Success      200  {array}  model.WalletRecord
// @Router       /wallets [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	records, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Balance handles GET /wallets/balance
// @Summary      Get native balance
// @Description  Gets the native-currency balance for an address as a decimal string
// @Tags         balances
// @Produce      json
// @Param        address  query     string  true  "Address"
// @Param        network  query     string  true  "Network: BSC or Solana"
// @Success      200      {object}  model.BalanceResult
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /wallets/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	network, err := keycodec.ParseNetwork(r.URL.Query().Get("network"))
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.manager.GetBalance(r.Context(), r.URL.Query().Get("address"), network)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Balances handles POST /wallets/balances
// @Summary      Get balances for a batch of addresses
// @Description  Sequential, rate-limited lookups; failed entries degrade to a zero placeholder instead of aborting the batch
// @Tags         balances
// @Accept       json
// @Produce      json
// @Param        request  body      model.BalancesRequest  true  "Addresses"
// @Success      200      {object}  model.BalancesResponse
// @Router       /wallets/balances [post]
func (h *WalletHandler) Balances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.BalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	results := h.manager.GetBalances(r.Context(), req.Queries)
	writeJSON(w, http.StatusOK, model.BalancesResponse{Results: results})
}

// Recover handles POST /wallets/recover
// @Summary      Recover address from private key
// @Description  Re-derives the address for a raw private key without needing the wallet password
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.RecoverRequest  true  "Key data"
// @Success      200      {object}  model.RecoverResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/recover [post]
func (h *WalletHandler) Recover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RecoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	network, err := keycodec.ParseNetwork(req.Network)
	if err != nil {
		writeError(w, err)
		return
	}

	address, err := h.manager.RecoverWallet(network, req.PrivateKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.RecoverResponse{Address: address, Network: req.Network})
}

// Score handles POST /password/score
// @Summary      Score a password
// @Description  Advisory 0..4 strength score for UI feedback; does not gate anything
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        request  body      model.ScoreRequest  true  "Password"
// @Success      200      {object}  model.ScoreResponse
// @Router       /password/score [post]
func (h *WalletHandler) Score(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &model.ValidationError{Field: "body", Message: err.Error()})
		return
	}

	score, label := password.Score(req.Password)
	writeJSON(w, http.StatusOK, model.ScoreResponse{Score: score, Label: label})
}

// walletResponse builds the API shape for a created or imported wallet.
// revealKey controls whether the one-time plaintext key is included; batch
// responses skip it to keep the payload small and ask callers to re-import.
func (h *WalletHandler) walletResponse(wallet *keymanager.Wallet, revealKey bool) model.WalletResponse {
	resp := model.WalletResponse{
		ID:           wallet.ID,
		Name:         wallet.Name,
		Address:      wallet.Address,
		Network:      wallet.Network.String(),
		EncryptedKey: wallet.EncryptedKey,
		CreatedAt:    wallet.CreatedAt,
	}

	if revealKey {
		if plaintext, err := wallet.PrivateKey.Reveal(); err == nil {
			resp.PrivateKey = plaintext
		}
	}

	if qr, err := addressQR(wallet.Address); err == nil {
		resp.AddressQR = qr
	} else {
		h.logger.Warn("failed to generate address QR", zap.Error(err))
	}
	return resp
}

// addressQR generates a QR code of the address as a base64 PNG.
func addressQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", err
	}
	png, err := qr.PNG(256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain error kinds to HTTP statuses. The response carries
// the user-visible message only; key material never appears here.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal"

	switch {
	case model.IsValidationError(err):
		status, code = http.StatusBadRequest, "validation"
	case model.IsConfigError(err):
		status, code = http.StatusBadRequest, "configuration"
	case model.IsCryptoError(err):
		status, code = http.StatusBadRequest, "crypto"
	case model.IsTimeoutError(err):
		status, code = http.StatusGatewayTimeout, "timeout"
	case model.IsNetworkError(err):
		status, code = http.StatusBadGateway, "network"
	case model.IsDuplicateAddressError(err):
		status, code = http.StatusConflict, "duplicate_address"
	case model.IsWalletLimitError(err):
		status, code = http.StatusConflict, "wallet_limit"
	case model.IsStorageError(err):
		status, code = http.StatusInternalServerError, "storage"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error(), Code: code})
}
