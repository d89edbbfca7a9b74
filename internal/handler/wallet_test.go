package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"mcwallet/internal/handler"
	"mcwallet/internal/keycodec"
	"mcwallet/internal/keymanager"
	"mcwallet/internal/model"
	"mcwallet/internal/store"
)

func newTestHandler(t *testing.T) *handler.WalletHandler {
	t.Helper()

	s, err := store.NewSqliteStore(filepath.Join(t.TempDir(), "wallets.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	manager, err := keymanager.New(keymanager.Options{
		Password: "Str0ng!Passw0rd",
		Limiter:  ratelimit.NewUnlimited(),
	})
	require.NoError(t, err)

	return handler.NewWalletHandler(manager, s, zap.NewNop())
}

func postJSON(t *testing.T, h http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestCreate(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Create, "/wallets", model.CreateWalletRequest{Name: "main", Network: "BSC"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.WalletResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "main", resp.Name)
	assert.Equal(t, "BSC", resp.Network)
	assert.True(t, keycodec.IsValidAddress(keycodec.BSC, resp.Address))
	assert.NotEmpty(t, resp.PrivateKey, "create response carries the one-time key")
	assert.NotEmpty(t, resp.EncryptedKey)
	assert.NotEmpty(t, resp.AddressQR)
}

func TestCreate_UnsupportedNetwork(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Create, "/wallets", model.CreateWalletRequest{Name: "main", Network: "Dogecoin"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation", resp.Code)
}

func TestList_OmitsPlaintextKeys(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Create, "/wallets", model.CreateWalletRequest{Name: "main", Network: "Solana"})
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/wallets", nil)
	listRec := httptest.NewRecorder()
	h.List(listRec, req)
	require.Equal(t, http.StatusOK, listRec.Code)

	var records []model.WalletRecord
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "main", records[0].Name)
	assert.NotEmpty(t, records[0].EncryptedKey)
	assert.NotContains(t, listRec.Body.String(), "private_key")
}

func TestImport_DuplicateAddress(t *testing.T) {
	h := newTestHandler(t)

	_, privateKey, err := keycodec.Generate(keycodec.BSC)
	require.NoError(t, err)

	first := postJSON(t, h.Import, "/wallets/import", model.ImportWalletRequest{
		Name: "one", Network: "BSC", Data: privateKey, Type: keymanager.ImportTypePrivateKey,
	})
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	second := postJSON(t, h.Import, "/wallets/import", model.ImportWalletRequest{
		Name: "two", Network: "BSC", Data: privateKey, Type: keymanager.ImportTypePrivateKey,
	})
	require.Equal(t, http.StatusConflict, second.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "duplicate_address", resp.Code)
}

func TestCreateBatch(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.CreateBatch, "/wallets/batch", model.CreateBatchRequest{
		Count: 3, Network: "BSC", NamePrefix: "batch",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp []model.WalletResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, "batch-1", resp[0].Name)
	assert.Empty(t, resp[0].PrivateKey, "batch responses never carry plaintext keys")
}

func TestRecover(t *testing.T) {
	h := newTestHandler(t)

	address, privateKey, err := keycodec.Generate(keycodec.Solana)
	require.NoError(t, err)

	rec := postJSON(t, h.Recover, "/wallets/recover", model.RecoverRequest{
		Network: "Solana", PrivateKey: privateKey,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.RecoverResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, address, resp.Address)
}

func TestScore(t *testing.T) {
	h := newTestHandler(t)

	rec := postJSON(t, h.Score, "/password/score", model.ScoreRequest{Password: "aaaaaaaa"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, "very-weak", resp.Label)
}

func TestBalance_NoLookupConfigured(t *testing.T) {
	h := newTestHandler(t)

	address, _, err := keycodec.Generate(keycodec.BSC)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/wallets/balance?address="+address+"&network=BSC", nil)
	rec := httptest.NewRecorder()
	h.Balance(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "configuration", resp.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/wallets/import", nil)
	rec := httptest.NewRecorder()
	h.Import(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
