package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcwallet/internal/model"
)

func newTestStore(t *testing.T, maxWallets int) *SqliteStore {
	t.Helper()
	s, err := NewSqliteStore(filepath.Join(t.TempDir(), "wallets.db"), maxWallets)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRecord(n int) model.WalletRecord {
	return model.WalletRecord{
		ID:           fmt.Sprintf("id-%d", n),
		Name:         fmt.Sprintf("wallet-%d", n),
		Address:      fmt.Sprintf("0x%040d", n),
		Network:      "BSC",
		EncryptedKey: "c2FsdGl2Y2lwaGVydGV4dA==",
		CreatedAt:    1700000000000 + int64(n),
	}
}

func TestInsertAndGetByAddress(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	rec := testRecord(1)
	id, err := s.Insert(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, id)

	got, err := s.GetByAddress(ctx, rec.Address)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got, "record must round-trip unmodified")

	missing, err := s.GetByAddress(ctx, "0x"+fmt.Sprintf("%040d", 999))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInsert_DuplicateAddress(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	rec := testRecord(1)
	_, err := s.Insert(ctx, rec)
	require.NoError(t, err)

	dup := testRecord(2)
	dup.Address = rec.Address
	_, err = s.Insert(ctx, dup)
	require.Error(t, err)
	assert.True(t, model.IsDuplicateAddressError(err))
	assert.False(t, model.IsWalletLimitError(err))
}

func TestInsert_LimitReached(t *testing.T) {
	s := newTestStore(t, 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := s.Insert(ctx, testRecord(i))
		require.NoError(t, err)
	}

	_, err := s.Insert(ctx, testRecord(4))
	require.Error(t, err)
	assert.True(t, model.IsWalletLimitError(err))
	assert.False(t, model.IsDuplicateAddressError(err))
}

func TestInsert_MissingFields(t *testing.T) {
	s := newTestStore(t, 0)
	rec := testRecord(1)
	rec.EncryptedKey = ""
	_, err := s.Insert(context.Background(), rec)
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestList(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := s.Insert(ctx, testRecord(i))
		require.NoError(t, err)
	}

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "id-1", records[0].ID)
	assert.Equal(t, "id-3", records[2].ID)
}

func TestUpdateEncryptedKey(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	rec := testRecord(1)
	_, err := s.Insert(ctx, rec)
	require.NoError(t, err)

	require.NoError(t, s.UpdateEncryptedKey(ctx, rec.ID, "bmV3YmxvYg=="))
	got, err := s.GetByAddress(ctx, rec.Address)
	require.NoError(t, err)
	assert.Equal(t, "bmV3YmxvYg==", got.EncryptedKey)

	err = s.UpdateEncryptedKey(ctx, "missing-id", "Zm9v")
	require.Error(t, err)
	assert.True(t, model.IsStorageError(err))
}

func TestDelete(t *testing.T) {
	s := newTestStore(t, 0)
	ctx := context.Background()

	rec := testRecord(1)
	_, err := s.Insert(ctx, rec)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, rec.ID))
	got, err := s.GetByAddress(ctx, rec.Address)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = s.Delete(ctx, rec.ID)
	require.Error(t, err)
	assert.True(t, model.IsStorageError(err))
}
