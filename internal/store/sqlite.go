// Package store persists wallet records in SQLite. It treats encrypted_key
// as an opaque blob: whatever the cipher produced is stored and returned
// byte-for-byte.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"mcwallet/internal/model"
)

// DefaultMaxWallets caps the number of stored records.
const DefaultMaxWallets = 100

// walletModel maps the wallets table for Bun.
type walletModel struct {
	bun.BaseModel `bun:"table:wallets"`

	ID           string `bun:"id,pk"`
	Name         string `bun:"name,notnull"`
	Address      string `bun:"address,notnull,unique"`
	Network      string `bun:"network,notnull"`
	EncryptedKey string `bun:"encrypted_key,notnull"`
	CreatedAt    int64  `bun:"created_at,notnull"`
}

// SqliteStore is the SQLite implementation of the wallet store.
type SqliteStore struct {
	db         *bun.DB
	maxWallets int
}

// NewSqliteStore opens (creating if needed) the database at dataSourceName
// and ensures the wallets table exists. maxWallets <= 0 selects
// DefaultMaxWallets.
func NewSqliteStore(dataSourceName string, maxWallets int) (*SqliteStore, error) {
	sqldb, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.NewCreateTable().Model((*walletModel)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create wallets table: %w", err)
	}

	if maxWallets <= 0 {
		maxWallets = DefaultMaxWallets
	}
	return &SqliteStore{db: db, maxWallets: maxWallets}, nil
}

// Close closes the underlying database.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Insert stores a record. The duplicate-address and record-cap checks run in
// the same transaction as the insert, so callers get a typed StorageError
// for both conditions.
func (s *SqliteStore) Insert(ctx context.Context, rec model.WalletRecord) (string, error) {
	if rec.ID == "" || rec.Address == "" || rec.EncryptedKey == "" {
		return "", &model.ValidationError{Field: "record", Message: "id, address and encrypted_key are required"}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	count, err := tx.NewSelect().Model((*walletModel)(nil)).Count(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count wallets: %w", err)
	}
	if count >= s.maxWallets {
		return "", &model.StorageError{
			Message:      fmt.Sprintf("wallet limit reached (%d)", s.maxWallets),
			LimitReached: true,
		}
	}

	exists, err := tx.NewSelect().Model((*walletModel)(nil)).Where("address = ?", rec.Address).Exists(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to check address: %w", err)
	}
	if exists {
		return "", &model.StorageError{
			Message:   "wallet with address " + rec.Address + " already exists",
			Duplicate: true,
		}
	}

	if _, err := tx.NewInsert().Model(&walletModel{
		ID:           rec.ID,
		Name:         rec.Name,
		Address:      rec.Address,
		Network:      rec.Network,
		EncryptedKey: rec.EncryptedKey,
		CreatedAt:    rec.CreatedAt,
	}).Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to insert wallet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return rec.ID, nil
}

// GetByAddress returns the record for address, or nil when absent.
func (s *SqliteStore) GetByAddress(ctx context.Context, address string) (*model.WalletRecord, error) {
	var m walletModel
	err := s.db.NewSelect().Model(&m).Where("address = ?", address).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query wallet: %w", err)
	}
	rec := toRecord(m)
	return &rec, nil
}

// List returns all records ordered by creation time.
func (s *SqliteStore) List(ctx context.Context) ([]model.WalletRecord, error) {
	var rows []walletModel
	if err := s.db.NewSelect().Model(&rows).Order("created_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	records := make([]model.WalletRecord, 0, len(rows))
	for _, m := range rows {
		records = append(records, toRecord(m))
	}
	return records, nil
}

// UpdateEncryptedKey replaces the stored blob for one record.
func (s *SqliteStore) UpdateEncryptedKey(ctx context.Context, id, encryptedKey string) error {
	if encryptedKey == "" {
		return &model.ValidationError{Field: "encryptedKey", Message: "cannot be empty"}
	}

	res, err := s.db.NewUpdate().Model((*walletModel)(nil)).
		Set("encrypted_key = ?", encryptedKey).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return &model.StorageError{Message: "wallet " + id + " not found"}
	}
	return nil
}

// Delete removes a record by id.
func (s *SqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().Model((*walletModel)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return &model.StorageError{Message: "wallet " + id + " not found"}
	}
	return nil
}

func toRecord(m walletModel) model.WalletRecord {
	return model.WalletRecord{
		ID:           m.ID,
		Name:         m.Name,
		Address:      m.Address,
		Network:      m.Network,
		EncryptedKey: m.EncryptedKey,
		CreatedAt:    m.CreatedAt,
	}
}
