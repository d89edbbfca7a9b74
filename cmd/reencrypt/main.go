// Re-encrypts every stored wallet key under a new password.
// Usage: go run ./cmd/reencrypt
//
// Runs in two passes: first decrypts every record with the old password to
// prove it can (nothing is written if any record fails), then writes the
// re-encrypted blobs.
package main

import (
	"context"
	"fmt"
	"os"

	"mcwallet/internal/config"
	"mcwallet/internal/crypto"
	"mcwallet/internal/model"
	"mcwallet/internal/password"
	"mcwallet/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	oldPassword, err := config.PromptForPassword("Current wallet password")
	if err != nil {
		return err
	}
	newPassword, err := config.PromptForPassword("New wallet password")
	if err != nil {
		return err
	}
	if err := password.Validate(newPassword); err != nil {
		return fmt.Errorf("new password rejected: %w", err)
	}
	confirm, err := config.PromptForPassword("Repeat new wallet password")
	if err != nil {
		return err
	}
	if confirm != newPassword {
		return fmt.Errorf("passwords do not match")
	}

	s, err := store.NewSqliteStore(cfg.DBPath, cfg.MaxWallets)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	records, err := s.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no wallets stored, nothing to do")
		return nil
	}

	// dry-run pass: every record must decrypt before anything is written
	plaintexts := make(map[string]string, len(records))
	for _, rec := range records {
		plaintext, err := crypto.Decrypt(rec.EncryptedKey, oldPassword)
		if err != nil {
			if model.IsCryptoError(err) {
				return fmt.Errorf("wallet %s (%s): old password does not decrypt this record", rec.Name, rec.Address)
			}
			return fmt.Errorf("wallet %s (%s): %w", rec.Name, rec.Address, err)
		}
		plaintexts[rec.ID] = plaintext
	}

	// write pass
	for _, rec := range records {
		blob, err := crypto.Encrypt(plaintexts[rec.ID], newPassword)
		if err != nil {
			return fmt.Errorf("wallet %s (%s): %w", rec.Name, rec.Address, err)
		}
		if err := s.UpdateEncryptedKey(ctx, rec.ID, blob); err != nil {
			return fmt.Errorf("wallet %s (%s): %w", rec.Name, rec.Address, err)
		}
	}

	fmt.Printf("re-encrypted %d wallet(s)\n", len(records))
	return nil
}
