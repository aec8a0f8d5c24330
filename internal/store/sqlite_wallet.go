package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const walletColumns = "id, name, description, initial_balance, current_balance, sync_status, last_modified, deleted_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWallet(row rowScanner) (*Wallet, error) {
	w := &Wallet{}
	var initial, current string
	var deletedAt sql.NullTime

	err := row.Scan(
		&w.ID, &w.Name, &w.Description,
		&initial, &current, &w.SyncStatus,
		&w.LastModified, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if w.InitialBalance, err = decimal.NewFromString(initial); err != nil {
		return nil, fmt.Errorf("invalid initial balance %q: %w", initial, err)
	}
	if w.CurrentBalance, err = decimal.NewFromString(current); err != nil {
		return nil, fmt.Errorf("invalid current balance %q: %w", current, err)
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		w.DeletedAt = &t
	}

	return w, nil
}

func (s *Store) CreateWallet(w *Wallet) (string, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	w.SyncStatus = SyncPending
	w.LastModified = time.Now().UTC()

	_, err := s.db.Exec(`
		INSERT INTO wallets (id, name, description, initial_balance, current_balance, sync_status, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, w.ID, w.Name, w.Description, w.InitialBalance.String(), w.CurrentBalance.String(), w.SyncStatus, w.LastModified)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", fmt.Errorf("wallet '%s' already exists: %w", w.ID, ErrConstraintViolation)
		}
		return "", fmt.Errorf("failed to insert wallet: %w", err)
	}

	return w.ID, nil
}

func (s *Store) GetWallet(id string) (*Wallet, error) {
	row := s.db.QueryRow(`SELECT `+walletColumns+` FROM wallets WHERE id = ? AND deleted_at IS NULL`, id)

	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("wallet %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query wallet %s: %w", id, err)
	}

	return w, nil
}

// GetWalletAny returns a wallet regardless of its soft-delete state.
// Used by the sync engine, which must see tombstones.
func (s *Store) GetWalletAny(id string) (*Wallet, error) {
	row := s.db.QueryRow(`SELECT `+walletColumns+` FROM wallets WHERE id = ?`, id)

	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("wallet %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query wallet %s: %w", id, err)
	}

	return w, nil
}

func (s *Store) ListWallets() ([]*Wallet, error) {
	rows, err := s.db.Query(`SELECT ` + walletColumns + ` FROM wallets WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}

	return wallets, rows.Err()
}

// ListPendingWallets returns wallets awaiting a remote push, soft-deleted
// tombstones included.
func (s *Store) ListPendingWallets() ([]*Wallet, error) {
	rows, err := s.db.Query(`SELECT `+walletColumns+` FROM wallets WHERE sync_status = ? ORDER BY last_modified`, SyncPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}

	return wallets, rows.Err()
}

func (s *Store) UpdateWallet(id string, patch WalletUpdate) error {
	sets := []string{"sync_status = ?", "last_modified = ?"}
	args := []any{SyncPending, time.Now().UTC()}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.InitialBalance != nil {
		sets = append(sets, "initial_balance = ?")
		args = append(args, patch.InitialBalance.String())
	}

	args = append(args, id)
	result, err := s.db.Exec(`UPDATE wallets SET `+strings.Join(sets, ", ")+` WHERE id = ? AND deleted_at IS NULL`, args...)
	if err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("wallet %s: %w", id, ErrRecordNotFound)
	}

	return nil
}

// AdjustWalletBalance adds delta to the wallet's current balance without
// touching sync metadata. Callers serialize per wallet; see the ledger.
func (s *Store) AdjustWalletBalance(id string, delta decimal.Decimal) error {
	var raw string
	err := s.db.QueryRow(`SELECT current_balance FROM wallets WHERE id = ? AND deleted_at IS NULL`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("wallet %s: %w", id, ErrRecordNotFound)
		}
		return fmt.Errorf("failed to query wallet balance: %w", err)
	}

	current, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid current balance %q: %w", raw, err)
	}

	_, err = s.db.Exec(`UPDATE wallets SET current_balance = ? WHERE id = ? AND deleted_at IS NULL`,
		current.Add(delta).String(), id)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	return nil
}

// SoftDeleteWallet marks a wallet deleted. The row stays around so the
// tombstone can be pushed to the remote store.
func (s *Store) SoftDeleteWallet(id string) error {
	now := time.Now().UTC()
	result, err := s.db.Exec(`
		UPDATE wallets SET deleted_at = ?, sync_status = ?, last_modified = ?
		WHERE id = ? AND deleted_at IS NULL
	`, now, SyncPending, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("wallet %s: %w", id, ErrRecordNotFound)
	}

	return nil
}

// MarkWalletSynced flags a confirmed remote write. last_modified is left
// untouched so last-writer-wins comparisons stay meaningful.
func (s *Store) MarkWalletSynced(id string) error {
	result, err := s.db.Exec(`UPDATE wallets SET sync_status = ? WHERE id = ?`, SyncSynced, id)
	if err != nil {
		return fmt.Errorf("failed to mark wallet synced: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("wallet %s: %w", id, ErrRecordNotFound)
	}

	return nil
}

// PutWallet writes a wallet verbatim, sync metadata included. Used by the
// pull phase to install remote state.
func (s *Store) PutWallet(w *Wallet) error {
	var deletedAt any
	if w.DeletedAt != nil {
		deletedAt = *w.DeletedAt
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO wallets (id, name, description, initial_balance, current_balance, sync_status, last_modified, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, w.ID, w.Name, w.Description, w.InitialBalance.String(), w.CurrentBalance.String(), w.SyncStatus, w.LastModified, deletedAt)
	if err != nil {
		return fmt.Errorf("failed to put wallet: %w", err)
	}

	return nil
}
