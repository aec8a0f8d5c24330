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

const transactionColumns = "id, wallet_id, category_id, description, amount, type, tx_date, image_url, sync_status, last_modified, deleted_at"

func scanTransaction(row rowScanner) (*Transaction, error) {
	t := &Transaction{}
	var amount string
	var imageURL sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(
		&t.ID, &t.WalletID, &t.CategoryID, &t.Description,
		&amount, &t.Type, &t.Date, &imageURL,
		&t.SyncStatus, &t.LastModified, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if imageURL.Valid {
		s := imageURL.String
		t.ImageURL = &s
	}
	if deletedAt.Valid {
		ts := deletedAt.Time
		t.DeletedAt = &ts
	}

	return t, nil
}

func (s *Store) CreateTransaction(t *Transaction) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.SyncStatus = SyncPending
	t.LastModified = time.Now().UTC()

	var imageURL any
	if t.ImageURL != nil {
		imageURL = *t.ImageURL
	}

	_, err := s.db.Exec(`
		INSERT INTO transactions (id, wallet_id, category_id, description, amount, type, tx_date, image_url, sync_status, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.WalletID, t.CategoryID, t.Description, t.Amount.String(), t.Type, t.Date, imageURL, t.SyncStatus, t.LastModified)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", fmt.Errorf("transaction '%s' already exists: %w", t.ID, ErrConstraintViolation)
		}
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}

	return t.ID, nil
}

func (s *Store) GetTransaction(id string) (*Transaction, error) {
	row := s.db.QueryRow(`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND deleted_at IS NULL`, id)

	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction %s: %w", id, err)
	}

	return t, nil
}

// GetTransactionAny returns a transaction regardless of its soft-delete state.
func (s *Store) GetTransactionAny(id string) (*Transaction, error) {
	row := s.db.QueryRow(`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction %s: %w", id, err)
	}

	return t, nil
}

func (s *Store) ListTransactions() ([]*Transaction, error) {
	return s.queryTransactions(`SELECT ` + transactionColumns + ` FROM transactions WHERE deleted_at IS NULL ORDER BY tx_date DESC, id DESC`)
}

func (s *Store) ListTransactionsByWallet(walletID string) ([]*Transaction, error) {
	return s.queryTransactions(`SELECT `+transactionColumns+` FROM transactions WHERE wallet_id = ? AND deleted_at IS NULL ORDER BY tx_date DESC, id DESC`, walletID)
}

// ListPendingTransactions returns transactions awaiting a remote push,
// soft-deleted tombstones included.
func (s *Store) ListPendingTransactions() ([]*Transaction, error) {
	return s.queryTransactions(`SELECT `+transactionColumns+` FROM transactions WHERE sync_status = ? ORDER BY last_modified`, SyncPending)
}

// SearchTransactions performs a substring match over description, category
// and amount.
func (s *Store) SearchTransactions(query string) ([]*Transaction, error) {
	pattern := "%" + query + "%"
	return s.queryTransactions(`
		SELECT `+transactionColumns+` FROM transactions
		WHERE deleted_at IS NULL
		  AND (description LIKE ? OR category_id LIKE ? OR amount LIKE ?)
		ORDER BY tx_date DESC, id DESC
	`, pattern, pattern, pattern)
}

func (s *Store) queryTransactions(query string, args ...any) ([]*Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func (s *Store) UpdateTransaction(id string, patch TransactionUpdate) error {
	sets := []string{"sync_status = ?", "last_modified = ?"}
	args := []any{SyncPending, time.Now().UTC()}

	if patch.WalletID != nil {
		sets = append(sets, "wallet_id = ?")
		args = append(args, *patch.WalletID)
	}
	if patch.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, patch.Amount.String())
	}
	if patch.Type != nil {
		sets = append(sets, "type = ?")
		args = append(args, *patch.Type)
	}
	if patch.Date != nil {
		sets = append(sets, "tx_date = ?")
		args = append(args, *patch.Date)
	}
	if patch.ClearImage {
		sets = append(sets, "image_url = NULL")
	} else if patch.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *patch.ImageURL)
	}

	args = append(args, id)
	result, err := s.db.Exec(`UPDATE transactions SET `+strings.Join(sets, ", ")+` WHERE id = ? AND deleted_at IS NULL`, args...)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrRecordNotFound)
	}

	return nil
}

// SoftDeleteTransaction marks a transaction deleted, keeping the row for
// tombstone propagation.
func (s *Store) SoftDeleteTransaction(id string) error {
	now := time.Now().UTC()
	result, err := s.db.Exec(`
		UPDATE transactions SET deleted_at = ?, sync_status = ?, last_modified = ?
		WHERE id = ? AND deleted_at IS NULL
	`, now, SyncPending, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrRecordNotFound)
	}

	return nil
}

// MarkTransactionSynced flags a confirmed remote write without touching
// last_modified.
func (s *Store) MarkTransactionSynced(id string) error {
	result, err := s.db.Exec(`UPDATE transactions SET sync_status = ? WHERE id = ?`, SyncSynced, id)
	if err != nil {
		return fmt.Errorf("failed to mark transaction synced: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrRecordNotFound)
	}

	return nil
}

// PutTransaction writes a transaction verbatim, sync metadata included.
func (s *Store) PutTransaction(t *Transaction) error {
	var imageURL any
	if t.ImageURL != nil {
		imageURL = *t.ImageURL
	}
	var deletedAt any
	if t.DeletedAt != nil {
		deletedAt = *t.DeletedAt
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO transactions (id, wallet_id, category_id, description, amount, type, tx_date, image_url, sync_status, last_modified, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.WalletID, t.CategoryID, t.Description, t.Amount.String(), t.Type, t.Date, imageURL, t.SyncStatus, t.LastModified, deletedAt)
	if err != nil {
		return fmt.Errorf("failed to put transaction: %w", err)
	}

	return nil
}

// CountWalletTransactions counts non-deleted transactions referencing a
// wallet. Used to refuse wallet deletion while history exists.
func (s *Store) CountWalletTransactions(walletID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE wallet_id = ? AND deleted_at IS NULL`, walletID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}
	return count, nil
}
