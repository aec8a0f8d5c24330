package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"billfold/internal/constants"
	"billfold/internal/ledger"
	"billfold/internal/store"
)

type TransactionService struct {
	repo   store.Repository
	ledger *ledger.Ledger
	sync   *Syncer
}

func NewTransactionService(repo store.Repository, led *ledger.Ledger, sync *Syncer) *TransactionService {
	return &TransactionService{repo: repo, ledger: led, sync: sync}
}

type TransactionInput struct {
	WalletID    string
	CategoryID  string
	Description string
	Amount      decimal.Decimal
	Type        string
	Date        time.Time
	ImageURL    *string
}

// Create persists a transaction, applies its effect to the wallet balance
// and, in online mode, pushes it inline. The local write and the ledger
// delta always happen; the push is best-effort.
func (ts *TransactionService) Create(ctx context.Context, input TransactionInput) (*store.Transaction, error) {
	if err := validateAmountAndType(input.Amount, input.Type); err != nil {
		return nil, err
	}

	if _, err := ts.repo.GetWallet(input.WalletID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	t := &store.Transaction{
		WalletID:    input.WalletID,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        input.Type,
		Date:        input.Date,
		ImageURL:    input.ImageURL,
	}
	if t.Date.IsZero() {
		t.Date = time.Now().UTC()
	}

	if _, err := ts.repo.CreateTransaction(t); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := ts.ledger.OnTransactionCreate(t); err != nil {
		return nil, err
	}

	if ts.sync.PushTransactionInline(ctx, t.ID) {
		t.SyncStatus = store.SyncSynced
	}

	return t, nil
}

// Update applies a partial update. Moving the transaction between wallets or
// changing its amount/type reverts the old balance effect before applying
// the new one.
func (ts *TransactionService) Update(ctx context.Context, id string, patch store.TransactionUpdate, removeImage bool) error {
	old, err := ts.repo.GetTransaction(id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	amount := old.Amount
	if patch.Amount != nil {
		amount = *patch.Amount
	}
	txType := old.Type
	if patch.Type != nil {
		txType = *patch.Type
	}
	if err := validateAmountAndType(amount, txType); err != nil {
		return err
	}

	if patch.WalletID != nil && *patch.WalletID != old.WalletID {
		if _, err := ts.repo.GetWallet(*patch.WalletID); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return ErrWalletNotFound
			}
			return err
		}
	}

	patch.ClearImage = removeImage
	if err := ts.repo.UpdateTransaction(id, patch); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	updated, err := ts.repo.GetTransaction(id)
	if err != nil {
		return err
	}

	if err := ts.ledger.OnTransactionUpdate(old, updated); err != nil {
		return err
	}

	ts.sync.PushTransactionInline(ctx, id)
	return nil
}

// Delete soft-deletes a transaction and reverts its balance effect.
func (ts *TransactionService) Delete(ctx context.Context, id string) error {
	old, err := ts.repo.GetTransaction(id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	if err := ts.repo.SoftDeleteTransaction(id); err != nil {
		return err
	}

	if err := ts.ledger.OnTransactionDelete(old); err != nil {
		return err
	}

	ts.sync.PushTransactionInline(ctx, id)
	return nil
}

func (ts *TransactionService) Get(id string) (*store.Transaction, error) {
	t, err := ts.repo.GetTransaction(id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns local transactions. In online mode a best-effort remote merge
// runs first; its failure never fails the read.
func (ts *TransactionService) List(ctx context.Context) ([]*store.Transaction, error) {
	ts.sync.RefreshLocal(ctx)
	return ts.repo.ListTransactions()
}

func (ts *TransactionService) ListByWallet(walletID string) ([]*store.Transaction, error) {
	return ts.repo.ListTransactionsByWallet(walletID)
}

func (ts *TransactionService) Search(query string) ([]*store.Transaction, error) {
	return ts.repo.SearchTransactions(query)
}

func validateAmountAndType(amount decimal.Decimal, txType string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if txType != constants.TypeIncome && txType != constants.TypeExpense {
		return ErrInvalidType
	}
	return nil
}
