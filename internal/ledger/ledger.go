// Package ledger keeps wallet balances consistent with transaction history
// by applying incremental deltas, never by full recomputation.
package ledger

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"billfold/internal/store"
)

type Ledger struct {
	repo store.Repository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(repo store.Repository) *Ledger {
	return &Ledger{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

// walletLock returns the mutex serializing balance adjustments for one wallet.
func (l *Ledger) walletLock(walletID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[walletID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[walletID] = lock
	}
	return lock
}

// ApplyDelta adds a signed amount to a wallet's current balance. A wallet
// missing locally (deleted, or not yet pulled) is logged and skipped.
func (l *Ledger) ApplyDelta(walletID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	lock := l.walletLock(walletID)
	lock.Lock()
	defer lock.Unlock()

	return l.adjust(walletID, delta)
}

func (l *Ledger) adjust(walletID string, delta decimal.Decimal) error {
	err := l.repo.AdjustWalletBalance(walletID, delta)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			log.Printf("ledger: wallet %s not found locally, skipping balance adjustment of %s", walletID, delta)
			return nil
		}
		return fmt.Errorf("failed to adjust balance of wallet %s: %w", walletID, err)
	}
	return nil
}

// OnTransactionCreate applies a new transaction's effect to its wallet.
func (l *Ledger) OnTransactionCreate(t *store.Transaction) error {
	if t.DeletedAt != nil {
		return nil
	}
	return l.ApplyDelta(t.WalletID, t.SignedAmount())
}

// OnTransactionUpdate reverts the old effect and applies the new one. When
// both versions hit the same wallet the two steps collapse into a single net
// delta so no reader can observe a half-applied balance.
func (l *Ledger) OnTransactionUpdate(old, updated *store.Transaction) error {
	oldAmount := decimal.Zero
	if old.DeletedAt == nil {
		oldAmount = old.SignedAmount()
	}
	newAmount := decimal.Zero
	if updated.DeletedAt == nil {
		newAmount = updated.SignedAmount()
	}

	if old.WalletID == updated.WalletID {
		return l.ApplyDelta(updated.WalletID, newAmount.Sub(oldAmount))
	}

	if err := l.ApplyDelta(old.WalletID, oldAmount.Neg()); err != nil {
		return err
	}
	return l.ApplyDelta(updated.WalletID, newAmount)
}

// OnTransactionDelete reverts a transaction's effect.
func (l *Ledger) OnTransactionDelete(t *store.Transaction) error {
	if t.DeletedAt != nil {
		return nil
	}
	return l.ApplyDelta(t.WalletID, t.SignedAmount().Neg())
}

// OnInitialBalanceChange shifts the current balance by the difference so the
// accumulated transaction effects are preserved.
func (l *Ledger) OnInitialBalanceChange(walletID string, oldInitial, newInitial decimal.Decimal) error {
	return l.ApplyDelta(walletID, newInitial.Sub(oldInitial))
}
