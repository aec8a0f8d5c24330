package store

import (
	"time"

	"github.com/shopspring/decimal"

	"billfold/internal/constants"
)

// SyncStatus tracks whether a record's local state has been confirmed
// written to the remote store.
type SyncStatus string

const (
	SyncSynced  SyncStatus = "synced"
	SyncPending SyncStatus = "pending"
	// SyncConflict is reserved; last-writer-wins resolution never produces it.
	SyncConflict SyncStatus = "conflict"
)

type Wallet struct {
	ID             string
	Name           string
	Description    string
	InitialBalance decimal.Decimal
	CurrentBalance decimal.Decimal
	SyncStatus     SyncStatus
	LastModified   time.Time
	DeletedAt      *time.Time
}

type Transaction struct {
	ID           string
	WalletID     string
	CategoryID   string
	Description  string
	Amount       decimal.Decimal
	Type         string
	Date         time.Time
	ImageURL     *string
	SyncStatus   SyncStatus
	LastModified time.Time
	DeletedAt    *time.Time
}

// SignedAmount returns the amount with the sign convention applied:
// income is positive, expense is negative.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == constants.TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// WalletUpdate is a partial update; nil fields are left untouched.
type WalletUpdate struct {
	Name           *string
	Description    *string
	InitialBalance *decimal.Decimal
}

// TransactionUpdate is a partial update; nil fields are left untouched.
// ClearImage removes the stored image reference.
type TransactionUpdate struct {
	WalletID    *string
	CategoryID  *string
	Description *string
	Amount      *decimal.Decimal
	Type        *string
	Date        *time.Time
	ImageURL    *string
	ClearImage  bool
}

// Entity names used as keys in the sync_state table.
const (
	EntityWallets      = "wallets"
	EntityTransactions = "transactions"
)
