package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Wallet Operations
	CreateWallet(w *Wallet) (string, error)
	GetWallet(id string) (*Wallet, error)
	GetWalletAny(id string) (*Wallet, error)
	ListWallets() ([]*Wallet, error)
	ListPendingWallets() ([]*Wallet, error)
	UpdateWallet(id string, patch WalletUpdate) error
	AdjustWalletBalance(id string, delta decimal.Decimal) error
	SoftDeleteWallet(id string) error
	MarkWalletSynced(id string) error
	PutWallet(w *Wallet) error

	// Transaction Operations
	CreateTransaction(t *Transaction) (string, error)
	GetTransaction(id string) (*Transaction, error)
	GetTransactionAny(id string) (*Transaction, error)
	ListTransactions() ([]*Transaction, error)
	ListTransactionsByWallet(walletID string) ([]*Transaction, error)
	ListPendingTransactions() ([]*Transaction, error)
	SearchTransactions(query string) ([]*Transaction, error)
	UpdateTransaction(id string, patch TransactionUpdate) error
	SoftDeleteTransaction(id string) error
	MarkTransactionSynced(id string) error
	PutTransaction(t *Transaction) error
	CountWalletTransactions(walletID string) (int, error)

	// Sync State
	GetLastSync(entity string) (time.Time, error)
	SetLastSync(entity string, ts time.Time) error

	Close() error
}
