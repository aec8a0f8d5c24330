// Package remote talks to the server-side store. The core treats it as a
// black-box CRUD API: every failure is an error the caller translates into
// "leave the record pending".
package remote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the wire representation of a wallet. UpdatedAt is the
// server-side modification timestamp used for last-writer-wins merging.
type Wallet struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      *time.Time      `json:"deletedAt,omitempty"`
}

type Transaction struct {
	ID          string          `json:"id"`
	WalletID    string          `json:"walletId"`
	CategoryID  string          `json:"categoryId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
}

type Gateway interface {
	UpsertWallet(ctx context.Context, w *Wallet, userID string) (*Wallet, error)
	UpsertTransaction(ctx context.Context, t *Transaction, userID string) (*Transaction, error)
	ListWallets(ctx context.Context, userID string) ([]*Wallet, error)
	ListTransactions(ctx context.Context, userID string) ([]*Transaction, error)

	// FetchImage downloads a remote image and returns the local file path.
	FetchImage(ctx context.Context, remoteURL string) (string, error)

	Ping(ctx context.Context) error
}
