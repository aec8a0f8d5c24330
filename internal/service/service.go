package service

import (
	"billfold/internal/ledger"
	"billfold/internal/remote"
	"billfold/internal/store"
	"billfold/internal/syncmode"
)

type Service struct {
	Wallet      *WalletService
	Transaction *TransactionService
	Sync        *Syncer
}

// New wires the exposed surface. gateway may be nil when no remote backend
// is configured; everything then runs purely offline.
func New(repo store.Repository, led *ledger.Ledger, gateway remote.Gateway, mode *syncmode.Controller, userID string) *Service {
	syncer := NewSyncer(repo, led, gateway, mode, userID)

	return &Service{
		Wallet:      NewWalletService(repo, led, syncer),
		Transaction: NewTransactionService(repo, led, syncer),
		Sync:        syncer,
	}
}
