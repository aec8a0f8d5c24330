package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"billfold/internal/ledger"
	"billfold/internal/remote"
	"billfold/internal/store"
	"billfold/internal/syncmode"
)

// Syncer reconciles the local store with the remote backend: it pushes
// pending records, pulls the remote set and merges it with last-writer-wins
// semantics keyed by modification timestamps.
//
// Ordering is fixed: wallets are fully reconciled (push then pull) before
// any transaction work, because pulled transactions apply balance deltas to
// wallets that must already exist locally.
type Syncer struct {
	repo    store.Repository
	ledger  *ledger.Ledger
	gateway remote.Gateway
	mode    *syncmode.Controller
	userID  string

	// one sync cycle at a time
	mu sync.Mutex
}

func NewSyncer(repo store.Repository, led *ledger.Ledger, gateway remote.Gateway, mode *syncmode.Controller, userID string) *Syncer {
	return &Syncer{
		repo:    repo,
		ledger:  led,
		gateway: gateway,
		mode:    mode,
		userID:  userID,
	}
}

type Result struct {
	WalletsSynced      int
	TransactionsSynced int
}

type Status struct {
	LastSync     time.Time
	PendingCount int
	IsOnline     bool
}

// SyncNow runs one full reconciliation cycle. Remote failures are caught
// per record and logged; the returned error reports local store failures
// only. Running it twice with no intervening mutations is a no-op on the
// second pass.
func (s *Syncer) SyncNow(ctx context.Context) (Result, error) {
	if s.gateway == nil {
		return Result{}, ErrRemoteNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var res Result

	pushed, err := s.pushWallets(ctx)
	res.WalletsSynced = pushed
	if err != nil {
		return res, err
	}
	if err := s.pullWallets(ctx); err != nil {
		return res, err
	}
	if err := s.repo.SetLastSync(store.EntityWallets, time.Now().UTC()); err != nil {
		return res, err
	}

	pushed, err = s.pushTransactions(ctx)
	res.TransactionsSynced = pushed
	if err != nil {
		return res, err
	}
	if err := s.pullTransactions(ctx); err != nil {
		return res, err
	}
	if err := s.repo.SetLastSync(store.EntityTransactions, time.Now().UTC()); err != nil {
		return res, err
	}

	return res, nil
}

// RefreshLocal runs a pull-only merge when online mode allows it. Used on
// the read path; all failures are logged, never surfaced.
func (s *Syncer) RefreshLocal(ctx context.Context) {
	if s.gateway == nil || !s.mode.Online() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pullWallets(ctx); err != nil {
		log.Printf("sync: wallet refresh failed: %v", err)
		return
	}
	if err := s.pullTransactions(ctx); err != nil {
		log.Printf("sync: transaction refresh failed: %v", err)
	}
}

// Status reports the most recent completed sync, the number of records still
// awaiting a push, and whether online mode is active.
func (s *Syncer) Status() (Status, error) {
	pendingWallets, err := s.repo.ListPendingWallets()
	if err != nil {
		return Status{}, err
	}
	pendingTransactions, err := s.repo.ListPendingTransactions()
	if err != nil {
		return Status{}, err
	}

	lastWallets, err := s.repo.GetLastSync(store.EntityWallets)
	if err != nil {
		return Status{}, err
	}
	lastTransactions, err := s.repo.GetLastSync(store.EntityTransactions)
	if err != nil {
		return Status{}, err
	}

	last := lastWallets
	if lastTransactions.After(last) {
		last = lastTransactions
	}

	return Status{
		LastSync:     last,
		PendingCount: len(pendingWallets) + len(pendingTransactions),
		IsOnline:     s.mode.Online(),
	}, nil
}

// PushWalletInline attempts an immediate push of one wallet after a local
// write. Reports whether the record is now synced; every failure is
// swallowed and the record stays pending for the next cycle.
func (s *Syncer) PushWalletInline(ctx context.Context, id string) bool {
	if s.gateway == nil || !s.mode.Online() {
		return false
	}

	w, err := s.repo.GetWalletAny(id)
	if err != nil {
		log.Printf("sync: inline push of wallet %s skipped: %v", id, err)
		return false
	}

	if _, err := s.gateway.UpsertWallet(ctx, walletToRemote(w), s.userID); err != nil {
		log.Printf("sync: inline push of wallet %s failed, leaving pending: %v", id, err)
		return false
	}

	if err := s.repo.MarkWalletSynced(id); err != nil {
		log.Printf("sync: failed to mark wallet %s synced: %v", id, err)
		return false
	}
	return true
}

// PushTransactionInline is the transaction counterpart of PushWalletInline.
func (s *Syncer) PushTransactionInline(ctx context.Context, id string) bool {
	if s.gateway == nil || !s.mode.Online() {
		return false
	}

	t, err := s.repo.GetTransactionAny(id)
	if err != nil {
		log.Printf("sync: inline push of transaction %s skipped: %v", id, err)
		return false
	}

	if _, err := s.gateway.UpsertTransaction(ctx, transactionToRemote(t), s.userID); err != nil {
		log.Printf("sync: inline push of transaction %s failed, leaving pending: %v", id, err)
		return false
	}

	if err := s.repo.MarkTransactionSynced(id); err != nil {
		log.Printf("sync: failed to mark transaction %s synced: %v", id, err)
		return false
	}
	return true
}

func (s *Syncer) pushWallets(ctx context.Context) (int, error) {
	pending, err := s.repo.ListPendingWallets()
	if err != nil {
		return 0, err
	}

	pushed := 0
	for _, w := range pending {
		if _, err := s.gateway.UpsertWallet(ctx, walletToRemote(w), s.userID); err != nil {
			log.Printf("sync: failed to push wallet %s: %v", w.ID, err)
			continue
		}
		if err := s.repo.MarkWalletSynced(w.ID); err != nil {
			return pushed, fmt.Errorf("failed to mark wallet %s synced: %w", w.ID, err)
		}
		pushed++
	}

	if len(pending) > 0 {
		log.Printf("sync: pushed %d/%d pending wallets", pushed, len(pending))
	}
	return pushed, nil
}

func (s *Syncer) pushTransactions(ctx context.Context) (int, error) {
	pending, err := s.repo.ListPendingTransactions()
	if err != nil {
		return 0, err
	}

	pushed := 0
	for _, t := range pending {
		if _, err := s.gateway.UpsertTransaction(ctx, transactionToRemote(t), s.userID); err != nil {
			log.Printf("sync: failed to push transaction %s: %v", t.ID, err)
			continue
		}
		if err := s.repo.MarkTransactionSynced(t.ID); err != nil {
			return pushed, fmt.Errorf("failed to mark transaction %s synced: %w", t.ID, err)
		}
		pushed++
	}

	if len(pending) > 0 {
		log.Printf("sync: pushed %d/%d pending transactions", pushed, len(pending))
	}
	return pushed, nil
}

// pullWallets merges the remote wallet set into the local store. The server
// copy wins only when its updatedAt is strictly newer than the local
// last_modified; a local pending edit with an equal or newer timestamp is
// kept and pushed on the next cycle.
func (s *Syncer) pullWallets(ctx context.Context) error {
	remotes, err := s.gateway.ListWallets(ctx, s.userID)
	if err != nil {
		log.Printf("sync: failed to list remote wallets: %v", err)
		return nil
	}

	pulled := 0
	for _, rw := range remotes {
		local, err := s.repo.GetWalletAny(rw.ID)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		if local != nil && !rw.UpdatedAt.After(local.LastModified) {
			continue
		}

		if err := s.repo.PutWallet(walletFromRemote(rw)); err != nil {
			return err
		}
		pulled++
	}

	if pulled > 0 {
		log.Printf("sync: pulled %d wallets from remote", pulled)
	}
	return nil
}

// pullTransactions merges the remote transaction set. New records run
// through the same ledger-affecting path as a normal create; a
// last-writer-wins overwrite reverts the old balance effect before applying
// the new one.
func (s *Syncer) pullTransactions(ctx context.Context) error {
	remotes, err := s.gateway.ListTransactions(ctx, s.userID)
	if err != nil {
		log.Printf("sync: failed to list remote transactions: %v", err)
		return nil
	}

	pulled := 0
	for _, rt := range remotes {
		local, err := s.repo.GetTransactionAny(rt.ID)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}

		if local != nil && !rt.UpdatedAt.After(local.LastModified) {
			continue
		}

		t := transactionFromRemote(rt)
		s.cacheImage(ctx, local, t)

		if err := s.repo.PutTransaction(t); err != nil {
			return err
		}

		if local == nil {
			if err := s.ledger.OnTransactionCreate(t); err != nil {
				return err
			}
		} else {
			if err := s.ledger.OnTransactionUpdate(local, t); err != nil {
				return err
			}
		}
		pulled++
	}

	if pulled > 0 {
		log.Printf("sync: pulled %d transactions from remote", pulled)
	}
	return nil
}

// cacheImage downloads a pulled transaction's remote image reference into
// the local cache. A failed download keeps the remote URL on the record and
// never blocks the batch. An image already cached locally is kept.
func (s *Syncer) cacheImage(ctx context.Context, local, t *store.Transaction) {
	if t.ImageURL == nil || !strings.HasPrefix(*t.ImageURL, "http") {
		return
	}

	if local != nil && local.ImageURL != nil && !strings.HasPrefix(*local.ImageURL, "http") {
		t.ImageURL = local.ImageURL
		return
	}

	path, err := s.gateway.FetchImage(ctx, *t.ImageURL)
	if err != nil {
		log.Printf("sync: failed to fetch image for transaction %s: %v", t.ID, err)
		return
	}
	t.ImageURL = &path
}
