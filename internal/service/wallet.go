package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"billfold/internal/constants"
	"billfold/internal/ledger"
	"billfold/internal/store"
)

type WalletService struct {
	repo   store.Repository
	ledger *ledger.Ledger
	sync   *Syncer
}

func NewWalletService(repo store.Repository, led *ledger.Ledger, sync *Syncer) *WalletService {
	return &WalletService{repo: repo, ledger: led, sync: sync}
}

type WalletInput struct {
	Name           string
	Description    string
	InitialBalance decimal.Decimal
}

// Create persists a new wallet locally and, in online mode, pushes it to the
// remote store inline. A failed push leaves the wallet pending; the
// operation still succeeds.
func (ws *WalletService) Create(ctx context.Context, input WalletInput) (*store.Wallet, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrWalletNameRequired
	}
	if len(name) > constants.MaxNameLen {
		return nil, fmt.Errorf("wallet name too long (max %d characters)", constants.MaxNameLen)
	}

	w := &store.Wallet{
		Name:           name,
		Description:    input.Description,
		InitialBalance: input.InitialBalance,
		CurrentBalance: input.InitialBalance,
	}

	if _, err := ws.repo.CreateWallet(w); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	if ws.sync.PushWalletInline(ctx, w.ID) {
		w.SyncStatus = store.SyncSynced
	}

	return w, nil
}

func (ws *WalletService) Update(ctx context.Context, id string, patch store.WalletUpdate) error {
	old, err := ws.repo.GetWallet(id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrWalletNotFound
		}
		return err
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return ErrWalletNameRequired
	}

	if err := ws.repo.UpdateWallet(id, patch); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrWalletNotFound
		}
		return err
	}

	if patch.InitialBalance != nil && !patch.InitialBalance.Equal(old.InitialBalance) {
		if err := ws.ledger.OnInitialBalanceChange(id, old.InitialBalance, *patch.InitialBalance); err != nil {
			return err
		}
	}

	ws.sync.PushWalletInline(ctx, id)
	return nil
}

// Delete soft-deletes a wallet. Refused while non-deleted transactions still
// reference it.
func (ws *WalletService) Delete(ctx context.Context, id string) error {
	if _, err := ws.repo.GetWallet(id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrWalletNotFound
		}
		return err
	}

	count, err := ws.repo.CountWalletTransactions(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w (%d remaining)", ErrWalletHasTransactions, count)
	}

	if err := ws.repo.SoftDeleteWallet(id); err != nil {
		return err
	}

	ws.sync.PushWalletInline(ctx, id)
	return nil
}

func (ws *WalletService) Get(id string) (*store.Wallet, error) {
	w, err := ws.repo.GetWallet(id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}
	return w, nil
}

// List returns local wallets. In online mode a best-effort remote merge runs
// first; its failure never fails the read.
func (ws *WalletService) List(ctx context.Context) ([]*store.Wallet, error) {
	ws.sync.RefreshLocal(ctx)
	return ws.repo.ListWallets()
}
