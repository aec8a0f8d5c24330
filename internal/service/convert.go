package service

import (
	"billfold/internal/remote"
	"billfold/internal/store"
)

func walletToRemote(w *store.Wallet) *remote.Wallet {
	return &remote.Wallet{
		ID:             w.ID,
		Name:           w.Name,
		Description:    w.Description,
		InitialBalance: w.InitialBalance,
		CurrentBalance: w.CurrentBalance,
		UpdatedAt:      w.LastModified,
		DeletedAt:      w.DeletedAt,
	}
}

// walletFromRemote installs server state as the local truth: synced, with
// last_modified taken from the server-side timestamp.
func walletFromRemote(rw *remote.Wallet) *store.Wallet {
	return &store.Wallet{
		ID:             rw.ID,
		Name:           rw.Name,
		Description:    rw.Description,
		InitialBalance: rw.InitialBalance,
		CurrentBalance: rw.CurrentBalance,
		SyncStatus:     store.SyncSynced,
		LastModified:   rw.UpdatedAt,
		DeletedAt:      rw.DeletedAt,
	}
}

func transactionToRemote(t *store.Transaction) *remote.Transaction {
	return &remote.Transaction{
		ID:          t.ID,
		WalletID:    t.WalletID,
		CategoryID:  t.CategoryID,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Date:        t.Date,
		ImageURL:    t.ImageURL,
		UpdatedAt:   t.LastModified,
		DeletedAt:   t.DeletedAt,
	}
}

func transactionFromRemote(rt *remote.Transaction) *store.Transaction {
	return &store.Transaction{
		ID:           rt.ID,
		WalletID:     rt.WalletID,
		CategoryID:   rt.CategoryID,
		Description:  rt.Description,
		Amount:       rt.Amount,
		Type:         rt.Type,
		Date:         rt.Date,
		ImageURL:     rt.ImageURL,
		SyncStatus:   store.SyncSynced,
		LastModified: rt.UpdatedAt,
		DeletedAt:    rt.DeletedAt,
	}
}
