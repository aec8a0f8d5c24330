package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"billfold/internal/constants"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestWallet(t *testing.T, s *Store, name string, balance string) *Wallet {
	t.Helper()

	w := &Wallet{
		Name:           name,
		InitialBalance: decimal.RequireFromString(balance),
		CurrentBalance: decimal.RequireFromString(balance),
	}
	if _, err := s.CreateWallet(w); err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	return w
}

func createTestTransaction(t *testing.T, s *Store, walletID, txType, amount string) *Transaction {
	t.Helper()

	tx := &Transaction{
		WalletID: walletID,
		Amount:   decimal.RequireFromString(amount),
		Type:     txType,
		Date:     time.Now().UTC(),
	}
	if _, err := s.CreateTransaction(tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	return tx
}

func TestCreateWallet(t *testing.T) {
	s := newTestStore(t)

	w := createTestWallet(t, s, "Cash", "100.50")

	if w.ID == "" {
		t.Fatal("expected a generated wallet ID")
	}
	if w.SyncStatus != SyncPending {
		t.Errorf("expected new wallet to be pending, got %s", w.SyncStatus)
	}

	got, err := s.GetWallet(w.ID)
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	if got.Name != "Cash" {
		t.Errorf("expected name Cash, got %s", got.Name)
	}
	if !got.CurrentBalance.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("expected balance 100.50, got %s", got.CurrentBalance)
	}
}

func TestGetWalletNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetWallet("missing")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpdateWalletMarksPending(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "0")

	if err := s.MarkWalletSynced(w.ID); err != nil {
		t.Fatalf("failed to mark synced: %v", err)
	}
	before, _ := s.GetWallet(w.ID)

	newName := "Checking"
	if err := s.UpdateWallet(w.ID, WalletUpdate{Name: &newName}); err != nil {
		t.Fatalf("failed to update wallet: %v", err)
	}

	got, err := s.GetWallet(w.ID)
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	if got.Name != "Checking" {
		t.Errorf("expected updated name, got %s", got.Name)
	}
	if got.SyncStatus != SyncPending {
		t.Errorf("expected edit to mark wallet pending, got %s", got.SyncStatus)
	}
	if got.LastModified.Before(before.LastModified) {
		t.Error("expected edit to advance last modified timestamp")
	}
}

func TestUpdateWalletNotFound(t *testing.T) {
	s := newTestStore(t)

	name := "x"
	err := s.UpdateWallet("missing", WalletUpdate{Name: &name})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestMarkWalletSyncedPreservesLastModified(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "0")

	before, err := s.GetWallet(w.ID)
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}

	if err := s.MarkWalletSynced(w.ID); err != nil {
		t.Fatalf("failed to mark synced: %v", err)
	}

	after, err := s.GetWallet(w.ID)
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	if after.SyncStatus != SyncSynced {
		t.Errorf("expected synced status, got %s", after.SyncStatus)
	}
	if !after.LastModified.Equal(before.LastModified) {
		t.Errorf("marking synced must not touch last modified: %v != %v", after.LastModified, before.LastModified)
	}
}

func TestSoftDeleteWallet(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "0")

	if err := s.MarkWalletSynced(w.ID); err != nil {
		t.Fatalf("failed to mark synced: %v", err)
	}
	if err := s.SoftDeleteWallet(w.ID); err != nil {
		t.Fatalf("failed to soft delete wallet: %v", err)
	}

	// invisible through the normal read path
	if _, err := s.GetWallet(w.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected deleted wallet to be invisible, got %v", err)
	}
	wallets, err := s.ListWallets()
	if err != nil {
		t.Fatalf("failed to list wallets: %v", err)
	}
	if len(wallets) != 0 {
		t.Errorf("expected deleted wallet excluded from listing, got %d", len(wallets))
	}

	// still reachable as a tombstone awaiting sync
	got, err := s.GetWalletAny(w.ID)
	if err != nil {
		t.Fatalf("failed to get tombstone: %v", err)
	}
	if got.DeletedAt == nil {
		t.Error("expected tombstone to carry a deletion timestamp")
	}
	if got.SyncStatus != SyncPending {
		t.Errorf("expected tombstone to be pending, got %s", got.SyncStatus)
	}

	pending, err := s.ListPendingWallets()
	if err != nil {
		t.Fatalf("failed to list pending wallets: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("expected tombstone in pending list, got %d entries", len(pending))
	}
}

func TestSoftDeleteWalletTwice(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "0")

	if err := s.SoftDeleteWallet(w.ID); err != nil {
		t.Fatalf("failed to soft delete wallet: %v", err)
	}
	if err := s.SoftDeleteWallet(w.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected second delete to report not found, got %v", err)
	}
}

func TestAdjustWalletBalance(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "100")

	if err := s.AdjustWalletBalance(w.ID, decimal.RequireFromString("-30.25")); err != nil {
		t.Fatalf("failed to adjust balance: %v", err)
	}

	got, err := s.GetWallet(w.ID)
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	if !got.CurrentBalance.Equal(decimal.RequireFromString("69.75")) {
		t.Errorf("expected balance 69.75, got %s", got.CurrentBalance)
	}
}

func TestAdjustWalletBalanceNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.AdjustWalletBalance("missing", decimal.NewFromInt(1))
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "0")
	tx := createTestTransaction(t, s, w.ID, constants.TypeExpense, "12.50")

	got, err := s.GetTransaction(tx.ID)
	if err != nil {
		t.Fatalf("failed to get transaction: %v", err)
	}
	if got.SyncStatus != SyncPending {
		t.Errorf("expected new transaction pending, got %s", got.SyncStatus)
	}
	if !got.SignedAmount().Equal(decimal.RequireFromString("-12.50")) {
		t.Errorf("expected signed amount -12.50, got %s", got.SignedAmount())
	}

	newAmount := decimal.RequireFromString("20")
	if err := s.UpdateTransaction(tx.ID, TransactionUpdate{Amount: &newAmount}); err != nil {
		t.Fatalf("failed to update transaction: %v", err)
	}
	got, _ = s.GetTransaction(tx.ID)
	if !got.Amount.Equal(newAmount) {
		t.Errorf("expected amount 20, got %s", got.Amount)
	}

	if err := s.SoftDeleteTransaction(tx.ID); err != nil {
		t.Fatalf("failed to soft delete transaction: %v", err)
	}
	if _, err := s.GetTransaction(tx.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("expected deleted transaction to be invisible, got %v", err)
	}
	tomb, err := s.GetTransactionAny(tx.ID)
	if err != nil {
		t.Fatalf("failed to get tombstone: %v", err)
	}
	if tomb.DeletedAt == nil {
		t.Error("expected tombstone deletion timestamp")
	}
}

func TestUpdateTransactionClearImage(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "0")

	img := "/tmp/receipt.jpg"
	tx := &Transaction{
		WalletID: w.ID,
		Amount:   decimal.NewFromInt(5),
		Type:     constants.TypeExpense,
		Date:     time.Now().UTC(),
		ImageURL: &img,
	}
	if _, err := s.CreateTransaction(tx); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}

	if err := s.UpdateTransaction(tx.ID, TransactionUpdate{ClearImage: true}); err != nil {
		t.Fatalf("failed to clear image: %v", err)
	}

	got, _ := s.GetTransaction(tx.ID)
	if got.ImageURL != nil {
		t.Errorf("expected image reference removed, got %s", *got.ImageURL)
	}
}

func TestListTransactionsByWallet(t *testing.T) {
	s := newTestStore(t)
	w1 := createTestWallet(t, s, "Cash", "0")
	w2 := createTestWallet(t, s, "Bank", "0")
	createTestTransaction(t, s, w1.ID, constants.TypeExpense, "1")
	createTestTransaction(t, s, w1.ID, constants.TypeIncome, "2")
	createTestTransaction(t, s, w2.ID, constants.TypeExpense, "3")

	txs, err := s.ListTransactionsByWallet(w1.ID)
	if err != nil {
		t.Fatalf("failed to list by wallet: %v", err)
	}
	if len(txs) != 2 {
		t.Errorf("expected 2 transactions for wallet, got %d", len(txs))
	}
}

func TestSearchTransactions(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "0")

	groceries := &Transaction{
		WalletID:    w.ID,
		CategoryID:  "Groceries",
		Description: "weekly shop",
		Amount:      decimal.RequireFromString("45.10"),
		Type:        constants.TypeExpense,
		Date:        time.Now().UTC(),
	}
	if _, err := s.CreateTransaction(groceries); err != nil {
		t.Fatalf("failed to create transaction: %v", err)
	}
	createTestTransaction(t, s, w.ID, constants.TypeIncome, "1000")

	byCategory, err := s.SearchTransactions("grocer")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != groceries.ID {
		t.Errorf("expected category match, got %d results", len(byCategory))
	}

	byDescription, err := s.SearchTransactions("weekly")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byDescription) != 1 {
		t.Errorf("expected description match, got %d results", len(byDescription))
	}

	byAmount, err := s.SearchTransactions("45.10")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byAmount) != 1 {
		t.Errorf("expected amount match, got %d results", len(byAmount))
	}
}

func TestCountWalletTransactionsIgnoresDeleted(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "0")
	tx := createTestTransaction(t, s, w.ID, constants.TypeExpense, "1")
	createTestTransaction(t, s, w.ID, constants.TypeExpense, "2")

	if err := s.SoftDeleteTransaction(tx.ID); err != nil {
		t.Fatalf("failed to soft delete: %v", err)
	}

	count, err := s.CountWalletTransactions(w.ID)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1 after deletion, got %d", count)
	}
}

func TestSyncState(t *testing.T) {
	s := newTestStore(t)

	ts, err := s.GetLastSync(EntityWallets)
	if err != nil {
		t.Fatalf("failed to read sync state: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("expected zero time before first sync, got %v", ts)
	}

	now := time.Now().UTC().Truncate(time.Second)
	if err := s.SetLastSync(EntityWallets, now); err != nil {
		t.Fatalf("failed to set sync state: %v", err)
	}

	got, err := s.GetLastSync(EntityWallets)
	if err != nil {
		t.Fatalf("failed to read sync state: %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("expected %v, got %v", now, got)
	}

	// transactions entity is tracked independently
	other, err := s.GetLastSync(EntityTransactions)
	if err != nil {
		t.Fatalf("failed to read sync state: %v", err)
	}
	if !other.IsZero() {
		t.Errorf("expected transactions sync state untouched, got %v", other)
	}
}

func TestPutWalletOverwrites(t *testing.T) {
	s := newTestStore(t)
	w := createTestWallet(t, s, "Cash", "100")

	replacement := &Wallet{
		ID:             w.ID,
		Name:           "Cash (server)",
		InitialBalance: decimal.NewFromInt(100),
		CurrentBalance: decimal.NewFromInt(80),
		SyncStatus:     SyncSynced,
		LastModified:   time.Now().UTC().Add(time.Hour),
	}
	if err := s.PutWallet(replacement); err != nil {
		t.Fatalf("failed to put wallet: %v", err)
	}

	got, err := s.GetWallet(w.ID)
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	if got.Name != "Cash (server)" {
		t.Errorf("expected overwritten name, got %s", got.Name)
	}
	if got.SyncStatus != SyncSynced {
		t.Errorf("expected synced status, got %s", got.SyncStatus)
	}
}

func TestExecTxRollback(t *testing.T) {
	s := newTestStore(t)

	err := s.ExecTx(func(r Repository) error {
		if _, err := r.CreateWallet(&Wallet{Name: "doomed"}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected transaction error")
	}

	wallets, err := s.ListWallets()
	if err != nil {
		t.Fatalf("failed to list wallets: %v", err)
	}
	if len(wallets) != 0 {
		t.Errorf("expected rollback to discard the wallet, got %d", len(wallets))
	}
}
