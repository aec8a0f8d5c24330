package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"billfold/internal/constants"
	"billfold/internal/store"
)

func newTestLedger(t *testing.T) (*Ledger, *store.Store) {
	t.Helper()

	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func newWallet(t *testing.T, s *store.Store, balance string) *store.Wallet {
	t.Helper()

	w := &store.Wallet{
		Name:           "Cash",
		InitialBalance: decimal.RequireFromString(balance),
		CurrentBalance: decimal.RequireFromString(balance),
	}
	if _, err := s.CreateWallet(w); err != nil {
		t.Fatalf("failed to create wallet: %v", err)
	}
	return w
}

func balance(t *testing.T, s *store.Store, walletID string) decimal.Decimal {
	t.Helper()

	w, err := s.GetWallet(walletID)
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	return w.CurrentBalance
}

func tx(walletID, txType, amount string) *store.Transaction {
	return &store.Transaction{
		ID:       "tx-" + txType + "-" + amount,
		WalletID: walletID,
		Amount:   decimal.RequireFromString(amount),
		Type:     txType,
		Date:     time.Now().UTC(),
	}
}

func TestOnTransactionCreate(t *testing.T) {
	led, s := newTestLedger(t)
	w := newWallet(t, s, "100")

	if err := led.OnTransactionCreate(tx(w.ID, constants.TypeExpense, "30")); err != nil {
		t.Fatalf("create delta failed: %v", err)
	}
	if got := balance(t, s, w.ID); !got.Equal(decimal.NewFromInt(70)) {
		t.Errorf("expected balance 70 after expense, got %s", got)
	}

	if err := led.OnTransactionCreate(tx(w.ID, constants.TypeIncome, "50")); err != nil {
		t.Fatalf("create delta failed: %v", err)
	}
	if got := balance(t, s, w.ID); !got.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected balance 120 after income, got %s", got)
	}
}

func TestOnTransactionUpdateSameWallet(t *testing.T) {
	led, s := newTestLedger(t)
	w := newWallet(t, s, "100")

	old := tx(w.ID, constants.TypeExpense, "30")
	if err := led.OnTransactionCreate(old); err != nil {
		t.Fatalf("create delta failed: %v", err)
	}

	// amount edit: only the 15 difference lands
	updated := tx(w.ID, constants.TypeExpense, "45")
	if err := led.OnTransactionUpdate(old, updated); err != nil {
		t.Fatalf("update delta failed: %v", err)
	}
	if got := balance(t, s, w.ID); !got.Equal(decimal.NewFromInt(55)) {
		t.Errorf("expected balance 55 after amount edit, got %s", got)
	}

	// type flip reverts the expense and applies the income
	flipped := tx(w.ID, constants.TypeIncome, "45")
	if err := led.OnTransactionUpdate(updated, flipped); err != nil {
		t.Fatalf("update delta failed: %v", err)
	}
	if got := balance(t, s, w.ID); !got.Equal(decimal.NewFromInt(145)) {
		t.Errorf("expected balance 145 after type flip, got %s", got)
	}
}

func TestOnTransactionUpdateAcrossWallets(t *testing.T) {
	led, s := newTestLedger(t)
	w1 := newWallet(t, s, "100")
	w2 := newWallet(t, s, "200")

	old := tx(w1.ID, constants.TypeExpense, "25")
	if err := led.OnTransactionCreate(old); err != nil {
		t.Fatalf("create delta failed: %v", err)
	}

	moved := tx(w2.ID, constants.TypeExpense, "25")
	if err := led.OnTransactionUpdate(old, moved); err != nil {
		t.Fatalf("move delta failed: %v", err)
	}

	if got := balance(t, s, w1.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected source wallet restored to 100, got %s", got)
	}
	if got := balance(t, s, w2.ID); !got.Equal(decimal.NewFromInt(175)) {
		t.Errorf("expected target wallet at 175, got %s", got)
	}
}

func TestOnTransactionDelete(t *testing.T) {
	led, s := newTestLedger(t)
	w := newWallet(t, s, "100")

	created := tx(w.ID, constants.TypeExpense, "40")
	if err := led.OnTransactionCreate(created); err != nil {
		t.Fatalf("create delta failed: %v", err)
	}
	if err := led.OnTransactionDelete(created); err != nil {
		t.Fatalf("delete delta failed: %v", err)
	}

	if got := balance(t, s, w.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance restored to 100 after delete, got %s", got)
	}
}

func TestDeletedVersionsCarryNoEffect(t *testing.T) {
	led, s := newTestLedger(t)
	w := newWallet(t, s, "100")

	now := time.Now().UTC()
	dead := tx(w.ID, constants.TypeExpense, "40")
	dead.DeletedAt = &now

	if err := led.OnTransactionCreate(dead); err != nil {
		t.Fatalf("create delta failed: %v", err)
	}
	if err := led.OnTransactionDelete(dead); err != nil {
		t.Fatalf("delete delta failed: %v", err)
	}
	if got := balance(t, s, w.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected tombstones to leave balance untouched, got %s", got)
	}

	// overwrite of a live version by a tombstone reverts the live effect
	live := tx(w.ID, constants.TypeExpense, "40")
	if err := led.OnTransactionCreate(live); err != nil {
		t.Fatalf("create delta failed: %v", err)
	}
	if err := led.OnTransactionUpdate(live, dead); err != nil {
		t.Fatalf("update delta failed: %v", err)
	}
	if got := balance(t, s, w.ID); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected tombstone overwrite to revert effect, got %s", got)
	}
}

func TestOnInitialBalanceChange(t *testing.T) {
	led, s := newTestLedger(t)
	w := newWallet(t, s, "100")

	if err := led.OnTransactionCreate(tx(w.ID, constants.TypeExpense, "30")); err != nil {
		t.Fatalf("create delta failed: %v", err)
	}

	// initial 100 -> 150 shifts the current balance by 50, keeping the
	// accumulated transaction effect
	if err := led.OnInitialBalanceChange(w.ID, decimal.NewFromInt(100), decimal.NewFromInt(150)); err != nil {
		t.Fatalf("initial balance shift failed: %v", err)
	}
	if got := balance(t, s, w.ID); !got.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected balance 120 after initial balance change, got %s", got)
	}
}

func TestMissingWalletIsSkipped(t *testing.T) {
	led, _ := newTestLedger(t)

	if err := led.ApplyDelta("missing", decimal.NewFromInt(10)); err != nil {
		t.Errorf("expected missing wallet to be skipped, got %v", err)
	}
}
