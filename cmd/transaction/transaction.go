package transaction

import (
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/store"
	"billfold/internal/ui/views"
)

func NewTransactionCmd(a *app.App) *cobra.Command {
	txCmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Add, edit, delete and search transactions.",
		Long:    `Add, edit, delete and search transactions.`,
	}

	txCmd.AddCommand(NewAddCmd(a))
	txCmd.AddCommand(NewListCmd(a))
	txCmd.AddCommand(NewEditCmd(a))
	txCmd.AddCommand(NewDeleteCmd(a))
	txCmd.AddCommand(NewSearchCmd(a))

	return txCmd
}

func toListItems(a *app.App, transactions []*store.Transaction) []views.TransactionListItem {
	// wallet names resolved once per listing
	names := make(map[string]string)
	if wallets, err := a.Store.ListWallets(); err == nil {
		for _, w := range wallets {
			names[w.ID] = w.Name
		}
	}

	items := make([]views.TransactionListItem, 0, len(transactions))
	for _, t := range transactions {
		walletName, ok := names[t.WalletID]
		if !ok {
			walletName = t.WalletID
		}
		items = append(items, views.TransactionListItem{
			ID:          t.ID,
			Date:        t.Date.Format("2006-01-02"),
			Type:        t.Type,
			Wallet:      walletName,
			Category:    t.CategoryID,
			Description: t.Description,
			Amount:      t.Amount.StringFixed(2),
			SyncStatus:  string(t.SyncStatus),
		})
	}
	return items
}
