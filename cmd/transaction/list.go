package transaction

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/store"
	"billfold/internal/ui/views"
)

func NewListCmd(a *app.App) *cobra.Command {
	var walletID string

	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List transactions",
		Long:         `List transactions, newest first. Soft-deleted transactions are never shown.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var transactions []*store.Transaction
			var err error

			if walletID != "" {
				transactions, err = a.Service.Transaction.ListByWallet(walletID)
			} else {
				transactions, err = a.Service.Transaction.List(context.Background())
			}
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}

			return views.NewTransactionListView().Render("Transactions", toListItems(a, transactions))
		},
	}

	cmd.Flags().StringVarP(&walletID, "wallet", "w", "", "Only show transactions for this wallet")

	return cmd
}
