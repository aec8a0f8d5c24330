package wallet

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/ui/views"
)

func NewListCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all wallets with their balances",
		Long: `List all wallets with their current balances and sync state.
Soft-deleted wallets are never shown.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			wallets, err := a.Service.Wallet.List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get wallets: %w", err)
			}

			items := make([]views.WalletListItem, 0, len(wallets))
			for _, w := range wallets {
				items = append(items, views.WalletListItem{
					ID:         w.ID,
					Name:       w.Name,
					Balance:    w.CurrentBalance.StringFixed(2),
					Currency:   currency(),
					SyncStatus: string(w.SyncStatus),
				})
			}

			return views.NewWalletListView().Render(items)
		},
	}
}
