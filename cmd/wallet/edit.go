package wallet

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/store"
)

func NewEditCmd(a *app.App) *cobra.Command {
	var (
		newName    string
		newBalance string
		newDesc    string
	)

	cmd := &cobra.Command{
		Use:   "edit <wallet-id>",
		Short: "Edit a wallet",
		Long: `Edit a wallet's name, description or initial balance. Changing the
initial balance shifts the current balance by the difference, keeping
all transaction effects.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			patch := store.WalletUpdate{}

			if cmd.Flags().Changed("name") {
				patch.Name = &newName
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &newDesc
			}
			if cmd.Flags().Changed("balance") {
				balance, err := decimal.NewFromString(newBalance)
				if err != nil {
					return fmt.Errorf("invalid balance: must be a number")
				}
				patch.InitialBalance = &balance
			}

			if patch.Name == nil && patch.Description == nil && patch.InitialBalance == nil {
				return fmt.Errorf("nothing to change; pass at least one of --name, --balance, --description")
			}

			if err := a.Service.Wallet.Update(context.Background(), id, patch); err != nil {
				return err
			}

			w, err := a.Service.Wallet.Get(id)
			if err != nil {
				return err
			}

			displayWalletSummary(w)
			pterm.Success.Println("Wallet updated successfully!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&newName, "name", "n", "", "New wallet name")
	cmd.Flags().StringVarP(&newBalance, "balance", "b", "", "New initial balance")
	cmd.Flags().StringVarP(&newDesc, "description", "d", "", "New description")

	return cmd
}
