package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/constants"
	"billfold/internal/store"
)

func NewEditCmd(a *app.App) *cobra.Command {
	var (
		newWallet   string
		newAmount   string
		newType     string
		newCategory string
		newDesc     string
		newDate     string
		newImage    string
		removeImage bool
	)

	cmd := &cobra.Command{
		Use:   "edit <transaction-id>",
		Short: "Edit a transaction",
		Long: `Edit a transaction. Changing amount, type or wallet reverts the old
balance effect and applies the new one in a single adjustment.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			patch := store.TransactionUpdate{}
			changed := false

			if cmd.Flags().Changed("wallet") {
				patch.WalletID = &newWallet
				changed = true
			}
			if cmd.Flags().Changed("amount") {
				amount, err := decimal.NewFromString(newAmount)
				if err != nil {
					return fmt.Errorf("invalid amount: must be a number")
				}
				patch.Amount = &amount
				changed = true
			}
			if cmd.Flags().Changed("type") {
				patch.Type = &newType
				changed = true
			}
			if cmd.Flags().Changed("category") {
				patch.CategoryID = &newCategory
				changed = true
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &newDesc
				changed = true
			}
			if cmd.Flags().Changed("date") {
				date, err := time.Parse(constants.DateFormat, newDate)
				if err != nil {
					return fmt.Errorf("invalid date: use %s", constants.DateFormat)
				}
				patch.Date = &date
				changed = true
			}
			if cmd.Flags().Changed("image") {
				patch.ImageURL = &newImage
				changed = true
			}
			if removeImage {
				changed = true
			}

			if !changed {
				return fmt.Errorf("nothing to change; pass at least one edit flag")
			}

			if err := a.Service.Transaction.Update(context.Background(), id, patch, removeImage); err != nil {
				return err
			}

			t, err := a.Service.Transaction.Get(id)
			if err != nil {
				return err
			}

			displayTransactionSummary(a, t)
			pterm.Success.Println("Transaction updated successfully!")
			return nil
		},
	}

	cmd.Flags().StringVarP(&newWallet, "wallet", "w", "", "Move to this wallet ID")
	cmd.Flags().StringVarP(&newAmount, "amount", "a", "", "New amount")
	cmd.Flags().StringVarP(&newType, "type", "t", "", "New type: income or expense")
	cmd.Flags().StringVarP(&newCategory, "category", "g", "", "New category")
	cmd.Flags().StringVarP(&newDesc, "description", "d", "", "New description")
	cmd.Flags().StringVar(&newDate, "date", "", "New transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&newImage, "image", "", "Path to a new receipt image")
	cmd.Flags().BoolVar(&removeImage, "remove-image", false, "Remove the stored receipt image")

	return cmd
}
