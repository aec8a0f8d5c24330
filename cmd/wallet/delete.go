package wallet

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/service"
)

// surveyOpts contains custom options for all survey prompts
var surveyOpts = []survey.AskOpt{
	survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	}),
}

func NewDeleteCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <wallet-id>",
		Short: "Delete a wallet",
		Long: `Delete a wallet. Refused while the wallet still has transactions.
The record is kept as a tombstone until the deletion has propagated to
the remote store.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			w, err := a.Service.Wallet.Get(id)
			if err != nil {
				pterm.Error.Printf("Failed to delete wallet: %v\n", err)
				return nil
			}

			pterm.Warning.Printf("About to delete wallet %s:\n", w.Name)
			deletionInfo := pterm.TableData{
				{"Name", w.Name},
				{"Balance", w.CurrentBalance.StringFixed(2)},
			}
			pterm.DefaultTable.WithData(deletionInfo).Render()

			var confirmation bool
			confirmPrompt := &survey.Confirm{
				Message: "Do you want to delete this wallet?",
				Default: false,
			}
			if err := survey.AskOne(confirmPrompt, &confirmation, surveyOpts...); err != nil {
				return err
			}

			if !confirmation {
				pterm.Info.Println("Deletion cancelled")
				return nil
			}

			if err := a.Service.Wallet.Delete(context.Background(), id); err != nil {
				if errors.Is(err, service.ErrWalletHasTransactions) {
					pterm.Error.Println("Wallet still has transactions; delete or move them first")
					return nil
				}
				return err
			}

			pterm.Success.Printf("Wallet %s deleted successfully\n", w.Name)
			return nil
		},
	}
}
