package transaction

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/constants"
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
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction",
		Long: `Delete a transaction. The record is tombstoned locally and removed from
the remote account on the next sync; the wallet balance is adjusted back.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			t, err := a.Service.Transaction.Get(id)
			if err != nil {
				if errors.Is(err, service.ErrTransactionNotFound) {
					pterm.Error.Printf("Failed to delete transaction: %v\n", err)
					return nil
				}
				return err
			}

			sign := "-"
			if t.Type == constants.TypeIncome {
				sign = "+"
			}
			pterm.Warning.Println("About to delete transaction:")
			deletionInfo := pterm.TableData{
				{"Date", t.Date.Format(constants.DateFormat)},
				{"Category", t.CategoryID},
				{"Amount", sign + t.Amount.StringFixed(2)},
				{"Description", t.Description},
			}
			pterm.DefaultTable.WithData(deletionInfo).Render()

			var confirmation bool
			confirmPrompt := &survey.Confirm{
				Message: "Do you want to delete this transaction?",
				Default: false,
			}
			if err := survey.AskOne(confirmPrompt, &confirmation, surveyOpts...); err != nil {
				return err
			}

			if !confirmation {
				pterm.Info.Println("Deletion cancelled")
				return nil
			}

			if err := a.Service.Transaction.Delete(context.Background(), id); err != nil {
				return err
			}

			pterm.Success.Println("Transaction deleted successfully")
			return nil
		},
	}
}
