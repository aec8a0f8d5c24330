package transaction

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/ui/views"
)

func NewSearchCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "search <query>",
		Short:        "Search transactions",
		Long:         `Search transactions by description, category or amount.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]

			transactions, err := a.Service.Transaction.Search(query)
			if err != nil {
				return err
			}

			if len(transactions) == 0 {
				pterm.Info.Printfln("No transactions matching %q", query)
				return nil
			}

			return views.NewTransactionListView().Render(
				pterm.Sprintf("Results for %q", query),
				toListItems(a, transactions),
			)
		},
	}

	return cmd
}
