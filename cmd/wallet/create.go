package wallet

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/service"
	"billfold/internal/store"
	"billfold/internal/ui"
	"billfold/internal/ui/prompts"
	"billfold/internal/validation"
)

// Command-line flags
var (
	wltName    string
	wltBalance string
	wltDesc    string
)

func NewCreateCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new wallet.",
		Long: `Create a wallet to hold transactions. The initial balance becomes the
starting point of the running balance.

Example: billfold wallet create -n Checking -b 1500.00`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("name") {
				return runCreateFromFlags(a)
			}
			return runCreateInteractive(a)
		},
	}

	cmd.Flags().StringVarP(&wltName, "name", "n", "", "Wallet name")
	cmd.Flags().StringVarP(&wltBalance, "balance", "b", "0", "Initial balance")
	cmd.Flags().StringVarP(&wltDesc, "description", "d", "", "Wallet description (optional)")

	return cmd
}

func runCreateFromFlags(a *app.App) error {
	if err := validation.ValidateWalletName(wltName); err != nil {
		return fmt.Errorf("invalid wallet name: %w", err)
	}

	balance, err := decimal.NewFromString(wltBalance)
	if err != nil {
		return fmt.Errorf("invalid balance: must be a number")
	}

	return saveWallet(a, service.WalletInput{
		Name:           wltName,
		Description:    wltDesc,
		InitialBalance: balance,
	})
}

func runCreateInteractive(a *app.App) error {
	name, err := prompts.PromptWalletName()
	if err != nil {
		return err
	}

	balanceInput, err := prompts.PromptInitialBalance()
	if err != nil {
		return err
	}
	balance, err := decimal.NewFromString(balanceInput)
	if err != nil {
		return fmt.Errorf("invalid balance input: must be a number")
	}

	desc, err := prompts.PromptDescription()
	if err != nil {
		return err
	}

	confirm, err := prompts.PromptConfirm("Proceed with wallet creation?", true)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("wallet creation cancelled")
	}

	return saveWallet(a, service.WalletInput{
		Name:           name,
		Description:    desc,
		InitialBalance: balance,
	})
}

func saveWallet(a *app.App, input service.WalletInput) error {
	w, err := a.Service.Wallet.Create(context.Background(), input)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	displayWalletSummary(w)
	pterm.Success.Println("Wallet created successfully!")
	return nil
}

func displayWalletSummary(w *store.Wallet) {
	ui.Separator()

	descStr := w.Description
	if descStr == "" {
		descStr = "None"
	}

	tableData := pterm.TableData{
		{pterm.Blue("Wallet ID"), w.ID},
		{pterm.Blue("Name"), w.Name},
		{pterm.Blue("Balance"), w.CurrentBalance.StringFixed(2)},
		{pterm.Blue("Description"), descStr},
		{pterm.Blue("Sync"), string(w.SyncStatus)},
	}

	pterm.DefaultTable.WithData(tableData).Render()
}
