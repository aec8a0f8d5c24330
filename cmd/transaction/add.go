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
	"billfold/internal/service"
	"billfold/internal/store"
	"billfold/internal/ui"
	"billfold/internal/ui/prompts"
)

// Command-line flags
var (
	txWallet   string
	txAmount   string
	txType     string
	txCategory string
	txDesc     string
	txDate     string
	txImage    string
)

func NewAddCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new transaction.",
		Long: `Add an income or expense transaction to a wallet. The wallet balance
updates immediately, online or offline.

Example: billfold tx add -w <wallet-id> -a 12.50 -t expense -g Groceries`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("wallet") {
				return runAddFromFlags(a)
			}
			return runAddInteractive(a)
		},
	}

	cmd.Flags().StringVarP(&txWallet, "wallet", "w", "", "Wallet ID")
	cmd.Flags().StringVarP(&txAmount, "amount", "a", "", "Amount (positive number)")
	cmd.Flags().StringVarP(&txType, "type", "t", constants.TypeExpense, "Transaction type: income or expense")
	cmd.Flags().StringVarP(&txCategory, "category", "g", "", "Category (optional)")
	cmd.Flags().StringVarP(&txDesc, "description", "d", "", "Description (optional)")
	cmd.Flags().StringVar(&txDate, "date", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&txImage, "image", "", "Path to a receipt image (optional)")

	return cmd
}

func runAddFromFlags(a *app.App) error {
	amount, err := decimal.NewFromString(txAmount)
	if err != nil {
		return fmt.Errorf("invalid amount: must be a number")
	}

	date := time.Now().UTC()
	if txDate != "" {
		date, err = time.Parse(constants.DateFormat, txDate)
		if err != nil {
			return fmt.Errorf("invalid date: use %s", constants.DateFormat)
		}
	}

	input := service.TransactionInput{
		WalletID:    txWallet,
		CategoryID:  txCategory,
		Description: txDesc,
		Amount:      amount,
		Type:        txType,
		Date:        date,
	}
	if txImage != "" {
		input.ImageURL = &txImage
	}

	return saveTransaction(a, input)
}

func runAddInteractive(a *app.App) error {
	wallets, err := a.Service.Wallet.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to retrieve wallets: %w", err)
	}

	wallet, err := prompts.PromptWallet(wallets)
	if err != nil {
		return err
	}

	txType, err := prompts.PromptTransactionType()
	if err != nil {
		return err
	}

	amountInput, err := prompts.PromptAmount()
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountInput)
	if err != nil {
		return fmt.Errorf("invalid amount input: must be a number")
	}

	category, err := prompts.PromptCategory()
	if err != nil {
		return err
	}

	dateInput, err := prompts.PromptTransactionDate()
	if err != nil {
		return err
	}
	date, err := time.Parse(constants.DateFormat, dateInput)
	if err != nil {
		return fmt.Errorf("invalid date: use %s", constants.DateFormat)
	}

	desc, err := prompts.PromptDescription()
	if err != nil {
		return err
	}

	confirm, err := prompts.PromptConfirm("Proceed with transaction?", true)
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("transaction cancelled")
	}

	return saveTransaction(a, service.TransactionInput{
		WalletID:    wallet.ID,
		CategoryID:  category,
		Description: desc,
		Amount:      amount,
		Type:        txType,
		Date:        date,
	})
}

func saveTransaction(a *app.App, input service.TransactionInput) error {
	t, err := a.Service.Transaction.Create(context.Background(), input)
	if err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}

	displayTransactionSummary(a, t)
	pterm.Success.Println("Transaction added successfully!")
	return nil
}

func displayTransactionSummary(a *app.App, t *store.Transaction) {
	ui.Separator()

	walletName := t.WalletID
	if w, err := a.Service.Wallet.Get(t.WalletID); err == nil {
		walletName = w.Name
	}

	tableData := pterm.TableData{
		{pterm.Blue("Transaction ID"), t.ID},
		{pterm.Blue("Wallet"), walletName},
		{pterm.Blue("Type"), t.Type},
		{pterm.Blue("Amount"), t.Amount.StringFixed(2)},
		{pterm.Blue("Date"), t.Date.Format(constants.DateFormat)},
		{pterm.Blue("Sync"), string(t.SyncStatus)},
	}

	pterm.DefaultTable.WithData(tableData).Render()
}
