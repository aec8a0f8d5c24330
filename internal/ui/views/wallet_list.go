package views

import (
	"fmt"

	"github.com/pterm/pterm"
)

type WalletListItem struct {
	ID         string
	Name       string
	Balance    string
	Currency   string
	SyncStatus string
}

type WalletListView struct{}

func NewWalletListView() *WalletListView {
	return &WalletListView{}
}

func (v *WalletListView) Render(items []WalletListItem) error {
	if len(items) == 0 {
		pterm.Warning.Println("No wallets found")
		return nil
	}

	pterm.DefaultSection.Printf("Wallets")

	tableData := pterm.TableData{
		{"ID", "Name", "Balance", "Sync"},
	}

	for _, item := range items {
		balanceWithCurrency := fmt.Sprintf("%s %s", item.Balance, item.Currency)

		var coloredSync string
		switch item.SyncStatus {
		case "synced":
			coloredSync = pterm.Green(item.SyncStatus)
		case "pending":
			coloredSync = pterm.Yellow(item.SyncStatus)
		default:
			coloredSync = pterm.Red(item.SyncStatus)
		}

		tableData = append(tableData, []string{
			item.ID,
			item.Name,
			balanceWithCurrency,
			coloredSync,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d wallets\n", len(items))
	return nil
}
