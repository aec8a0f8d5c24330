package views

import (
	"github.com/pterm/pterm"
)

type TransactionListItem struct {
	ID          string
	Date        string
	Type        string
	Wallet      string
	Category    string
	Description string
	Amount      string
	SyncStatus  string
}

type TransactionListView struct{}

func NewTransactionListView() *TransactionListView {
	return &TransactionListView{}
}

func (v *TransactionListView) Render(title string, items []TransactionListItem) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("%s", title)

	tableData := pterm.TableData{
		{"ID", "Date", "Type", "Wallet", "Category", "Description", "Amount", "Sync"},
	}

	for _, item := range items {
		var coloredType, coloredAmount string

		switch item.Type {
		case "expense":
			coloredType = pterm.Red(item.Type)
			coloredAmount = pterm.Red(item.Amount)
		case "income":
			coloredType = pterm.Green(item.Type)
			coloredAmount = pterm.Green(item.Amount)
		default:
			coloredType = item.Type
			coloredAmount = item.Amount
		}

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
			item.Date,
			coloredType,
			item.Wallet,
			item.Category,
			item.Description,
			coloredAmount,
			coloredSync,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(items))
	return nil
}
