package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/service"
)

// NewSyncCmd builds the manual "sync now" trigger of the reconciliation
// engine.
func NewSyncCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push pending changes and pull remote state",
		Long: `Run one reconciliation cycle against the remote backend: push all
locally pending wallets and transactions, then pull and merge remote
state. Records that fail to push stay pending and retry on the next
sync.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Gateway == nil {
				return service.ErrRemoteNotConfigured
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			spinner, _ := pterm.DefaultSpinner.Start("Checking connectivity...")
			err := a.Gateway.Ping(ctx)
			a.Mode.SetConnected(err == nil)
			if err != nil {
				spinner.Fail("Remote backend unreachable; staying offline")
				return nil
			}

			spinner.UpdateText("Syncing...")
			res, err := a.Service.Sync.SyncNow(ctx)
			if err != nil {
				if errors.Is(err, service.ErrRemoteNotConfigured) {
					spinner.Fail("Remote sync is not configured")
					return nil
				}
				spinner.Fail("Sync failed")
				return err
			}

			spinner.Success("Sync complete")

			status, err := a.Service.Sync.Status()
			if err != nil {
				return err
			}

			tableData := pterm.TableData{
				{pterm.Blue("Wallets pushed"), pterm.Sprintf("%d", res.WalletsSynced)},
				{pterm.Blue("Transactions pushed"), pterm.Sprintf("%d", res.TransactionsSynced)},
				{pterm.Blue("Still pending"), pterm.Sprintf("%d", status.PendingCount)},
			}
			pterm.DefaultTable.WithData(tableData).Render()

			if status.PendingCount > 0 {
				pterm.Warning.Printf("%d items still pending; they will retry on the next sync\n", status.PendingCount)
			}
			return nil
		},
	}
}
