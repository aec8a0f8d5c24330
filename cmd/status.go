package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"billfold/internal/app"
	"billfold/internal/config"
)

// NewStatusCmd reports sync state: last completed sync, pending records and
// whether online mode is active.
func NewStatusCmd(a *app.App, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:          "status",
		Short:        "Show sync status",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.Service.Sync.Status()
			if err != nil {
				return err
			}

			lastSync := "never"
			if !status.LastSync.IsZero() {
				lastSync = status.LastSync.Local().Format("2006-01-02 15:04:05")
			}

			onlineStr := pterm.Red("offline")
			if status.IsOnline {
				onlineStr = pterm.Green("online")
			}

			remoteStr := "not configured"
			if cfg.Remote.BaseURL != "" {
				remoteStr = cfg.Remote.BaseURL
			}

			pterm.DefaultSection.Printf("Sync Status")
			tableData := pterm.TableData{
				{pterm.Blue("Mode"), onlineStr},
				{pterm.Blue("Remote"), remoteStr},
				{pterm.Blue("Last sync"), lastSync},
				{pterm.Blue("Pending records"), pterm.Sprintf("%d", status.PendingCount)},
				{pterm.Blue("Config file"), cfg.ConfigPath},
			}
			pterm.DefaultTable.WithData(tableData).Render()

			return nil
		},
	}
}
