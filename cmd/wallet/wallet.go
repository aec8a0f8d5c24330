package wallet

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"billfold/internal/app"
)

func NewWalletCmd(a *app.App) *cobra.Command {
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Create, edit, delete wallets and show the list of all wallets.",
		Long:  `Create, edit, delete wallets and show the list of all wallets.`,
	}

	walletCmd.AddCommand(NewCreateCmd(a))
	walletCmd.AddCommand(NewListCmd(a))
	walletCmd.AddCommand(NewEditCmd(a))
	walletCmd.AddCommand(NewDeleteCmd(a))

	return walletCmd
}

func currency() string {
	c := viper.GetString("defaults.currency")
	if c == "" {
		c = "USD"
	}
	return c
}
