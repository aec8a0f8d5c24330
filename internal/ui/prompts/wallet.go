package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"billfold/internal/store"
	"billfold/internal/validation"
)

// PromptWalletName prompts for a wallet name with validation.
func PromptWalletName() (string, error) {
	return PromptInput("Wallet Name:", "", validation.ValidateWalletName)
}

// PromptInitialBalance prompts for the opening balance, defaulting to zero.
func PromptInitialBalance() (string, error) {
	var balance string

	err := huh.NewInput().
		Title("Initial Balance:").
		Placeholder("0").
		Validate(func(s string) error {
			if s == "" {
				return nil
			}
			return validation.ValidateAmount(s)
		}).
		Value(&balance).
		Run()

	if err != nil {
		return "", err
	}
	if balance == "" {
		return "0", nil
	}
	return balance, nil
}

// PromptDescription prompts for an optional description.
func PromptDescription() (string, error) {
	return PromptInput("Description (optional):", "", nil)
}

// PromptWallet prompts for a wallet from the given list and returns the
// selected one.
func PromptWallet(wallets []*store.Wallet) (*store.Wallet, error) {
	if len(wallets) == 0 {
		return nil, fmt.Errorf("no wallets exist yet; create one first")
	}

	walletMap := make(map[string]*store.Wallet)
	var options []huh.Option[string]

	for _, w := range wallets {
		label := fmt.Sprintf("%s (%s)", w.Name, w.CurrentBalance.StringFixed(2))
		walletMap[label] = w
		options = append(options, huh.NewOption(label, label))
	}

	var selected string
	err := huh.NewSelect[string]().
		Title("Wallet:").
		Options(options...).
		Value(&selected).
		Height(10).
		Run()

	if err != nil {
		return nil, fmt.Errorf("input cancelled: %w", err)
	}

	return walletMap[selected], nil
}
