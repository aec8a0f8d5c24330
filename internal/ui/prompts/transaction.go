package prompts

import (
	"strings"
	"time"

	"billfold/internal/constants"
	"billfold/internal/validation"
)

// PromptTransactionType prompts for income or expense.
func PromptTransactionType() (string, error) {
	options := []string{
		"expense - Money going out",
		"income - Money coming in",
	}

	selected, err := PromptSelect("Transaction Type:", options)
	if err != nil {
		return "", err
	}

	return strings.Split(selected, " ")[0], nil
}

// PromptAmount prompts for a positive amount.
func PromptAmount() (string, error) {
	return PromptInput("Amount:", "", validation.ValidateAmount)
}

// PromptCategory prompts for an optional category name.
func PromptCategory() (string, error) {
	return PromptInput("Category (optional):", "", nil)
}

// PromptTransactionDate prompts for the transaction date, defaulting to
// today.
func PromptTransactionDate() (string, error) {
	today := time.Now().Format(constants.DateFormat)
	return PromptDate("Date (YYYY-MM-DD):", today, validation.ValidateDate)
}
