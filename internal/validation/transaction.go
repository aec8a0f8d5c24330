package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"billfold/internal/constants"
)

// ValidateAmount checks a user-entered amount string: a positive decimal
// number. Matches the huh validator signature.
func ValidateAmount(val string) error {
	val = strings.TrimSpace(val)
	if val == "" {
		return fmt.Errorf("amount is required")
	}

	amount, err := decimal.NewFromString(val)
	if err != nil {
		return fmt.Errorf("invalid amount: must be a number")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

// ValidateDate checks a user-entered date in YYYY-MM-DD format. Empty input
// is accepted; prompts substitute a default.
func ValidateDate(val string) error {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	if _, err := time.Parse(constants.DateFormat, val); err != nil {
		return fmt.Errorf("invalid date: use %s", constants.DateFormat)
	}
	return nil
}
