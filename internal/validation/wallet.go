package validation

import (
	"fmt"
	"strings"

	"billfold/internal/constants"
)

// ValidateWalletName checks a wallet name for prompts and flags.
func ValidateWalletName(val string) error {
	name := strings.TrimSpace(val)
	if name == "" {
		return fmt.Errorf("wallet name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("wallet name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}
