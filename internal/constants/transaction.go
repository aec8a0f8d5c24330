package constants

const (
	// Transaction Types
	TypeExpense = "expense"
	TypeIncome  = "income"

	// Date Layout
	DateFormat = "2006-01-02"
)
