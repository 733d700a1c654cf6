package model

import "time"

// CategoryType indicates whether a category is for income or expense entries.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// Category represents a valid transaction category.
type Category struct {
	CreatedAt time.Time
	Name      string
	Icon      string
	Type      CategoryType
	ID        int
	IsActive  bool
}
