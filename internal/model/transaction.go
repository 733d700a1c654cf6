package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single recorded income or expense entry.
// Amount is signed: negative values are expenses, positive values income.
type Transaction struct {
	Date     time.Time
	ID       string
	Category string
	Note     string
	Source   string
	Amount   decimal.Decimal
	Mood     *int // optional 1-5 mood score, nil when not recorded
	Deleted  bool
}

// IsExpense reports whether the transaction is an expense (negative amount).
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// AbsAmount returns the unsigned magnitude of the amount.
func (t *Transaction) AbsAmount() decimal.Decimal {
	return t.Amount.Abs()
}

// GenerateHash creates a unique hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format("2006-01-02T15:04:05.000"),
		t.Amount.String(),
		t.Category,
		t.Source)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
