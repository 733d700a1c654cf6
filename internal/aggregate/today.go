package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/model"
)

// LastTransaction describes the most recent transaction of the day.
// Amount is the unsigned magnitude; IsExpense carries the sign.
type LastTransaction struct {
	ID        string
	Category  string
	Amount    decimal.Decimal
	IsExpense bool
}

// TodaySummary totals the transactions of the reference day. Expense and
// Income are positive sums; Net is income minus expense. Last is nil when
// the day has no transactions.
type TodaySummary struct {
	Expense decimal.Decimal
	Income  decimal.Decimal
	Net     decimal.Decimal
	Last    *LastTransaction
}

// BuildTodaySummary filters txns to the calendar day containing now (in the
// given zone) and totals them. The most recent transaction is the one with
// the latest timestamp; timestamp ties resolve to the highest ID, treated as
// most recently inserted.
func BuildTodaySummary(txns []model.Transaction, now time.Time, loc *time.Location) TodaySummary {
	today := DayStart(now.UnixMilli(), loc)

	summary := TodaySummary{
		Expense: decimal.Zero,
		Income:  decimal.Zero,
		Net:     decimal.Zero,
	}

	var last *model.Transaction
	for i := range txns {
		txn := &txns[i]
		if DayStart(txn.Date.UnixMilli(), loc) != today {
			continue
		}

		if txn.IsExpense() {
			summary.Expense = summary.Expense.Add(txn.AbsAmount())
		} else {
			summary.Income = summary.Income.Add(txn.Amount)
		}

		if last == nil || txn.Date.After(last.Date) ||
			(txn.Date.Equal(last.Date) && txn.ID > last.ID) {
			last = txn
		}
	}

	summary.Net = summary.Income.Sub(summary.Expense)
	if last != nil {
		summary.Last = &LastTransaction{
			ID:        last.ID,
			Category:  last.Category,
			Amount:    last.AbsAmount(),
			IsExpense: last.IsExpense(),
		}
	}
	return summary
}
