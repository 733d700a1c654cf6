package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/model"
)

// CategoryStat summarizes one category's usage: how often it appears, the
// mean absolute amount, and whether it is predominantly an expense category.
type CategoryStat struct {
	Category      string
	Count         int
	AverageAmount decimal.Decimal
	IsExpense     bool

	// mean timestamp of the category's transactions, used as the recency
	// tie-break between equally frequent categories
	meanMillis int64
}

// RankFrequentCategories groups transactions by category and orders the
// groups by occurrence count, most frequent first. Equal counts resolve
// toward the category whose transactions are more recent on average; the
// final fallback is the category name, for deterministic output.
//
// The expense/income flag is the majority sign within the category; a tie
// takes the sign of the category's first transaction in input order.
func RankFrequentCategories(txns []model.Transaction, now time.Time) []CategoryStat {
	type group struct {
		total      decimal.Decimal
		sumMillis  int64
		count      int
		expenses   int
		firstIsExp bool
	}

	groups := make(map[string]*group)
	order := make([]string, 0)

	for i := range txns {
		txn := &txns[i]
		// Future-dated entries do not contribute recency beyond now.
		ts := txn.Date.UnixMilli()
		if ts > now.UnixMilli() {
			ts = now.UnixMilli()
		}

		g, ok := groups[txn.Category]
		if !ok {
			g = &group{total: decimal.Zero, firstIsExp: txn.IsExpense()}
			groups[txn.Category] = g
			order = append(order, txn.Category)
		}

		g.total = g.total.Add(txn.AbsAmount())
		g.sumMillis += ts
		g.count++
		if txn.IsExpense() {
			g.expenses++
		}
	}

	stats := make([]CategoryStat, 0, len(groups))
	for _, name := range order {
		g := groups[name]

		isExpense := g.firstIsExp
		if incomes := g.count - g.expenses; g.expenses != incomes {
			isExpense = g.expenses > incomes
		}

		stats = append(stats, CategoryStat{
			Category:      name,
			Count:         g.count,
			AverageAmount: g.total.Div(decimal.NewFromInt(int64(g.count))),
			IsExpense:     isExpense,
			meanMillis:    g.sumMillis / int64(g.count),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		if stats[i].meanMillis != stats[j].meanMillis {
			return stats[i].meanMillis > stats[j].meanMillis
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}
