package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/model"
)

// HeatmapLevels is the number of intensity steps in a heat-map cell,
// level 0 meaning "no spending" and HeatmapLevels-1 the heaviest day.
const HeatmapLevels = 5

// HeatmapCell is one calendar day of a month heat-map.
type HeatmapCell struct {
	Day     int // day of month, 1-based
	Count   int
	Expense decimal.Decimal
	Level   int
}

// MonthHeatmap is the discovery heat-map grid for one calendar month:
// one cell per day, with spending intensity scaled against the month's
// heaviest expense day.
type MonthHeatmap struct {
	Year  int
	Month time.Month
	Cells []HeatmapCell
}

// MonthSummary totals one calendar month.
type MonthSummary struct {
	Year    int
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
	Days    int // days with at least one transaction
	Count   int
}

// Net returns income minus expense for the month.
func (m MonthSummary) Net() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// BuildHeatmap builds the heat-map grid for the given month from the
// transaction list. Transactions outside the month are ignored.
func BuildHeatmap(txns []model.Transaction, year int, month time.Month, loc *time.Location) MonthHeatmap {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	hm := MonthHeatmap{
		Year:  year,
		Month: month,
		Cells: make([]HeatmapCell, daysInMonth),
	}
	for i := range hm.Cells {
		hm.Cells[i] = HeatmapCell{Day: i + 1, Expense: decimal.Zero}
	}

	for i := range txns {
		txn := &txns[i]
		local := txn.Date.In(loc)
		if local.Year() != year || local.Month() != month {
			continue
		}
		cell := &hm.Cells[local.Day()-1]
		cell.Count++
		if txn.IsExpense() {
			cell.Expense = cell.Expense.Add(txn.AbsAmount())
		}
	}

	// Scale levels 1..HeatmapLevels-1 against the heaviest expense day.
	max := decimal.Zero
	for i := range hm.Cells {
		if hm.Cells[i].Expense.GreaterThan(max) {
			max = hm.Cells[i].Expense
		}
	}
	if max.IsZero() {
		return hm
	}

	steps := decimal.NewFromInt(HeatmapLevels - 1)
	for i := range hm.Cells {
		cell := &hm.Cells[i]
		if cell.Expense.IsZero() {
			continue
		}
		level := cell.Expense.Mul(steps).Div(max).Ceil().IntPart()
		if level < 1 {
			level = 1
		}
		if level > HeatmapLevels-1 {
			level = HeatmapLevels - 1
		}
		cell.Level = int(level)
	}
	return hm
}

// BuildMonthSummary totals the transactions of one calendar month.
func BuildMonthSummary(txns []model.Transaction, year int, month time.Month, loc *time.Location) MonthSummary {
	summary := MonthSummary{
		Year:    year,
		Month:   month,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}

	days := make(map[int]struct{})
	for i := range txns {
		txn := &txns[i]
		local := txn.Date.In(loc)
		if local.Year() != year || local.Month() != month {
			continue
		}
		if txn.IsExpense() {
			summary.Expense = summary.Expense.Add(txn.AbsAmount())
		} else {
			summary.Income = summary.Income.Add(txn.Amount)
		}
		summary.Count++
		days[local.Day()] = struct{}{}
	}
	summary.Days = len(days)
	return summary
}
