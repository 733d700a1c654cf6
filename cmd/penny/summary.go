package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/aggregate"
	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/service"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show today's totals, or a month's",
		Example: `  penny summary
  penny summary --month 2026-08`,
		RunE: runSummary,
	}

	cmd.Flags().String("month", "", "summarize the given month (YYYY-MM) instead of today")

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	monthText, _ := cmd.Flags().GetString("month")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if monthText != "" {
		month, err := parseMonth(monthText)
		if err != nil {
			return err
		}
		start, end := monthRange(month)
		txns, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}

		sum := aggregate.BuildMonthSummary(txns, month.Year(), month.Month(), time.Local)
		content := fmt.Sprintf("Income   %s\nExpense  %s\nNet      %s\nEntries  %d",
			sum.Income.StringFixed(2),
			sum.Expense.StringFixed(2),
			sum.Net().StringFixed(2),
			sum.Count,
		)
		fmt.Println(cli.RenderBox(month.Format("January 2006"), content))
		return nil
	}

	now := time.Now()
	start, end := dayRange(now)
	txns, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	sum := aggregate.BuildTodaySummary(txns, now, time.Local)

	var b strings.Builder
	fmt.Fprintf(&b, "Expense  %s\n", sum.Expense.StringFixed(2))
	fmt.Fprintf(&b, "Income   %s\n", sum.Income.StringFixed(2))
	fmt.Fprintf(&b, "Net      %s", sum.Net.StringFixed(2))
	if sum.Last != nil {
		direction := "income"
		if sum.Last.IsExpense {
			direction = "expense"
		}
		fmt.Fprintf(&b, "\nLast     %s %s (%s)", sum.Last.Category, sum.Last.Amount.StringFixed(2), direction)
	}
	fmt.Println(cli.RenderBox("Today", b.String()))
	return nil
}
