package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/model"
	"github.com/finchley/penny/internal/service"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Example: `  penny list
  penny list --day 2026-08-29
  penny list --month 2026-08 --category food
  penny list --deleted`,
		RunE: runList,
	}

	cmd.Flags().String("day", "", "only the given day (YYYY-MM-DD)")
	cmd.Flags().String("month", "", "only the given month (YYYY-MM)")
	cmd.Flags().String("category", "", "only the given category")
	cmd.Flags().Int("limit", 50, "maximum rows (0 = no limit)")
	cmd.Flags().Bool("deleted", false, "include soft-deleted transactions")
	cmd.MarkFlagsMutuallyExclusive("day", "month")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dayText, _ := cmd.Flags().GetString("day")
	monthText, _ := cmd.Flags().GetString("month")
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")
	deleted, _ := cmd.Flags().GetBool("deleted")

	filter := service.TransactionFilter{
		Category:       category,
		Limit:          limit,
		IncludeDeleted: deleted,
	}
	switch {
	case dayText != "":
		day, err := parseDay(dayText)
		if err != nil {
			return err
		}
		start, end := dayRange(day)
		filter.StartDate, filter.EndDate = &start, &end
	case monthText != "":
		month, err := parseMonth(monthText)
		if err != nil {
			return err
		}
		start, end := monthRange(month)
		filter.StartDate, filter.EndDate = &start, &end
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	txns, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	if len(txns) == 0 {
		fmt.Println("No transactions found.")
		return nil
	}

	fmt.Print(renderTransactionTable(txns))
	return nil
}

func renderTransactionTable(txns []model.Transaction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-16s  %-12s  %12s  %-6s  %s\n", "DATE", "CATEGORY", "AMOUNT", "MOOD", "NOTE")

	var income, expense decimal.Decimal
	for _, txn := range txns {
		mood := ""
		if txn.Mood != nil {
			mood = strings.Repeat("★", *txn.Mood)
		}
		note := txn.Note
		if txn.Deleted {
			note = strings.TrimSpace(note + " (deleted)")
		}
		fmt.Fprintf(&b, "%-16s  %-12s  %12s  %-6s  %s\n",
			txn.Date.In(time.Local).Format("2006-01-02 15:04"),
			txn.Category,
			cli.FormatAmount(txn.Amount),
			mood,
			note,
		)
		if txn.Deleted {
			continue
		}
		if txn.IsExpense() {
			expense = expense.Add(txn.AbsAmount())
		} else {
			income = income.Add(txn.Amount)
		}
	}

	fmt.Fprintf(&b, "\n%d transactions · income %s · expense %s · net %s\n",
		len(txns),
		income.StringFixed(2),
		expense.StringFixed(2),
		income.Sub(expense).StringFixed(2),
	)
	return b.String()
}
