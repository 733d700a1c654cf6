package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/currency"
	"github.com/finchley/penny/internal/importer"
	"github.com/finchley/penny/internal/service"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export transactions to a CSV file",
		Long: `Write transactions to a CSV file that "penny import" can read back.
Without --from/--to the whole history is exported.`,
		Example: `  penny export backup.csv
  penny export august.csv --from 2026-08-01 --to 2026-08-31`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().String("from", "", "first day to export (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "last day to export (YYYY-MM-DD, inclusive)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fromText, _ := cmd.Flags().GetString("from")
	toText, _ := cmd.Flags().GetString("to")

	filter := service.TransactionFilter{}
	if fromText != "" {
		from, err := parseDay(fromText)
		if err != nil {
			return err
		}
		filter.StartDate = &from
	}
	if toText != "" {
		to, err := parseDay(toText)
		if err != nil {
			return err
		}
		end := to.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	txns, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(importer.Columns); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, txn := range txns {
		mood := ""
		if txn.Mood != nil {
			mood = strconv.Itoa(*txn.Mood)
		}
		record := []string{
			txn.ID,
			txn.Date.In(time.Local).Format(time.RFC3339),
			txn.Category,
			txn.Note,
			txn.Source,
			currency.PlainString(txn.Amount),
			mood,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(txns), args[0])))
	return nil
}
