package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import transactions from CSV or OFX files",
		Long: `Import transactions from statement files. The format is detected from
the extension: .csv for penny CSV exports, .ofx/.qfx for bank statement
downloads. Transactions already in the database are skipped.`,
		Example: `  penny import statement.ofx
  penny import --dry-run export.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("dry-run", false, "parse and report without saving anything")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	hashes, ok := store.(importer.HashChecker)
	if !ok {
		return fmt.Errorf("storage does not support duplicate detection")
	}

	result, err := importer.New(store, hashes).Import(ctx, args, importer.Options{DryRun: dryRun})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	msg := fmt.Sprintf("Imported %d transactions from %d files (%d duplicates skipped)",
		result.Imported, result.Files, result.Duplicates)
	if dryRun {
		msg += " [dry run]"
	}
	fmt.Println(cli.FormatSuccess(msg))
	return nil
}
