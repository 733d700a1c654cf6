package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/cli"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Soft-delete a transaction",
		Long: `Mark a transaction as deleted. Deleted transactions are hidden from
listings and totals but kept in the database; use "penny restore" to
bring one back, or "penny delete --purge" to drop them for good.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("purge", false, "permanently remove all soft-deleted transactions")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	purge, _ := cmd.Flags().GetBool("purge")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if purge {
		if len(args) > 0 {
			return fmt.Errorf("--purge takes no transaction id")
		}
		n, err := store.PurgeDeleted(ctx)
		if err != nil {
			return fmt.Errorf("failed to purge deleted transactions: %w", err)
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Purged %d deleted transactions", n)))
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("transaction id required")
	}

	txn, err := store.GetTransactionByID(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to find transaction %q: %w", args[0], err)
	}
	if err := store.DeleteTransaction(ctx, txn.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	fmt.Printf("%s %s %s\n", cli.FormatSuccess("Deleted"), cli.FormatAmount(txn.Amount), txn.Category)
	return nil
}

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a soft-deleted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.RestoreTransaction(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to restore transaction %q: %w", args[0], err)
			}

			fmt.Println(cli.FormatSuccess("Restored " + args[0]))
			return nil
		},
	}
}
