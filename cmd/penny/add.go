package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/common"
	"github.com/finchley/penny/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record an income or expense transaction. Amounts are signed: negative
for expenses, positive for income. Passing --expense negates a positive
amount for you.`,
		Example: `  penny add --amount -12.50 --category food --note "lunch"
  penny add --amount 12.50 --expense --category food --mood 4
  penny add --amount 3000 --category salary --date 2026-08-25`,
		RunE: runAdd,
	}

	cmd.Flags().String("amount", "", "transaction amount (required)")
	cmd.Flags().String("category", "other", "category name")
	cmd.Flags().String("note", "", "free-form note")
	cmd.Flags().String("source", "manual", "transaction source")
	cmd.Flags().Int("mood", 0, "mood rating 1-5 (0 = unset)")
	cmd.Flags().String("date", "", "transaction date (YYYY-MM-DD or RFC3339, default now)")
	cmd.Flags().Bool("expense", false, "record amount as an expense")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	amountText, _ := cmd.Flags().GetString("amount")
	category, _ := cmd.Flags().GetString("category")
	note, _ := cmd.Flags().GetString("note")
	source, _ := cmd.Flags().GetString("source")
	mood, _ := cmd.Flags().GetInt("mood")
	dateText, _ := cmd.Flags().GetString("date")
	expense, _ := cmd.Flags().GetBool("expense")

	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return common.NewUserError(
			fmt.Sprintf("Invalid amount %q: expected a decimal number like -12.50.", amountText),
			fmt.Errorf("%w: %v", common.ErrInvalidInput, err),
		)
	}
	if expense && amount.IsPositive() {
		amount = amount.Neg()
	}

	date := time.Now()
	if dateText != "" {
		date, err = parseDate(dateText)
		if err != nil {
			return err
		}
	}

	txn := model.Transaction{
		ID:       uuid.NewString(),
		Date:     date,
		Category: category,
		Note:     note,
		Source:   source,
		Amount:   amount,
	}
	if mood != 0 {
		txn.Mood = &mood
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.GetCategoryByName(ctx, category); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("Category %q is not defined; recording anyway.", category)))
		} else {
			return err
		}
	}

	if err := store.SaveTransactions(ctx, []model.Transaction{txn}); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}

	fmt.Printf("%s %s %s (%s)\n",
		cli.FormatSuccess("Recorded"),
		cli.FormatAmount(txn.Amount),
		category,
		txn.ID,
	)
	return nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC3339): %w", value, err)
	}
	return t, nil
}
