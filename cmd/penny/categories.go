package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/aggregate"
	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/model"
	"github.com/finchley/penny/internal/service"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage transaction categories",
		RunE:    runCategoriesList,
	}

	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesDisableCmd())
	cmd.AddCommand(categoriesFrequentCmd())

	return cmd
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	categories, err := store.GetCategories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	for _, cat := range categories {
		state := ""
		if !cat.IsActive {
			state = " (disabled)"
		}
		fmt.Printf("%s %-12s %s%s\n", cat.Icon, cat.Name, cat.Type, state)
	}
	return nil
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a category",
		Args:    cobra.ExactArgs(1),
		Example: `  penny categories add coffee --icon ☕ --type expense`,
		RunE: func(cmd *cobra.Command, args []string) error {
			icon, _ := cmd.Flags().GetString("icon")
			typeText, _ := cmd.Flags().GetString("type")

			categoryType := model.CategoryType(typeText)
			if categoryType != model.CategoryTypeIncome && categoryType != model.CategoryTypeExpense {
				return fmt.Errorf("invalid category type %q (want income or expense)", typeText)
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := store.CreateCategory(cmd.Context(), args[0], icon, categoryType)
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added category %s %s", cat.Icon, cat.Name)))
			return nil
		},
	}

	cmd.Flags().String("icon", "💰", "category icon")
	cmd.Flags().String("type", "expense", "category type (income or expense)")

	return cmd
}

func categoriesDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <name>",
		Short: "Disable a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := store.GetCategoryByName(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to find category %q: %w", args[0], err)
			}
			if err := store.DeactivateCategory(cmd.Context(), cat.ID); err != nil {
				return fmt.Errorf("failed to disable category: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Disabled category %s", cat.Name)))
			return nil
		},
	}
}

func categoriesFrequentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frequent",
		Short: "Rank categories by how often you use them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			txns, err := store.GetTransactions(cmd.Context(), service.TransactionFilter{})
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			stats := aggregate.RankFrequentCategories(txns, time.Now())
			if limit > 0 && len(stats) > limit {
				stats = stats[:limit]
			}

			if len(stats) == 0 {
				fmt.Println("No transactions yet.")
				return nil
			}

			fmt.Printf("%-12s  %5s  %12s  %s\n", "CATEGORY", "COUNT", "AVG AMOUNT", "KIND")
			for _, stat := range stats {
				kind := "income"
				if stat.IsExpense {
					kind = "expense"
				}
				fmt.Printf("%-12s  %5d  %12s  %s\n", stat.Category, stat.Count, stat.AverageAmount.StringFixed(2), kind)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 10, "maximum categories to show (0 = all)")

	return cmd
}
