package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/common"
	"github.com/finchley/penny/internal/currency"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount between currencies",
		Long: `Convert an amount at a manually supplied exchange rate (target units per
base unit). Passing --swap additionally re-runs the conversion with the
currencies exchanged, using the inverse rate.`,
		Example: `  penny convert --from USD --to CNY --amount 100 --rate 7.3
  penny convert --from USD --to CNY --amount 100 --rate 7.3 --swap`,
		RunE: runConvert,
	}

	cmd.Flags().String("from", "", "base currency code (required)")
	cmd.Flags().String("to", "", "target currency code (required)")
	cmd.Flags().String("amount", "", "amount in the base currency (required)")
	cmd.Flags().String("rate", "", "exchange rate, target per base (required)")
	cmd.Flags().Bool("swap", false, "also show the swapped conversion")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

func runConvert(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	amountText, _ := cmd.Flags().GetString("amount")
	rateText, _ := cmd.Flags().GetString("rate")
	swap, _ := cmd.Flags().GetBool("swap")

	conv, err := currency.Convert(normalizeCurrency(from), normalizeCurrency(to), amountText, rateText)
	if err != nil {
		if fields := common.FieldErrors(err); len(fields) > 0 {
			var lines []string
			for _, fe := range fields {
				lines = append(lines, fmt.Sprintf("  %s: %v", fe.Field, fe.Unwrap()))
			}
			return common.NewUserError("Invalid conversion input:\n"+strings.Join(lines, "\n"), err)
		}
		return err
	}

	fmt.Println(cli.RenderBox("Conversion", renderConversion(conv)))

	if swap {
		_, swapped, err := currency.Swap(conv)
		if err != nil {
			return fmt.Errorf("failed to swap conversion: %w", err)
		}
		fmt.Println(cli.RenderBox("Swapped", renderConversion(swapped)))
	}
	return nil
}

func renderConversion(conv *currency.Conversion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s = %s %s\n",
		conv.BaseAmount.StringFixed(2), conv.BaseCurrency,
		conv.TargetAmount.StringFixed(2), conv.TargetCurrency,
	)
	fmt.Fprintf(&b, "Rate     %s\n", conv.Rate.StringFixed(6))
	fmt.Fprintf(&b, "Inverse  %s", conv.InverseRate.StringFixed(8))
	return b.String()
}
