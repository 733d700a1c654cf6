package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finchley/penny/internal/cli"
	"github.com/finchley/penny/internal/common"
	"github.com/finchley/penny/internal/mortgage"
)

func mortgageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Calculate a mortgage amortization summary",
		Long: `Calculate monthly payments and totals for a loan. Two repayment types
are supported: equal-installment (the same payment every month) and
equal-principal (a fixed principal share, so payments start high and
shrink every month).`,
		Example: `  penny mortgage --principal 500000 --rate 4.1 --years 30
  penny mortgage --principal 500000 --rate 4.1 --years 30 --type equal-principal`,
		RunE: runMortgage,
	}

	cmd.Flags().String("principal", "", "loan principal (required)")
	cmd.Flags().String("rate", "", "annual interest rate in percent (required)")
	cmd.Flags().Int("years", 0, "loan term in years (required)")
	cmd.Flags().String("type", string(mortgage.EqualInstallment), "repayment type (equal-installment or equal-principal)")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("years")

	return cmd
}

func runMortgage(cmd *cobra.Command, _ []string) error {
	principalText, _ := cmd.Flags().GetString("principal")
	rateText, _ := cmd.Flags().GetString("rate")
	years, _ := cmd.Flags().GetInt("years")
	typeText, _ := cmd.Flags().GetString("type")

	principal, err := decimal.NewFromString(principalText)
	if err != nil {
		return common.NewUserError(
			fmt.Sprintf("Invalid principal %q: expected a decimal number.", principalText),
			fmt.Errorf("%w: %v", common.ErrInvalidInput, err),
		)
	}
	rate, err := decimal.NewFromString(rateText)
	if err != nil {
		return common.NewUserError(
			fmt.Sprintf("Invalid rate %q: expected a decimal number.", rateText),
			fmt.Errorf("%w: %v", common.ErrInvalidInput, err),
		)
	}

	in := mortgage.Input{
		Principal:         principal,
		AnnualRatePercent: rate,
		TermYears:         years,
		Type:              mortgage.Type(typeText),
	}

	schedule, err := mortgage.Calculate(in)
	if err != nil {
		if fields := common.FieldErrors(err); len(fields) > 0 {
			var lines []string
			for _, fe := range fields {
				lines = append(lines, fmt.Sprintf("  %s: %v", fe.Field, fe.Unwrap()))
			}
			return common.NewUserError("Invalid loan parameters:\n"+strings.Join(lines, "\n"), err)
		}
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Monthly payment  %s\n", schedule.MonthlyPayment.StringFixed(2))
	if schedule.FirstPayment != nil {
		fmt.Fprintf(&b, "First payment    %s\n", schedule.FirstPayment.StringFixed(2))
		fmt.Fprintf(&b, "Last payment     %s\n", schedule.LastPayment.StringFixed(2))
		fmt.Fprintf(&b, "Monthly decrease %s\n", schedule.MonthlyDecrease.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total interest   %s\n", schedule.TotalInterest.StringFixed(2))
	fmt.Fprintf(&b, "Total payment    %s", schedule.TotalPayment.StringFixed(2))

	fmt.Println(cli.RenderBox(fmt.Sprintf("Mortgage (%s)", typeText), b.String()))
	return nil
}
