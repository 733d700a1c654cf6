// Package mortgage computes monthly payment schedules for home loans.
package mortgage

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/common"
)

// Type selects the amortization method.
type Type string

const (
	// EqualInstallment keeps the total monthly payment constant over the term.
	EqualInstallment Type = "equal-installment"
	// EqualPrincipal repays a fixed principal portion each month, so payments
	// start high and decline by a constant amount.
	EqualPrincipal Type = "equal-principal"
)

// Input holds the loan parameters for a schedule calculation.
type Input struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermYears         int
	Type              Type
}

// Schedule summarizes an amortization schedule. MonthlyPayment is the
// constant installment for EqualInstallment; for EqualPrincipal it is the
// mean payment over the term, with FirstPayment, LastPayment and
// MonthlyDecrease carrying the per-month detail. Those three fields are nil
// for EqualInstallment, where every month is identical.
type Schedule struct {
	MonthlyPayment  decimal.Decimal
	TotalInterest   decimal.Decimal
	TotalPayment    decimal.Decimal
	FirstPayment    *decimal.Decimal
	LastPayment     *decimal.Decimal
	MonthlyDecrease *decimal.Decimal
}

var (
	errNotPositive = errors.New("must be greater than zero")
	errRateRange   = errors.New("must be between 0 and 100 exclusive")
)

var hundred = decimal.NewFromInt(100)

// Validate checks the loan parameters. Every out-of-range field yields its
// own error, combined with errors.Join, so callers can surface all invalid
// fields at once.
func (in Input) Validate() error {
	var errs []error
	if !in.Principal.IsPositive() {
		errs = append(errs, common.NewFieldError("principal", errNotPositive))
	}
	if !in.AnnualRatePercent.IsPositive() || in.AnnualRatePercent.GreaterThanOrEqual(hundred) {
		errs = append(errs, common.NewFieldError("rate", errRateRange))
	}
	if in.TermYears <= 0 {
		errs = append(errs, common.NewFieldError("term", errNotPositive))
	}
	return errors.Join(errs...)
}

// Calculate computes the amortization schedule for the given loan. All
// intermediate arithmetic is exact decimal; monetary outputs are rounded
// half-up to 2 decimal places once, at the end.
func Calculate(in Input) (*Schedule, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	months := int64(in.TermYears) * 12
	n := decimal.NewFromInt(months)
	// Monthly rate = annual percentage / 100 / 12.
	r := in.AnnualRatePercent.Div(hundred).Div(decimal.NewFromInt(12))

	switch in.Type {
	case EqualPrincipal:
		return equalPrincipal(in.Principal, r, n), nil
	default:
		return equalInstallment(in.Principal, r, n), nil
	}
}

// equalInstallment computes the constant-payment schedule:
// payment = P*r*(1+r)^n / ((1+r)^n - 1).
func equalInstallment(principal, r, n decimal.Decimal) *Schedule {
	compound := decimal.NewFromInt(1).Add(r).Pow(n)
	payment := principal.Mul(r).Mul(compound).Div(compound.Sub(decimal.NewFromInt(1)))

	// Totals derive from the unrounded payment so the rounded outputs agree
	// with each other to the cent.
	totalPayment := payment.Mul(n)
	totalInterest := totalPayment.Sub(principal)

	return &Schedule{
		MonthlyPayment: payment.Round(2),
		TotalInterest:  totalInterest.Round(2),
		TotalPayment:   totalPayment.Round(2),
	}
}

// equalPrincipal computes the declining-payment schedule. The principal
// portion P/n is fixed; month k adds interest on the outstanding balance.
// Total interest has the closed form r*P*(n+1)/2.
func equalPrincipal(principal, r, n decimal.Decimal) *Schedule {
	one := decimal.NewFromInt(1)
	monthlyPrincipal := principal.Div(n)

	totalInterest := r.Mul(principal).Mul(n.Add(one)).Div(decimal.NewFromInt(2))
	totalPayment := principal.Add(totalInterest)

	first := monthlyPrincipal.Add(principal.Mul(r)).Round(2)
	last := monthlyPrincipal.Mul(one.Add(r)).Round(2)
	decrease := monthlyPrincipal.Mul(r).Round(2)

	return &Schedule{
		// Payments decline month over month; report the mean as the
		// representative figure and carry first/last/decrease alongside.
		MonthlyPayment:  totalPayment.Div(n).Round(2),
		TotalInterest:   totalInterest.Round(2),
		TotalPayment:    totalPayment.Round(2),
		FirstPayment:    &first,
		LastPayment:     &last,
		MonthlyDecrease: &decrease,
	}
}

// MonthlyInterest returns the interest portion of month k (1-based) under
// the equal-principal method, unrounded. Exposed for schedule breakdowns.
func MonthlyInterest(principal, r, n decimal.Decimal, k int64) decimal.Decimal {
	one := decimal.NewFromInt(1)
	remainingRatio := one.Sub(decimal.NewFromInt(k - 1).Div(n))
	return principal.Mul(remainingRatio).Mul(r)
}
