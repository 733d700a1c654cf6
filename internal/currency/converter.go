// Package currency converts amounts between currencies at a user-supplied
// exchange rate, with fixed decimal-precision rules and an invertible rate.
package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/common"
)

// Sentinel validation errors. Both can be present on a single Convert call,
// combined with errors.Join, so the caller can render two field errors.
var (
	ErrInvalidAmount = errors.New("amount must be a positive decimal")
	ErrInvalidRate   = errors.New("rate must be a positive decimal")
)

// Conversion is the result of a currency conversion. Amounts carry 2 decimal
// places, the rate 6, and the inverse rate 8. The inverse is computed from
// the unrounded input rate, not by inverting the 6-decimal rate, so a swap
// round-trip does not compound rounding error.
type Conversion struct {
	BaseCurrency   string
	TargetCurrency string
	BaseAmount     decimal.Decimal
	TargetAmount   decimal.Decimal
	Rate           decimal.Decimal
	InverseRate    decimal.Decimal

	// rate as parsed, kept unrounded for swap precision
	rawRate decimal.Decimal
}

// SwapInput is the input set produced by swapping a conversion's currencies:
// the previous target amount becomes the amount text and the inverse rate
// (at full precision) becomes the rate text.
type SwapInput struct {
	BaseCurrency   string
	TargetCurrency string
	AmountText     string
	RateText       string
}

// Convert converts amountText from the base to the target currency at
// rateText (target units per base unit). Amount and rate are validated
// independently; if both are invalid the returned error carries both field
// errors.
func Convert(baseCurrency, targetCurrency, amountText, rateText string) (*Conversion, error) {
	amount, amountErr := parsePositive(amountText, "amount", ErrInvalidAmount)
	rate, rateErr := parsePositive(rateText, "rate", ErrInvalidRate)
	if err := errors.Join(amountErr, rateErr); err != nil {
		return nil, err
	}

	return &Conversion{
		BaseCurrency:   baseCurrency,
		TargetCurrency: targetCurrency,
		BaseAmount:     amount.Round(2),
		TargetAmount:   amount.Mul(rate).Round(2),
		Rate:           rate.Round(6),
		InverseRate:    decimal.NewFromInt(1).DivRound(rate, 8),
		rawRate:        rate,
	}, nil
}

// Swap exchanges base and target currency and re-runs the conversion: the
// new amount input is the previous target amount as a plain decimal string,
// the new rate input is the inverse rate at up to 11 decimal places.
func Swap(prev *Conversion) (SwapInput, *Conversion, error) {
	in := SwapInput{
		BaseCurrency:   prev.TargetCurrency,
		TargetCurrency: prev.BaseCurrency,
		AmountText:     PlainString(prev.TargetAmount),
		RateText:       PlainString(decimal.NewFromInt(1).DivRound(prev.rawRate, 11)),
	}

	conv, err := Convert(in.BaseCurrency, in.TargetCurrency, in.AmountText, in.RateText)
	return in, conv, err
}

// parsePositive parses text as a strictly positive decimal, tagging failures
// with the given field name.
func parsePositive(text, field string, sentinel error) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, common.NewFieldError(field, sentinel)
	}
	return d, nil
}

// PlainString renders a decimal without trailing fractional zeros
// ("730.00" -> "730", "0.13698630137000" -> "0.13698630137").
func PlainString(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
