package mortgage

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/common"
)

func input(principal string, rate string, years int, typ Type) Input {
	return Input{
		Principal:         decimal.RequireFromString(principal),
		AnnualRatePercent: decimal.RequireFromString(rate),
		TermYears:         years,
		Type:              typ,
	}
}

func TestCalculate_EqualInstallment(t *testing.T) {
	sched, err := Calculate(input("500000", "4.1", 30, EqualInstallment))
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	tests := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"monthly payment", sched.MonthlyPayment, "2415.99"},
		{"total interest", sched.TotalInterest, "369757.07"},
		{"total payment", sched.TotalPayment, "869757.07"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
		}
	}

	if sched.FirstPayment != nil || sched.LastPayment != nil || sched.MonthlyDecrease != nil {
		t.Error("equal-installment schedule must not carry per-month breakdown fields")
	}
}

func TestCalculate_EqualPrincipal(t *testing.T) {
	sched, err := Calculate(input("500000", "4.1", 30, EqualPrincipal))
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	tests := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"monthly payment", sched.MonthlyPayment, "2245.43"},
		{"total interest", sched.TotalInterest, "308354.17"},
		{"total payment", sched.TotalPayment, "808354.17"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
		}
	}

	if sched.FirstPayment == nil || sched.LastPayment == nil || sched.MonthlyDecrease == nil {
		t.Fatal("equal-principal schedule must carry per-month breakdown fields")
	}
	if got := sched.FirstPayment.String(); got != "3097.22" {
		t.Errorf("first payment = %s, want 3097.22", got)
	}
	if got := sched.LastPayment.String(); got != "1393.63" {
		t.Errorf("last payment = %s, want 1393.63", got)
	}
	if got := sched.MonthlyDecrease.String(); got != "4.75" {
		t.Errorf("monthly decrease = %s, want 4.75", got)
	}
}

// The closed-form total interest must agree with the month-by-month sum
// after rounding to the cent.
func TestCalculate_EqualPrincipalInterestMatchesSummation(t *testing.T) {
	principal := decimal.RequireFromString("500000")
	r := decimal.RequireFromString("4.1").Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	n := decimal.NewFromInt(360)

	sum := decimal.Zero
	for k := int64(1); k <= 360; k++ {
		sum = sum.Add(MonthlyInterest(principal, r, n, k))
	}

	sched, err := Calculate(input("500000", "4.1", 30, EqualPrincipal))
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if got, want := sched.TotalInterest.String(), sum.Round(2).String(); got != want {
		t.Errorf("closed-form total interest = %s, summation = %s", got, want)
	}
}

func TestCalculate_InvalidInputs(t *testing.T) {
	_, err := Calculate(input("-10", "120", 0, EqualInstallment))
	if err == nil {
		t.Fatal("Calculate() with invalid inputs should fail")
	}

	fields := common.FieldErrors(err)
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(fields), err)
	}
	for _, field := range []string{"principal", "rate", "term"} {
		if !common.HasField(err, field) {
			t.Errorf("missing field error for %q", field)
		}
	}
}

func TestValidate_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		wantField string
		wantOK    bool
	}{
		{"valid", input("100000", "3.5", 20, EqualInstallment), "", true},
		{"zero principal", input("0", "3.5", 20, EqualInstallment), "principal", false},
		{"zero rate", input("100000", "0", 20, EqualInstallment), "rate", false},
		{"rate at 100", input("100000", "100", 20, EqualInstallment), "rate", false},
		{"zero term", input("100000", "3.5", 0, EqualInstallment), "term", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantOK {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !common.HasField(err, tt.wantField) {
				t.Errorf("missing field error for %q in %v", tt.wantField, err)
			}
		})
	}
}
