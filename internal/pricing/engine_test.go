package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestComputeInstallmentAmortizesAtTabledRate(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	quote, err := engine.ComputeInstallment(2500, 24, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	factor := math.Pow(1.012, 24)
	want := math.Ceil(2500 * 0.012 * factor / (factor - 1))
	if quote.PeriodicPayment != want {
		t.Fatalf("PeriodicPayment = %v, want %v", quote.PeriodicPayment, want)
	}
	if quote.MonthlyRate != 0.012 {
		t.Fatalf("MonthlyRate = %v, want 0.012", quote.MonthlyRate)
	}
	if quote.DownPaymentAmount != 0 {
		t.Fatalf("DownPaymentAmount = %v, want 0", quote.DownPaymentAmount)
	}
}

func TestComputeInstallmentDownPaymentReducesFinancedAmount(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	full, err := engine.ComputeInstallment(3000, 12, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	half, err := engine.ComputeInstallment(3000, 12, 50)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if half.DownPaymentAmount != 1500 {
		t.Fatalf("DownPaymentAmount = %v, want 1500", half.DownPaymentAmount)
	}
	if half.PeriodicPayment >= full.PeriodicPayment {
		t.Fatalf("payment with down payment (%v) should be below payment without (%v)", half.PeriodicPayment, full.PeriodicPayment)
	}
}

func TestComputeInstallmentMonotonicity(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	var previous float64
	for _, principal := range []float64{500, 1000, 1500, 2200, 4800} {
		quote, err := engine.ComputeInstallment(principal, 18, 10)
		if err != nil {
			t.Fatalf("principal %v: expected no error, got %v", principal, err)
		}
		if quote.PeriodicPayment < previous {
			t.Fatalf("payment decreased from %v to %v as principal grew to %v", previous, quote.PeriodicPayment, principal)
		}
		previous = quote.PeriodicPayment
	}

	previous = math.Inf(1)
	for _, pct := range []float64{0, 10, 25, 50, 90} {
		quote, err := engine.ComputeInstallment(2000, 18, pct)
		if err != nil {
			t.Fatalf("pct %v: expected no error, got %v", pct, err)
		}
		if quote.PeriodicPayment > previous {
			t.Fatalf("payment increased from %v to %v as down payment grew to %v%%", previous, quote.PeriodicPayment, pct)
		}
		previous = quote.PeriodicPayment
	}
}

func TestComputeInstallmentRejectsContractViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		principal float64
		term      int
		pct       float64
		wantField string
	}{
		{
			name:      "zero term",
			principal: 1000,
			term:      0,
			pct:       0,
			wantField: "termMonths",
		},
		{
			name:      "negative term",
			principal: 1000,
			term:      -6,
			pct:       0,
			wantField: "termMonths",
		},
		{
			name:      "negative down payment",
			principal: 1000,
			term:      12,
			pct:       -1,
			wantField: "downPaymentPercent",
		},
		{
			name:      "down payment above full price",
			principal: 1000,
			term:      12,
			pct:       100.5,
			wantField: "downPaymentPercent",
		},
	}

	engine := NewEngine()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := engine.ComputeInstallment(tt.principal, tt.term, tt.pct)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.wantField {
				t.Fatalf("Field = %q, want %q", validationErr.Field, tt.wantField)
			}
		})
	}
}

func TestComputeInstallmentZeroPrincipalYieldsZeroQuote(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	quote, err := engine.ComputeInstallment(0, 24, 20)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if quote.PeriodicPayment != 0 || quote.DownPaymentAmount != 0 {
		t.Fatalf("expected zero quote, got %+v", quote)
	}
	if quote.TermMonths != 24 {
		t.Fatalf("TermMonths = %d, want 24", quote.TermMonths)
	}
}

func TestComputeInstallmentNeverNegativeOrNaN(t *testing.T) {
	t.Parallel()

	engine := NewEngine()

	for _, principal := range []float64{1, 99.99, 1249.5, 10000} {
		for _, term := range []int{1, 6, 13, 24, 48} {
			for _, pct := range []float64{0, 33.3, 100} {
				quote, err := engine.ComputeInstallment(principal, term, pct)
				if err != nil {
					t.Fatalf("unexpected error for (%v, %d, %v): %v", principal, term, pct, err)
				}
				if math.IsNaN(quote.PeriodicPayment) || quote.PeriodicPayment < 0 {
					t.Fatalf("bad payment %v for (%v, %d, %v)", quote.PeriodicPayment, principal, term, pct)
				}
			}
		}
	}
}

func TestRateForPicksLargestTermNotExceedingRequest(t *testing.T) {
	t.Parallel()

	engine := NewEngineWithRates(RateTable{6: 0.02, 12: 0.015, 24: 0.012})

	tests := []struct {
		term int
		want float64
	}{
		{term: 3, want: 0.02},
		{term: 6, want: 0.02},
		{term: 11, want: 0.02},
		{term: 12, want: 0.015},
		{term: 23, want: 0.015},
		{term: 24, want: 0.012},
		{term: 48, want: 0.012},
	}

	for _, tt := range tests {
		if got := engine.RateFor(tt.term); got != tt.want {
			t.Fatalf("RateFor(%d) = %v, want %v", tt.term, got, tt.want)
		}
	}
}
