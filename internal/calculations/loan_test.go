package calculations

import (
	"math"
	"testing"

	"github.com/cloud-ru/fincalc-go/pkg/utils"
)

func TestComputeLoan(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		termYears         float64
		wantComputed      bool
		check             func(*testing.T, LoanResult)
	}{
		{
			name:              "home loan 20 years",
			principal:         1000000,
			annualRatePercent: 8.5,
			termYears:         20,
			wantComputed:      true,
			check: func(t *testing.T, result LoanResult) {
				if math.Abs(result.Installment-8678.23) > 0.01 {
					t.Errorf("expected installment ~8678.23, got %f", result.Installment)
				}
				if math.Abs(result.TotalPayment-2082775.76) > 0.01 {
					t.Errorf("expected total payment ~2082775.76, got %f", result.TotalPayment)
				}
				if math.Abs(result.TotalInterest-1082775.76) > 0.01 {
					t.Errorf("expected total interest ~1082775.76, got %f", result.TotalInterest)
				}
				if result.Periods != 240 {
					t.Errorf("expected 240 periods, got %f", result.Periods)
				}
			},
		},
		{
			name:              "zero rate is straight line",
			principal:         100000,
			annualRatePercent: 0,
			termYears:         10.0 / 12.0,
			wantComputed:      true,
			check: func(t *testing.T, result LoanResult) {
				if math.Abs(result.Installment-10000) > 1e-9 {
					t.Errorf("expected installment 10000, got %f", result.Installment)
				}
				if math.Abs(result.TotalInterest) > 1e-9 {
					t.Errorf("expected total interest 0, got %f", result.TotalInterest)
				}
			},
		},
		{
			name:              "fractional term",
			principal:         500000,
			annualRatePercent: 12,
			termYears:         2.5,
			wantComputed:      true,
			check: func(t *testing.T, result LoanResult) {
				if result.Periods != 30 {
					t.Errorf("expected 30 periods, got %f", result.Periods)
				}
				if result.TotalPayment <= 500000 {
					t.Error("total payment should exceed principal")
				}
			},
		},
		{name: "zero principal", principal: 0, annualRatePercent: 8.5, termYears: 20},
		{name: "negative principal", principal: -1000, annualRatePercent: 8.5, termYears: 20},
		{name: "zero term", principal: 1000000, annualRatePercent: 8.5, termYears: 0},
		{name: "negative rate", principal: 1000000, annualRatePercent: -1, termYears: 20},
		{name: "NaN principal", principal: math.NaN(), annualRatePercent: 8.5, termYears: 20},
		{name: "infinite rate", principal: 1000000, annualRatePercent: math.Inf(1), termYears: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeLoan(tt.principal, tt.annualRatePercent, tt.termYears)
			if result.Computed != tt.wantComputed {
				t.Fatalf("ComputeLoan() computed = %v, want %v", result.Computed, tt.wantComputed)
			}
			if !tt.wantComputed {
				if result != (LoanResult{}) {
					t.Errorf("expected zero result, got %+v", result)
				}
				return
			}
			if !utils.AllFinite(result.Installment, result.TotalPayment, result.TotalInterest) {
				t.Errorf("expected finite result, got %+v", result)
			}
			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestComputeLoanInvariants(t *testing.T) {
	principals := []float64{1000, 250000, 1000000, 10000000}
	rates := []float64{0, 0.5, 6.5, 8.5, 12, 24}
	terms := []float64{0.5, 1, 5, 7.25, 20, 30}

	for _, p := range principals {
		for _, r := range rates {
			for _, term := range terms {
				result := ComputeLoan(p, r, term)
				if !result.Computed {
					t.Fatalf("ComputeLoan(%v, %v, %v) not computed", p, r, term)
				}

				n := term * 12
				if !utils.AlmostEqual(result.TotalPayment, result.Installment*n, 1e-9) {
					t.Errorf("ComputeLoan(%v, %v, %v): total payment %v != installment*n %v",
						p, r, term, result.TotalPayment, result.Installment*n)
				}
				if !utils.AlmostEqual(result.TotalInterest, result.TotalPayment-p, 1e-9) {
					t.Errorf("ComputeLoan(%v, %v, %v): total interest %v != total payment - principal %v",
						p, r, term, result.TotalInterest, result.TotalPayment-p)
				}
				if r == 0 && !utils.AlmostEqual(result.Installment, p/n, 1e-9) {
					t.Errorf("ComputeLoan(%v, 0, %v): installment %v != %v", p, term, result.Installment, p/n)
				}
				if r > 0 && result.TotalInterest <= 0 {
					t.Errorf("ComputeLoan(%v, %v, %v): expected positive interest", p, r, term)
				}
			}
		}
	}
}

func TestComputeLoanTinyRate(t *testing.T) {
	tests := []struct {
		name              string
		annualRatePercent float64
		termYears         float64
	}{
		{name: "1e-15 one year", annualRatePercent: 1e-15, termYears: 1},
		{name: "1e-12 one year", annualRatePercent: 1e-12, termYears: 1},
		{name: "1e-9 one year", annualRatePercent: 1e-9, termYears: 1},
		{name: "1e-6 one year", annualRatePercent: 1e-6, termYears: 1},
		{name: "1e-12 twenty years", annualRatePercent: 1e-12, termYears: 20},
		{name: "1e-6 twenty years", annualRatePercent: 1e-6, termYears: 20},
	}

	const principal = 1000000.0

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeLoan(principal, tt.annualRatePercent, tt.termYears)
			if !result.Computed {
				t.Fatal("expected tiny rate to be computed")
			}
			if result.TotalInterest < 0 {
				t.Errorf("positive rate gave negative total interest %g", result.TotalInterest)
			}

			n := tt.termYears * PeriodsPerYear
			r := tt.annualRatePercent / 100 / PeriodsPerYear
			// первый член ряда: EMI ~ P/n * (1 + (n+1)r/2)
			want := principal / n * (1 + (n+1)*r/2)
			if math.Abs(result.Installment-want) > want*1e-9 {
				t.Errorf("expected installment %.6f, got %.6f", want, result.Installment)
			}
		})
	}
}

func TestLoanParametersCompute(t *testing.T) {
	p := LoanParameters{Principal: 1000000, AnnualRatePercent: 8.5, TermYears: 20}
	if p.Compute() != ComputeLoan(1000000, 8.5, 20) {
		t.Error("LoanParameters.Compute should match ComputeLoan")
	}
}
