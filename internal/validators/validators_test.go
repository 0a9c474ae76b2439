package validators

import (
	"errors"
	"math"
	"testing"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/presets"
)

func testConfig() *config.Config {
	return &config.Config{MaxPrincipal: 1e9, MaxTermYears: 50, MaxRate: 200}
}

func TestValidators(t *testing.T) {
	cfg := testConfig()
	global := ConfigBounds(cfg)
	car := PresetBounds(cfg, presets.LoanPreset(presets.LoanCar))

	tests := []struct {
		name      string
		validate  func() error
		wantError bool
	}{
		{name: "valid principal", validate: func() error { return CheckPrincipal(global, 1000000) }},
		{name: "invalid principal zero", validate: func() error { return CheckPrincipal(global, 0) }, wantError: true},
		{name: "invalid principal negative", validate: func() error { return CheckPrincipal(global, -1000) }, wantError: true},
		{name: "principal above car maximum", validate: func() error { return CheckPrincipal(car, 2_000_001) }, wantError: true},
		{name: "principal at car maximum", validate: func() error { return CheckPrincipal(car, 2_000_000) }},
		{name: "principal NaN", validate: func() error { return CheckPrincipal(global, math.NaN()) }, wantError: true},
		{name: "valid rate", validate: func() error { return CheckRate(global, 12) }},
		{name: "zero rate", validate: func() error { return CheckRate(global, 0) }},
		{name: "invalid rate negative", validate: func() error { return CheckRate(global, -1) }, wantError: true},
		{name: "rate above max", validate: func() error { return CheckRate(global, 250) }, wantError: true},
		{name: "deposit negative rate", validate: func() error { return CheckDepositRate(global, -5) }},
		{name: "deposit rate -100", validate: func() error { return CheckDepositRate(global, -100) }, wantError: true},
		{name: "valid term", validate: func() error { return CheckTermYears(global, 20) }},
		{name: "fractional term", validate: func() error { return CheckTermYears(global, 0.5) }},
		{name: "invalid term zero", validate: func() error { return CheckTermYears(global, 0) }, wantError: true},
		{name: "term above car maximum", validate: func() error { return CheckTermYears(car, 8) }, wantError: true},
		{name: "deposit zero term", validate: func() error { return CheckDepositTermYears(global, 0) }},
		{name: "deposit negative term", validate: func() error { return CheckDepositTermYears(global, -1) }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected error to wrap ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCheckLoanParameters(t *testing.T) {
	b := ConfigBounds(testConfig())

	if err := CheckLoanParameters(b, calculations.LoanParameters{Principal: 1e6, AnnualRatePercent: 8.5, TermYears: 20}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckLoanParameters(b, calculations.LoanParameters{Principal: 1e6, AnnualRatePercent: 8.5}); err == nil {
		t.Error("expected error for missing term")
	}
}

func TestCheckDepositParameters(t *testing.T) {
	b := PresetBounds(testConfig(), presets.DepositPreset(presets.DepositSavings))

	valid := calculations.DepositParameters{Principal: 100000, AnnualRatePercent: 4, TermYears: 5, Compounding: calculations.CompoundingMonthly}
	if err := CheckDepositParameters(b, valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tooLong := valid
	tooLong.TermYears = 6
	if err := CheckDepositParameters(b, tooLong); err == nil {
		t.Error("expected error for term above savings maximum")
	}

	badCompounding := valid
	badCompounding.Compounding = 7
	err := CheckDepositParameters(b, badCompounding)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, calculations.ErrUnknownCompounding) {
		t.Errorf("expected invalid compounding error, got %v", err)
	}
}
