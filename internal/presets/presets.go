package presets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
)

// ErrUnknownCategory неизвестная категория продукта
var ErrUnknownCategory = errors.New("unknown product category")

// LoanCategory тип кредита
type LoanCategory string

// DepositCategory тип вклада
type DepositCategory string

const (
	LoanHome      LoanCategory = "home"
	LoanCar       LoanCategory = "car"
	LoanPersonal  LoanCategory = "personal"
	LoanEducation LoanCategory = "education"
)

const (
	DepositFixed   DepositCategory = "fixed"
	DepositSavings DepositCategory = "savings"
	DepositSenior  DepositCategory = "senior"
	DepositTax     DepositCategory = "tax"
)

// ProductPreset ограничения и ставка по умолчанию для категории продукта
type ProductPreset struct {
	MaxPrincipal             float64 `json:"max_principal"`
	MaxTermYears             float64 `json:"max_term_years"`
	DefaultAnnualRatePercent float64 `json:"default_annual_rate_percent"`
}

var loanOrder = []LoanCategory{LoanHome, LoanCar, LoanPersonal, LoanEducation}

var depositOrder = []DepositCategory{DepositFixed, DepositSavings, DepositSenior, DepositTax}

var loanPresets = map[LoanCategory]ProductPreset{
	LoanHome:      {MaxPrincipal: 10_000_000, MaxTermYears: 30, DefaultAnnualRatePercent: 8.5},
	LoanCar:       {MaxPrincipal: 2_000_000, MaxTermYears: 7, DefaultAnnualRatePercent: 9.5},
	LoanPersonal:  {MaxPrincipal: 1_000_000, MaxTermYears: 5, DefaultAnnualRatePercent: 12},
	LoanEducation: {MaxPrincipal: 5_000_000, MaxTermYears: 15, DefaultAnnualRatePercent: 10},
}

var depositPresets = map[DepositCategory]ProductPreset{
	DepositFixed:   {MaxPrincipal: 10_000_000, MaxTermYears: 10, DefaultAnnualRatePercent: 6.5},
	DepositSavings: {MaxPrincipal: 5_000_000, MaxTermYears: 5, DefaultAnnualRatePercent: 4.0},
	DepositSenior:  {MaxPrincipal: 15_000_000, MaxTermYears: 10, DefaultAnnualRatePercent: 7.5},
	DepositTax:     {MaxPrincipal: 1_500_000, MaxTermYears: 5, DefaultAnnualRatePercent: 6.0},
}

// LoanCategories возвращает все типы кредитов в порядке отображения
func LoanCategories() []LoanCategory {
	return append([]LoanCategory(nil), loanOrder...)
}

// DepositCategories возвращает все типы вкладов в порядке отображения
func DepositCategories() []DepositCategory {
	return append([]DepositCategory(nil), depositOrder...)
}

// ParseLoanCategory разбирает тип кредита из внешнего ввода
func ParseLoanCategory(s string) (LoanCategory, error) {
	c := LoanCategory(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := loanPresets[c]; !ok {
		return "", fmt.Errorf("%w: loan category %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// ParseDepositCategory разбирает тип вклада из внешнего ввода
func ParseDepositCategory(s string) (DepositCategory, error) {
	c := DepositCategory(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := depositPresets[c]; !ok {
		return "", fmt.Errorf("%w: deposit category %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// LoanPreset возвращает пресет для типа кредита.
// Паникует на значении, не полученном через ParseLoanCategory или константы.
func LoanPreset(c LoanCategory) ProductPreset {
	p, ok := loanPresets[c]
	if !ok {
		panic(fmt.Sprintf("presets: unknown loan category %q", string(c)))
	}
	return p
}

// DepositPreset возвращает пресет для типа вклада.
// Паникует на значении, не полученном через ParseDepositCategory или константы.
func DepositPreset(c DepositCategory) ProductPreset {
	p, ok := depositPresets[c]
	if !ok {
		panic(fmt.Sprintf("presets: unknown deposit category %q", string(c)))
	}
	return p
}

// ApplyLoanCategory применяет пресет при смене типа кредита: ставка всегда
// сбрасывается на ставку по умолчанию, сумма и срок только уменьшаются до максимума.
func ApplyLoanCategory(c LoanCategory, current calculations.LoanParameters) calculations.LoanParameters {
	preset := LoanPreset(c)
	return calculations.LoanParameters{
		Principal:         clampDown(current.Principal, preset.MaxPrincipal),
		AnnualRatePercent: preset.DefaultAnnualRatePercent,
		TermYears:         clampDown(current.TermYears, preset.MaxTermYears),
	}
}

// ApplyDepositCategory то же для вкладов; периодичность капитализации не меняется
func ApplyDepositCategory(c DepositCategory, current calculations.DepositParameters) calculations.DepositParameters {
	preset := DepositPreset(c)
	return calculations.DepositParameters{
		Principal:         clampDown(current.Principal, preset.MaxPrincipal),
		AnnualRatePercent: preset.DefaultAnnualRatePercent,
		TermYears:         clampDown(current.TermYears, preset.MaxTermYears),
		Compounding:       current.Compounding,
	}
}

func clampDown(value, max float64) float64 {
	if value > max {
		return max
	}
	return value
}
