package validators

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/presets"
	"github.com/cloud-ru/fincalc-go/pkg/utils"
)

// ErrInvalidInput базовая ошибка валидации входных параметров
var ErrInvalidInput = errors.New("invalid input")

// Bounds верхние границы параметров расчёта
type Bounds struct {
	MaxPrincipal float64
	MaxTermYears float64
	MaxRate      float64
}

// ConfigBounds границы из конфигурации сервера (если тип продукта не указан)
func ConfigBounds(cfg *config.Config) Bounds {
	return Bounds{
		MaxPrincipal: cfg.MaxPrincipal,
		MaxTermYears: cfg.MaxTermYears,
		MaxRate:      cfg.MaxRate,
	}
}

// PresetBounds границы из пресета категории; максимальная ставка берётся из конфигурации
func PresetBounds(cfg *config.Config, p presets.ProductPreset) Bounds {
	return Bounds{
		MaxPrincipal: p.MaxPrincipal,
		MaxTermYears: p.MaxTermYears,
		MaxRate:      cfg.MaxRate,
	}
}

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%w: %s: значение не является конечным числом", ErrInvalidInput, name)
	}
	if value < minInclusive {
		return fmt.Errorf("%w: %s: значение должно быть ≥ %g", ErrInvalidInput, name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%w: %s: значение слишком велико (>%g)", ErrInvalidInput, name, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита или вклада
func CheckPrincipal(b Bounds, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 1e-9, b.MaxPrincipal)
}

// CheckRate проверяет процентную ставку по кредиту
func CheckRate(b Bounds, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, b.MaxRate)
}

// CheckDepositRate проверяет ставку по вкладу; отрицательная допустима, но не ниже -100%
func CheckDepositRate(b Bounds, rate float64) error {
	if err := ValidatePositiveNumber("annual_rate_percent", rate, -100, b.MaxRate); err != nil {
		return err
	}
	if rate <= -100 {
		return fmt.Errorf("%w: annual_rate_percent: значение должно быть > -100", ErrInvalidInput)
	}
	return nil
}

// CheckTermYears проверяет срок кредита в годах
func CheckTermYears(b Bounds, termYears float64) error {
	return ValidatePositiveNumber("term_years", termYears, 1e-9, b.MaxTermYears)
}

// CheckDepositTermYears проверяет срок вклада; нулевой срок допустим
func CheckDepositTermYears(b Bounds, termYears float64) error {
	return ValidatePositiveNumber("term_years", termYears, 0.0, b.MaxTermYears)
}

// CheckLoanParameters проверяет все параметры кредита
func CheckLoanParameters(b Bounds, p calculations.LoanParameters) error {
	if err := CheckPrincipal(b, p.Principal); err != nil {
		return err
	}
	if err := CheckRate(b, p.AnnualRatePercent); err != nil {
		return err
	}
	return CheckTermYears(b, p.TermYears)
}

// CheckDepositParameters проверяет все параметры вклада
func CheckDepositParameters(b Bounds, p calculations.DepositParameters) error {
	if err := CheckPrincipal(b, p.Principal); err != nil {
		return err
	}
	if err := CheckDepositRate(b, p.AnnualRatePercent); err != nil {
		return err
	}
	if err := CheckDepositTermYears(b, p.TermYears); err != nil {
		return err
	}
	if p.Compounding != 0 && !p.Compounding.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, calculations.ErrUnknownCompounding)
	}
	return nil
}
