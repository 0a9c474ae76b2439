package tools

import (
	"context"
	"fmt"
	"math"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/history"
	"github.com/cloud-ru/fincalc-go/internal/presets"
	"github.com/cloud-ru/fincalc-go/internal/validators"
)

const (
	ToolApplyLoanCategory    = "apply_loan_category"
	ToolApplyDepositCategory = "apply_deposit_category"
	ToolGetPreset            = "get_preset"
)

// CategoryPreset пресет вместе с именем категории
type CategoryPreset struct {
	Category string                `json:"category"`
	Preset   presets.ProductPreset `json:"preset"`
}

// AppliedLoanCategory параметры кредита после смены категории
type AppliedLoanCategory struct {
	CategoryPreset
	Parameters calculations.LoanParameters `json:"parameters"`
}

// AppliedDepositCategory параметры вклада после смены категории
type AppliedDepositCategory struct {
	CategoryPreset
	Parameters calculations.DepositParameters `json:"parameters"`
}

// currentAmount читает текущее значение поля формы: конечное и неотрицательное
func currentAmount(params map[string]interface{}, name string) (float64, error) {
	v, err := numberParam(params, name)
	if err != nil {
		return 0, err
	}
	if err := validators.ValidatePositiveNumber(name, v, 0, math.MaxFloat64); err != nil {
		return 0, err
	}
	return v, nil
}

// LoanCategoryPresets все пресеты кредитов в порядке категорий
func LoanCategoryPresets() []CategoryPreset {
	out := make([]CategoryPreset, 0, 4)
	for _, c := range presets.LoanCategories() {
		out = append(out, CategoryPreset{Category: string(c), Preset: presets.LoanPreset(c)})
	}
	return out
}

// DepositCategoryPresets все пресеты вкладов в порядке категорий
func DepositCategoryPresets() []CategoryPreset {
	out := make([]CategoryPreset, 0, 4)
	for _, c := range presets.DepositCategories() {
		out = append(out, CategoryPreset{Category: string(c), Preset: presets.DepositPreset(c)})
	}
	return out
}

// ApplyLoanCategoryHandler меняет тип кредита: ставка сбрасывается на ставку
// категории, сумма и срок уменьшаются до максимумов категории
func ApplyLoanCategoryHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := startCall(ctx, tracer, ToolApplyLoanCategory)
		defer call.end()

		name, err := stringParam(params, "category")
		if err != nil {
			return nil, call.invalid(err)
		}
		category, err := presets.ParseLoanCategory(name)
		if err != nil {
			return nil, call.invalid(err)
		}
		principal, err := currentAmount(params, "principal")
		if err != nil {
			return nil, call.invalid(err)
		}
		termYears, err := currentAmount(params, "term_years")
		if err != nil {
			return nil, call.invalid(err)
		}
		rate, err := optionalNumberParam(params, "annual_rate_percent", 0)
		if err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(attribute.String("category", string(category)))

		applied := presets.ApplyLoanCategory(category, calculations.LoanParameters{
			Principal:         principal,
			AnnualRatePercent: rate,
			TermYears:         termYears,
		})

		call.succeeded()

		return &AppliedLoanCategory{
			CategoryPreset: CategoryPreset{Category: string(category), Preset: presets.LoanPreset(category)},
			Parameters:     applied,
		}, nil
	}
}

// ApplyDepositCategoryHandler меняет тип вклада по тем же правилам
func ApplyDepositCategoryHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := startCall(ctx, tracer, ToolApplyDepositCategory)
		defer call.end()

		name, err := stringParam(params, "category")
		if err != nil {
			return nil, call.invalid(err)
		}
		category, err := presets.ParseDepositCategory(name)
		if err != nil {
			return nil, call.invalid(err)
		}
		principal, err := currentAmount(params, "principal")
		if err != nil {
			return nil, call.invalid(err)
		}
		termYears, err := currentAmount(params, "term_years")
		if err != nil {
			return nil, call.invalid(err)
		}
		rate, err := optionalNumberParam(params, "annual_rate_percent", 0)
		if err != nil {
			return nil, call.invalid(err)
		}
		compounding, err := compoundingParam(params)
		if err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(attribute.String("category", string(category)))

		applied := presets.ApplyDepositCategory(category, calculations.DepositParameters{
			Principal:         principal,
			AnnualRatePercent: rate,
			TermYears:         termYears,
			Compounding:       compounding,
		})

		call.succeeded()

		return &AppliedDepositCategory{
			CategoryPreset: CategoryPreset{Category: string(category), Preset: presets.DepositPreset(category)},
			Parameters:     applied,
		}, nil
	}
}

// GetPresetHandler возвращает пресет категории или все пресеты семейства
func GetPresetHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := startCall(ctx, tracer, ToolGetPreset)
		defer call.end()

		familyName, err := stringParam(params, "family")
		if err != nil {
			return nil, call.invalid(err)
		}
		family, err := history.ParseFamily(familyName)
		if err != nil {
			return nil, call.invalid(fmt.Errorf("%w: %w", validators.ErrInvalidInput, err))
		}
		name, err := optionalStringParam(params, "category")
		if err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.String("family", string(family)),
			attribute.String("category", name),
		)

		var result interface{}
		switch {
		case family == history.FamilyLoan && name == "":
			result = LoanCategoryPresets()
		case family == history.FamilyDeposit && name == "":
			result = DepositCategoryPresets()
		case family == history.FamilyLoan:
			c, err := presets.ParseLoanCategory(name)
			if err != nil {
				return nil, call.invalid(err)
			}
			result = &CategoryPreset{Category: string(c), Preset: presets.LoanPreset(c)}
		default:
			c, err := presets.ParseDepositCategory(name)
			if err != nil {
				return nil, call.invalid(err)
			}
			result = &CategoryPreset{Category: string(c), Preset: presets.DepositPreset(c)}
		}

		call.succeeded()
		return result, nil
	}
}
