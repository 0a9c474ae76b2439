package tools

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/presets"
	"github.com/cloud-ru/fincalc-go/internal/validators"
	"github.com/cloud-ru/fincalc-go/pkg/utils"
)

// ToolDepositCalculate имя инструмента расчёта вклада
const ToolDepositCalculate = "deposit_calculate"

// DepositCalculation ответ расчёта вклада
type DepositCalculation struct {
	Category       string                         `json:"category,omitempty"`
	Parameters     calculations.DepositParameters `json:"parameters"`
	MaturityAmount float64                        `json:"maturity_amount"`
	InterestEarned float64                        `json:"interest_earned"`
	Display        DepositDisplay                 `json:"display"`

	Result calculations.DepositResult `json:"-"`
}

// DepositDisplay суммы вклада в формате INR
type DepositDisplay struct {
	Principal      string `json:"principal"`
	MaturityAmount string `json:"maturity_amount"`
	InterestEarned string `json:"interest_earned"`
}

// NewDepositCalculation формирует ответ из параметров и результата движка
func NewDepositCalculation(category string, p calculations.DepositParameters, r calculations.DepositResult) *DepositCalculation {
	return &DepositCalculation{
		Category:       category,
		Parameters:     p,
		MaturityAmount: utils.Round2(r.MaturityAmount),
		InterestEarned: utils.Round2(r.InterestEarned),
		Display: DepositDisplay{
			Principal:      utils.FormatINR(p.Principal),
			MaturityAmount: utils.FormatINR(r.MaturityAmount),
			InterestEarned: utils.FormatINR(r.InterestEarned),
		},
		Result: r,
	}
}

// compoundingParam разбирает необязательный параметр compounding
func compoundingParam(params map[string]interface{}) (calculations.Compounding, error) {
	name, err := optionalStringParam(params, "compounding")
	if err != nil {
		return 0, err
	}
	c, err := calculations.ParseCompounding(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", validators.ErrInvalidInput, err)
	}
	return c, nil
}

// CalculateDeposit рассчитывает вклад. Без compounding проценты капитализируются ежегодно.
func CalculateDeposit(ctx context.Context, cfg *config.Config, tracer trace.Tracer, params map[string]interface{}) (*DepositCalculation, error) {
	_, call := startCall(ctx, tracer, ToolDepositCalculate)
	defer call.end()

	principal, err := numberParam(params, "principal")
	if err != nil {
		return nil, call.invalid(err)
	}
	annualRatePercent, err := numberParam(params, "annual_rate_percent")
	if err != nil {
		return nil, call.invalid(err)
	}
	termYears, err := numberParam(params, "term_years")
	if err != nil {
		return nil, call.invalid(err)
	}
	compounding, err := compoundingParam(params)
	if err != nil {
		return nil, call.invalid(err)
	}
	categoryName, err := optionalStringParam(params, "category")
	if err != nil {
		return nil, call.invalid(err)
	}

	call.span.SetAttributes(
		attribute.Float64("principal", principal),
		attribute.Float64("annual_rate_percent", annualRatePercent),
		attribute.Float64("term_years", termYears),
		attribute.String("compounding", compounding.String()),
		attribute.String("category", categoryName),
	)

	bounds := validators.ConfigBounds(cfg)
	var category string
	if categoryName != "" {
		c, err := presets.ParseDepositCategory(categoryName)
		if err != nil {
			return nil, call.invalid(err)
		}
		bounds = validators.PresetBounds(cfg, presets.DepositPreset(c))
		category = string(c)
	}

	p := calculations.DepositParameters{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
		Compounding:       compounding,
	}
	if err := validators.CheckDepositParameters(bounds, p); err != nil {
		return nil, call.invalid(err)
	}

	result := p.Compute()
	if !result.Computed {
		return nil, call.failed(calculations.ErrNotComputed)
	}

	call.succeeded(attribute.Float64("maturity_amount", result.MaturityAmount))

	return NewDepositCalculation(category, p, result), nil
}

// DepositCalculateHandler обрабатывает запрос на расчет вклада
func DepositCalculateHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return CalculateDeposit(ctx, cfg, tracer, params)
	}
}
