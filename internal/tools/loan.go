package tools

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/presets"
	"github.com/cloud-ru/fincalc-go/internal/validators"
	"github.com/cloud-ru/fincalc-go/pkg/utils"
)

// ToolLoanCalculate имя инструмента расчёта кредита
const ToolLoanCalculate = "loan_calculate"

// LoanCalculation ответ расчёта кредита. Денежные поля округлены до копеек,
// Display содержит суммы в рупиях для показа пользователю.
type LoanCalculation struct {
	Category       string                      `json:"category,omitempty"`
	Parameters     calculations.LoanParameters `json:"parameters"`
	MonthlyPayment float64                     `json:"monthly_payment"`
	TotalInterest  float64                     `json:"total_interest"`
	TotalPayment   float64                     `json:"total_payment"`
	Months         float64                     `json:"months"`
	Display        LoanDisplay                 `json:"display"`

	// Result неокруглённый результат движка (сохраняется в историю)
	Result calculations.LoanResult `json:"-"`
}

// LoanDisplay суммы кредита в формате INR
type LoanDisplay struct {
	MonthlyPayment string `json:"monthly_payment"`
	TotalInterest  string `json:"total_interest"`
	TotalPayment   string `json:"total_payment"`
}

// NewLoanCalculation формирует ответ из параметров и результата движка
func NewLoanCalculation(category string, p calculations.LoanParameters, r calculations.LoanResult) *LoanCalculation {
	return &LoanCalculation{
		Category:       category,
		Parameters:     p,
		MonthlyPayment: utils.Round2(r.Installment),
		TotalInterest:  utils.Round2(r.TotalInterest),
		TotalPayment:   utils.Round2(r.TotalPayment),
		Months:         r.Periods,
		Display: LoanDisplay{
			MonthlyPayment: utils.FormatINR(r.Installment),
			TotalInterest:  utils.FormatINR(r.TotalInterest),
			TotalPayment:   utils.FormatINR(r.TotalPayment),
		},
		Result: r,
	}
}

// CalculateLoan рассчитывает кредит. Если указан category, суммы и срок
// ограничены пресетом категории, иначе - глобальными пределами конфигурации.
func CalculateLoan(ctx context.Context, cfg *config.Config, tracer trace.Tracer, params map[string]interface{}) (*LoanCalculation, error) {
	_, call := startCall(ctx, tracer, ToolLoanCalculate)
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
	categoryName, err := optionalStringParam(params, "category")
	if err != nil {
		return nil, call.invalid(err)
	}

	call.span.SetAttributes(
		attribute.Float64("principal", principal),
		attribute.Float64("annual_rate_percent", annualRatePercent),
		attribute.Float64("term_years", termYears),
		attribute.String("category", categoryName),
	)

	bounds := validators.ConfigBounds(cfg)
	var category string
	if categoryName != "" {
		c, err := presets.ParseLoanCategory(categoryName)
		if err != nil {
			return nil, call.invalid(err)
		}
		bounds = validators.PresetBounds(cfg, presets.LoanPreset(c))
		category = string(c)
	}

	p := calculations.LoanParameters{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
	}
	if err := validators.CheckLoanParameters(bounds, p); err != nil {
		return nil, call.invalid(err)
	}

	result := p.Compute()
	if !result.Computed {
		return nil, call.failed(calculations.ErrNotComputed)
	}

	call.succeeded(
		attribute.Float64("monthly_payment", result.Installment),
		attribute.Float64("total_payment", result.TotalPayment),
	)

	return NewLoanCalculation(category, p, result), nil
}

// LoanCalculateHandler обрабатывает запрос на расчет аннуитетного кредита
func LoanCalculateHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return CalculateLoan(ctx, cfg, tracer, params)
	}
}
