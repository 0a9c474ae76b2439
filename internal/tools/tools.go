// Package tools содержит именованные инструменты расчёта. Каждый инструмент
// принимает параметры в виде map (как после разбора JSON), проверяет их,
// вызывает движок и пишет спан и метрики.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/metrics"
)

// ErrUnknownTool инструмент с таким именем не зарегистрирован
var ErrUnknownTool = errors.New("unknown tool")

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Tool описание инструмента
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Handler     ToolHandler `json:"-"`
}

// Registry набор инструментов по имени
type Registry struct {
	tools map[string]Tool
}

// NewRegistry регистрирует все инструменты калькулятора
func NewRegistry(cfg *config.Config, tracer trace.Tracer) *Registry {
	r := &Registry{tools: make(map[string]Tool)}

	r.Register(Tool{Name: ToolLoanCalculate, Description: "Ежемесячный платёж, переплата и сумма выплат по аннуитетному кредиту", Handler: LoanCalculateHandler(cfg, tracer)})
	r.Register(Tool{Name: ToolDepositCalculate, Description: "Сумма к погашению и доход по вкладу со сложными процентами", Handler: DepositCalculateHandler(cfg, tracer)})
	r.Register(Tool{Name: ToolApplyLoanCategory, Description: "Применение пресета типа кредита к текущим параметрам", Handler: ApplyLoanCategoryHandler(cfg, tracer)})
	r.Register(Tool{Name: ToolApplyDepositCategory, Description: "Применение пресета типа вклада к текущим параметрам", Handler: ApplyDepositCategoryHandler(cfg, tracer)})
	r.Register(Tool{Name: ToolGetPreset, Description: "Ограничения и ставка по умолчанию для типа продукта", Handler: GetPresetHandler(cfg, tracer)})
	r.Register(Tool{Name: ToolCompareLoanOffers, Description: "Сравнение предложений банков по кредиту", Handler: CompareLoanOffersHandler(cfg, tracer)})
	r.Register(Tool{Name: ToolCompareDepositOffers, Description: "Сравнение предложений банков по вкладу", Handler: CompareDepositOffersHandler(cfg, tracer)})

	return r
}

// Register добавляет или заменяет инструмент
func (r *Registry) Register(t Tool) {
	r.tools[t.Name] = t
}

// List возвращает инструменты, отсортированные по имени
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call вызывает инструмент по имени
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	t, ok := r.tools[name]
	if !ok {
		metrics.ToolCalls.WithLabelValues("unknown", "not_found").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if params == nil {
		params = map[string]interface{}{}
	}
	return t.Handler(ctx, params)
}

// toolCall спан и метрики одного вызова инструмента
type toolCall struct {
	name string
	span trace.Span
}

func startCall(ctx context.Context, tracer trace.Tracer, toolName string) (context.Context, *toolCall) {
	ctx, span := tracer.Start(ctx, toolName)
	metrics.APICalls.WithLabelValues("tools", toolName, "started").Inc()
	return ctx, &toolCall{name: toolName, span: span}
}

func (c *toolCall) end() {
	c.span.End()
}

// invalid регистрирует ошибку валидации
func (c *toolCall) invalid(err error) error {
	c.span.SetAttributes(attribute.String("error", "validation_error"))
	c.span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(c.name, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.name, "validation").Inc()
	metrics.APICalls.WithLabelValues("tools", c.name, "error").Inc()
	return fmt.Errorf("неверные параметры: %w", err)
}

// failed регистрирует ошибку расчёта
func (c *toolCall) failed(err error) error {
	c.span.SetAttributes(attribute.String("error", "calculation_error"))
	c.span.RecordError(err)
	c.span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(c.name, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.name, "calculation").Inc()
	metrics.APICalls.WithLabelValues("tools", c.name, "error").Inc()
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func (c *toolCall) succeeded(attrs ...attribute.KeyValue) {
	c.span.SetAttributes(append(attrs, attribute.Bool("success", true))...)
	metrics.ToolCalls.WithLabelValues(c.name, "success").Inc()
	metrics.APICalls.WithLabelValues("tools", c.name, "success").Inc()
}
