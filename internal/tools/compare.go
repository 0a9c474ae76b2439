package tools

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/fincalc-go/internal/config"
	"github.com/cloud-ru/fincalc-go/internal/presets"
	"github.com/cloud-ru/fincalc-go/internal/rates"
	"github.com/cloud-ru/fincalc-go/internal/validators"
)

const (
	ToolCompareLoanOffers    = "compare_loan_offers"
	ToolCompareDepositOffers = "compare_deposit_offers"
)

// CompareLoanOffersHandler сравнивает предложения банков по кредиту
func CompareLoanOffersHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := startCall(ctx, tracer, ToolCompareLoanOffers)
		defer call.end()

		name, err := stringParam(params, "category")
		if err != nil {
			return nil, call.invalid(err)
		}
		category, err := presets.ParseLoanCategory(name)
		if err != nil {
			return nil, call.invalid(err)
		}
		principal, err := numberParam(params, "principal")
		if err != nil {
			return nil, call.invalid(err)
		}
		termYears, err := numberParam(params, "term_years")
		if err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.String("category", string(category)),
			attribute.Float64("principal", principal),
			attribute.Float64("term_years", termYears),
		)

		bounds := validators.PresetBounds(cfg, presets.LoanPreset(category))
		if err := validators.CheckPrincipal(bounds, principal); err != nil {
			return nil, call.invalid(err)
		}
		if err := validators.CheckTermYears(bounds, termYears); err != nil {
			return nil, call.invalid(err)
		}

		cmp, err := rates.CompareLoanOffers(category, principal, termYears)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(attribute.String("cheapest", cmp.Cheapest))
		return cmp, nil
	}
}

// CompareDepositOffersHandler сравнивает предложения банков по вкладу
func CompareDepositOffersHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := startCall(ctx, tracer, ToolCompareDepositOffers)
		defer call.end()

		name, err := stringParam(params, "category")
		if err != nil {
			return nil, call.invalid(err)
		}
		category, err := presets.ParseDepositCategory(name)
		if err != nil {
			return nil, call.invalid(err)
		}
		principal, err := numberParam(params, "principal")
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

		call.span.SetAttributes(
			attribute.String("category", string(category)),
			attribute.Float64("principal", principal),
			attribute.Float64("term_years", termYears),
			attribute.String("compounding", compounding.String()),
		)

		bounds := validators.PresetBounds(cfg, presets.DepositPreset(category))
		if err := validators.CheckPrincipal(bounds, principal); err != nil {
			return nil, call.invalid(err)
		}
		if err := validators.CheckDepositTermYears(bounds, termYears); err != nil {
			return nil, call.invalid(err)
		}

		cmp, err := rates.CompareDepositOffers(category, principal, termYears, compounding)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(attribute.String("best", cmp.Best))
		return cmp, nil
	}
}

