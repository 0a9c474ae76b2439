package rates

import (
	"fmt"
	"sort"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
	"github.com/cloud-ru/fincalc-go/internal/presets"
	"github.com/cloud-ru/fincalc-go/pkg/utils"
)

// LoanOffer предложение банка по кредиту
type LoanOffer struct {
	Bank                 string                   `json:"bank"`
	AnnualRatePercent    float64                  `json:"annual_rate_percent"`
	ProcessingFeePercent float64                  `json:"processing_fee_percent"`
	ProcessingFee        float64                  `json:"processing_fee"`
	TotalCost            float64                  `json:"total_cost"`
	Result               calculations.LoanResult `json:"result"`
}

// LoanComparison результат сравнения предложений по кредиту
type LoanComparison struct {
	Category   presets.LoanCategory `json:"category"`
	Principal  float64              `json:"principal"`
	TermYears  float64              `json:"term_years"`
	Offers     []LoanOffer          `json:"offers"`
	Cheapest   string               `json:"cheapest"`
	MaxSavings float64              `json:"max_savings"`
}

// DepositOffer предложение банка по вкладу
type DepositOffer struct {
	Bank              string                     `json:"bank"`
	AnnualRatePercent float64                    `json:"annual_rate_percent"`
	Result            calculations.DepositResult `json:"result"`
}

// DepositComparison результат сравнения предложений по вкладу
type DepositComparison struct {
	Category    presets.DepositCategory  `json:"category"`
	Principal   float64                  `json:"principal"`
	TermYears   float64                  `json:"term_years"`
	Compounding calculations.Compounding `json:"compounding"`
	Offers      []DepositOffer           `json:"offers"`
	Best        string                   `json:"best"`
	MaxGain     float64                  `json:"max_gain"`
}

// CompareLoanOffers рассчитывает кредит по ставке каждого банка и сортирует
// предложения по полной стоимости (выплаты + комиссия за оформление).
func CompareLoanOffers(category presets.LoanCategory, principal, termYears float64) (*LoanComparison, error) {
	offers := make([]LoanOffer, 0, len(table))

	for _, b := range table {
		rate := b.LoanRate(category).InexactFloat64()
		result := calculations.ComputeLoan(principal, rate, termYears)
		if !result.Computed {
			return nil, fmt.Errorf("%s: %w", b.Bank, calculations.ErrNotComputed)
		}

		feePercent := b.ProcessingFee.InexactFloat64()
		fee := principal * feePercent / 100.0

		offers = append(offers, LoanOffer{
			Bank:                 b.Bank,
			AnnualRatePercent:    rate,
			ProcessingFeePercent: feePercent,
			ProcessingFee:        fee,
			TotalCost:            result.TotalPayment + fee,
			Result:               result,
		})
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].TotalCost < offers[j].TotalCost
	})

	return &LoanComparison{
		Category:   category,
		Principal:  principal,
		TermYears:  termYears,
		Offers:     offers,
		Cheapest:   offers[0].Bank,
		MaxSavings: utils.Round2(offers[len(offers)-1].TotalCost - offers[0].TotalCost),
	}, nil
}

// CompareDepositOffers рассчитывает вклад по ставке каждого банка и сортирует
// предложения по сумме к погашению (по убыванию).
func CompareDepositOffers(category presets.DepositCategory, principal, termYears float64,
	compounding calculations.Compounding) (*DepositComparison, error) {

	offers := make([]DepositOffer, 0, len(table))

	for _, b := range table {
		r, err := b.DepositRate(category)
		if err != nil {
			return nil, err
		}
		rate := r.InexactFloat64()

		result := calculations.ComputeDeposit(principal, rate, termYears, compounding)
		if !result.Computed {
			return nil, fmt.Errorf("%s: %w", b.Bank, calculations.ErrNotComputed)
		}

		offers = append(offers, DepositOffer{
			Bank:              b.Bank,
			AnnualRatePercent: rate,
			Result:            result,
		})
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Result.MaturityAmount > offers[j].Result.MaturityAmount
	})

	return &DepositComparison{
		Category:    category,
		Principal:   principal,
		TermYears:   termYears,
		Compounding: compounding,
		Offers:      offers,
		Best:        offers[0].Bank,
		MaxGain:     utils.Round2(offers[0].Result.MaturityAmount - offers[len(offers)-1].Result.MaturityAmount),
	}, nil
}
