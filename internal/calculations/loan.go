package calculations

import (
	"math"

	"github.com/cloud-ru/fincalc-go/pkg/utils"
)

// PeriodsPerYear количество платежей в году (ежемесячные взносы)
const PeriodsPerYear = 12

// ComputeLoan рассчитывает ежемесячный аннуитетный платёж (EMI), общую сумму
// выплат и переплату по кредиту с фиксированной ставкой.
//
//	r = annualRatePercent / 100 / 12
//	n = termYears * 12
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// При нулевой ставке платёж равен P / n. Некорректный ввод (неконечные числа,
// principal <= 0, termYears <= 0, отрицательная ставка) даёт нулевой результат
// с Computed == false.
func ComputeLoan(principal, annualRatePercent, termYears float64) LoanResult {
	if !utils.AllFinite(principal, annualRatePercent, termYears) {
		return LoanResult{}
	}
	if principal <= 0 || termYears <= 0 || annualRatePercent < 0 {
		return LoanResult{}
	}

	P := principal
	n := termYears * PeriodsPerYear
	r := annualRatePercent / 100.0 / PeriodsPerYear

	var installment float64
	if r == 0.0 {
		installment = P / n
	} else {
		// (1+r)^n - 1 через log1p/expm1, чтобы малые r не теряли точность
		growth := n * math.Log1p(r)
		if math.IsInf(growth, 1) {
			// предел при n -> inf: платёж покрывает только проценты
			installment = P * r
		} else {
			installment = P * r / -math.Expm1(-growth)
		}
	}

	totalPayment := installment * n
	totalInterest := totalPayment - P
	if totalInterest < 0 {
		// при r >= 0 переплата неотрицательна, остаток это погрешность округления
		totalInterest = 0
		totalPayment = P
	}

	if !utils.AllFinite(installment, totalPayment, totalInterest) {
		return LoanResult{}
	}

	return LoanResult{
		Installment:   installment,
		TotalInterest: totalInterest,
		TotalPayment:  totalPayment,
		Periods:       n,
		Computed:      true,
	}
}
