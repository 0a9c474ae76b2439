package calculations

import "errors"

// ErrNotComputed возвращается вызывающему коду, когда движок вернул результат
// "не рассчитано" (нулевой результат с Computed == false)
var ErrNotComputed = errors.New("calculation not computed: missing or invalid input")

// LoanParameters параметры кредита
type LoanParameters struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         float64 `json:"term_years"`
}

// LoanResult результат расчёта аннуитетного кредита.
// Нулевое значение (Computed == false) означает "не рассчитано", а не бесплатный кредит.
type LoanResult struct {
	Installment   float64 `json:"installment"`
	TotalInterest float64 `json:"total_interest"`
	TotalPayment  float64 `json:"total_payment"`
	Periods       float64 `json:"periods"`
	Computed      bool    `json:"computed"`
}

// DepositParameters параметры вклада
type DepositParameters struct {
	Principal         float64     `json:"principal"`
	AnnualRatePercent float64     `json:"annual_rate_percent"`
	TermYears         float64     `json:"term_years"`
	Compounding       Compounding `json:"compounding"`
}

// DepositResult результат расчёта вклада
type DepositResult struct {
	MaturityAmount float64 `json:"maturity_amount"`
	InterestEarned float64 `json:"interest_earned"`
	Computed       bool    `json:"computed"`
}

// Compute рассчитывает кредит по параметрам
func (p LoanParameters) Compute() LoanResult {
	return ComputeLoan(p.Principal, p.AnnualRatePercent, p.TermYears)
}

// Compute рассчитывает вклад по параметрам. Нулевая периодичность
// капитализации трактуется как ежегодная.
func (p DepositParameters) Compute() DepositResult {
	c := p.Compounding
	if c == 0 {
		c = DefaultCompounding
	}
	return ComputeDeposit(p.Principal, p.AnnualRatePercent, p.TermYears, c)
}
