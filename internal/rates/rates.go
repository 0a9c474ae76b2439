// Package rates содержит таблицу ставок банков и сравнение предложений
// по кредитам и вкладам на её основе.
package rates

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/fincalc-go/internal/presets"
)

// ErrNoRateData для категории нет ставок в таблице банков
var ErrNoRateData = errors.New("no bank rate data for category")

// BankRates годовые ставки банка в процентах
type BankRates struct {
	Bank          string          `json:"bank"`
	Savings       decimal.Decimal `json:"savings"`
	FixedDeposit  decimal.Decimal `json:"fixed_deposit"`
	HomeLoan      decimal.Decimal `json:"home_loan"`
	PersonalLoan  decimal.Decimal `json:"personal_loan"`
	CarLoan       decimal.Decimal `json:"car_loan"`
	EducationLoan decimal.Decimal `json:"education_loan"`
	BusinessLoan  decimal.Decimal `json:"business_loan"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
}

func bank(name, savings, fd, home, personal, car, education, business, fee string) BankRates {
	return BankRates{
		Bank:          name,
		Savings:       decimal.RequireFromString(savings),
		FixedDeposit:  decimal.RequireFromString(fd),
		HomeLoan:      decimal.RequireFromString(home),
		PersonalLoan:  decimal.RequireFromString(personal),
		CarLoan:       decimal.RequireFromString(car),
		EducationLoan: decimal.RequireFromString(education),
		BusinessLoan:  decimal.RequireFromString(business),
		ProcessingFee: decimal.RequireFromString(fee),
	}
}

var table = []BankRates{
	bank("State Bank of India", "2.70", "6.50", "8.50", "10.50", "8.75", "8.15", "10.25", "0.35"),
	bank("HDFC Bank", "3.00", "6.75", "8.75", "10.75", "8.90", "8.35", "10.50", "0.50"),
	bank("ICICI Bank", "3.00", "6.75", "8.75", "10.75", "8.90", "8.35", "10.50", "0.50"),
	bank("Axis Bank", "3.00", "6.75", "8.75", "10.75", "8.90", "8.35", "10.50", "0.50"),
	bank("Kotak Mahindra Bank", "3.50", "7.00", "8.50", "10.50", "8.75", "8.25", "10.35", "0.50"),
	bank("Punjab National Bank", "2.75", "6.50", "8.50", "10.50", "8.75", "8.15", "10.25", "0.35"),
	bank("Bank of Baroda", "2.75", "6.50", "8.50", "10.50", "8.75", "8.15", "10.25", "0.35"),
	bank("Canara Bank", "2.75", "6.50", "8.50", "10.50", "8.75", "8.15", "10.25", "0.35"),
}

// Table возвращает копию таблицы ставок
func Table() []BankRates {
	return append([]BankRates(nil), table...)
}

// LoanRate ставка банка для типа кредита
func (b BankRates) LoanRate(c presets.LoanCategory) decimal.Decimal {
	switch c {
	case presets.LoanHome:
		return b.HomeLoan
	case presets.LoanCar:
		return b.CarLoan
	case presets.LoanPersonal:
		return b.PersonalLoan
	case presets.LoanEducation:
		return b.EducationLoan
	}
	panic(fmt.Sprintf("rates: unknown loan category %q", string(c)))
}

// DepositRate ставка банка для типа вклада. Для пенсионных и налоговых
// вкладов таблица ставок не ведётся.
func (b BankRates) DepositRate(c presets.DepositCategory) (decimal.Decimal, error) {
	switch c {
	case presets.DepositFixed:
		return b.FixedDeposit, nil
	case presets.DepositSavings:
		return b.Savings, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrNoRateData, c)
}
