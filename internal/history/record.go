// Package history хранит сохранённые расчёты пользователя: один список на
// пару (семейство, uid) под ключом вида loanCalculations:{uid}.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cloud-ru/fincalc-go/internal/calculations"
)

var (
	// ErrPersistenceUnavailable хранилище недоступно или вернуло повреждённые данные
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	// ErrUnknownFamily неизвестное семейство расчётов
	ErrUnknownFamily = errors.New("unknown calculation family")
	// ErrInvalidRecord запись не соответствует своему семейству
	ErrInvalidRecord = errors.New("invalid calculation record")
)

// Family семейство расчётов
type Family string

const (
	FamilyLoan    Family = "loan"
	FamilyDeposit Family = "deposit"
)

// ParseFamily разбирает имя семейства ("loan", "loans", "deposit", "deposits")
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "loan", "loans":
		return FamilyLoan, nil
	case "deposit", "deposits":
		return FamilyDeposit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// Key ключ списка расчётов пользователя в хранилище
func (f Family) Key(uid string) string {
	switch f {
	case FamilyLoan:
		return "loanCalculations:" + uid
	case FamilyDeposit:
		return "depositCalculations:" + uid
	}
	panic(fmt.Sprintf("history: unknown family %q", string(f)))
}

// LoanSnapshot параметры и результат расчёта кредита
type LoanSnapshot struct {
	Parameters calculations.LoanParameters `json:"parameters"`
	Result     calculations.LoanResult     `json:"result"`
}

// DepositSnapshot параметры и результат расчёта вклада
type DepositSnapshot struct {
	Parameters calculations.DepositParameters `json:"parameters"`
	Result     calculations.DepositResult     `json:"result"`
}

// SavedCalculation сохранённый расчёт. После сохранения не изменяется.
type SavedCalculation struct {
	ID        uuid.UUID        `json:"id"`
	Family    Family           `json:"family"`
	Category  string           `json:"category"`
	Loan      *LoanSnapshot    `json:"loan,omitempty"`
	Deposit   *DepositSnapshot `json:"deposit,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewLoanRecord собирает запись о расчёте кредита
func NewLoanRecord(category string, p calculations.LoanParameters, r calculations.LoanResult) SavedCalculation {
	return SavedCalculation{
		Family:   FamilyLoan,
		Category: category,
		Loan:     &LoanSnapshot{Parameters: p, Result: r},
	}
}

// NewDepositRecord собирает запись о расчёте вклада
func NewDepositRecord(category string, p calculations.DepositParameters, r calculations.DepositResult) SavedCalculation {
	return SavedCalculation{
		Family:   FamilyDeposit,
		Category: category,
		Deposit:  &DepositSnapshot{Parameters: p, Result: r},
	}
}

// Validate проверяет, что запись содержит рассчитанный результат своего семейства
func (s SavedCalculation) Validate() error {
	switch s.Family {
	case FamilyLoan:
		if s.Loan == nil || s.Deposit != nil {
			return fmt.Errorf("%w: loan record must carry only a loan snapshot", ErrInvalidRecord)
		}
		if !s.Loan.Result.Computed {
			return calculations.ErrNotComputed
		}
	case FamilyDeposit:
		if s.Deposit == nil || s.Loan != nil {
			return fmt.Errorf("%w: deposit record must carry only a deposit snapshot", ErrInvalidRecord)
		}
		if !s.Deposit.Result.Computed {
			return calculations.ErrNotComputed
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFamily, s.Family)
	}
	return nil
}
