package calculations

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cloud-ru/fincalc-go/pkg/utils"
)

// Compounding количество капитализаций процентов в году
type Compounding int

const (
	CompoundingAnnual     Compounding = 1
	CompoundingHalfYearly Compounding = 2
	CompoundingQuarterly  Compounding = 4
	CompoundingMonthly    Compounding = 12
)

// DefaultCompounding капитализация по умолчанию для вкладов
const DefaultCompounding = CompoundingAnnual

// ErrUnknownCompounding неизвестная периодичность капитализации
var ErrUnknownCompounding = errors.New("unknown compounding frequency")

var compoundingNames = map[Compounding]string{
	CompoundingAnnual:     "annual",
	CompoundingHalfYearly: "half_yearly",
	CompoundingQuarterly:  "quarterly",
	CompoundingMonthly:    "monthly",
}

// Valid сообщает, поддерживается ли периодичность
func (c Compounding) Valid() bool {
	_, ok := compoundingNames[c]
	return ok
}

func (c Compounding) String() string {
	if name, ok := compoundingNames[c]; ok {
		return name
	}
	return fmt.Sprintf("compounding(%d)", int(c))
}

// MarshalJSON кодирует периодичность строкой ("annual", "monthly", ...)
func (c Compounding) MarshalJSON() ([]byte, error) {
	if c == 0 {
		c = DefaultCompounding
	}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompounding, int(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON принимает строковое имя периодичности
func (c *Compounding) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCompounding(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCompounding разбирает имя периодичности; пустая строка даёт значение по умолчанию
func ParseCompounding(s string) (Compounding, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DefaultCompounding, nil
	}
	for c, n := range compoundingNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCompounding, s)
}

// ComputeDeposit рассчитывает сумму вклада к погашению со сложными процентами:
//
//	A = P * (1 + rate/100/m)^(termYears*m)
//
// где m - число капитализаций в году. Отрицательная ставка допустима
// (обесценивание), если основание степени остаётся положительным.
// termYears == 0 даёт A == P.
func ComputeDeposit(principal, annualRatePercent, termYears float64, compounding Compounding) DepositResult {
	if !utils.AllFinite(principal, annualRatePercent, termYears) {
		return DepositResult{}
	}
	if principal <= 0 || termYears < 0 || !compounding.Valid() {
		return DepositResult{}
	}

	m := float64(compounding)
	base := 1.0 + annualRatePercent/100.0/m
	if base <= 0 {
		return DepositResult{}
	}

	maturity := principal * math.Pow(base, termYears*m)
	interest := maturity - principal

	if !utils.AllFinite(maturity, interest) {
		return DepositResult{}
	}

	return DepositResult{
		MaturityAmount: maturity,
		InterestEarned: interest,
		Computed:       true,
	}
}
