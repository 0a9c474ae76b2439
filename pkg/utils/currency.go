package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// RupeeSymbol префикс суммы в рупиях
const RupeeSymbol = "₹"

// FormatINR форматирует сумму в рупиях по правилам en-IN без дробной части:
// последние три цифры, далее группы по две (₹10,00,000).
func FormatINR(amount float64) string {
	if !IsFinite(amount) {
		return "N/A"
	}

	rounded := decimal.NewFromFloat(math.Abs(amount)).Round(0)
	grouped := groupIndian(rounded.String())
	if amount < 0 && !rounded.IsZero() {
		return "-" + RupeeSymbol + grouped
	}
	return RupeeSymbol + grouped
}

// FormatINRPrecise то же, что FormatINR, но с двумя знаками после запятой
func FormatINRPrecise(amount float64) string {
	if !IsFinite(amount) {
		return "N/A"
	}

	rounded := decimal.NewFromFloat(math.Abs(amount)).Round(2)
	parts := strings.SplitN(rounded.StringFixed(2), ".", 2)
	out := RupeeSymbol + groupIndian(parts[0]) + "." + parts[1]
	if amount < 0 && !rounded.IsZero() {
		return "-" + out
	}
	return out
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
