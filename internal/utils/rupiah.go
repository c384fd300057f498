package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah renders an amount as "Rp 1.234.567" using Indonesian grouping.
// Negative amounts are shown in parentheses, fractions are rounded to whole rupiah.
func FormatRupiah(d decimal.Decimal) string {
	neg := d.IsNegative()
	digits := d.Abs().Round(0).StringFixed(0)

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}

	if neg && digits != "0" {
		return "(Rp " + b.String() + ")"
	}
	return "Rp " + b.String()
}

// ParseAmount reads a form amount, accepting Indonesian thousands separators
// ("1.500.000") and a comma decimal mark ("1.500,50"). Plain numbers pass through.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") || strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
