package console

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/costpulse/costpulse/internal/domain/entity"
)

// FormatMoney renders a figure with thousands separators and two
// decimals: "$1,234.56" for USD, "1,234.56 EUR" for other currencies.
func FormatMoney(figure entity.CostFigure) string {
	s := figure.Amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	amount := groupThousands(s)
	if figure.Currency == "" || figure.Currency == "USD" {
		return sign + "$" + amount
	}
	return sign + amount + " " + figure.Currency
}

// FormatPercent renders a percentage with an explicit sign and two
// decimals, "+8.69%".
func FormatPercent(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.StringFixed(2) + "%"
	}
	return "+" + d.StringFixed(2) + "%"
}

func groupThousands(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	return out
}
