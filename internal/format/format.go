package format

import (
	"fmt"
	"math"
	"strings"
)

// FmtCurrency formats an amount in minor units for the currencies the shop uses.
// CLP has no minor unit, so minor == pesos.
// Example: FmtCurrency(15000, "CLP", "es") => "$15.000"
func FmtCurrency(minor int64, currency, lang string) string {
	currency = strings.ToUpper(currency)
	neg := minor < 0
	if neg {
		minor = -minor
	}
	sign := ""
	if neg {
		sign = "-"
	}
	switch currency {
	case "CLP":
		return sign + "$" + thousandSep(minor, groupSeparator(lang))
	case "USD":
		major := minor / 100
		cents := minor % 100
		return fmt.Sprintf("%sUS$%s.%02d", sign, thousandSep(major, ","), cents)
	default:
		return fmt.Sprintf("%s%s %s", sign, currency, thousandSep(minor, groupSeparator(lang)))
	}
}

// FormatPrice formats a peso amount the way es-CL currency formatting does:
// no decimals, "." grouping, half-away-from-zero rounding.
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}
	return FmtCurrency(int64(math.Round(price)), "CLP", "es")
}

func groupSeparator(lang string) string {
	switch strings.ToLower(lang) {
	case "es", "es-cl", "es-es":
		return "."
	default:
		return ","
	}
}

func thousandSep(n int64, sep string) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(c)
	}
	return b.String()
}
