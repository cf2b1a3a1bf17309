package util

import (
	"fmt"
	"strings"
)

// groupThousands inserts commas into the integer part of a formatted number.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, decPart, hasDec := strings.Cut(s, ".")
	if len(intPart) > 3 {
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
		intPart = b.String()
	}

	if hasDec {
		return sign + intPart + "." + decPart
	}
	return sign + intPart
}

// FormatNumber renders an integer with thousands separators
func FormatNumber(n int) string {
	return groupThousands(fmt.Sprintf("%d", n))
}

// FormatDecimal renders a float with the given precision and thousands separators
func FormatDecimal(v float64, precision int) string {
	return groupThousands(fmt.Sprintf("%.*f", precision, v))
}

// FormatCurrency renders a dollar amount, e.g. $1,234.56
func FormatCurrency(amount float64) string {
	s := FormatDecimal(amount, 2)
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}
