package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tens = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

const (
	thousand = 1_000
	lakh     = 1_00_000
	crore    = 1_00_00_000
)

// AmountInWords spells out a rupee amount using the Indian numbering system,
// e.g. 1.5 -> "One Rupees and Fifty Paise Only". Zero renders as "Zero".
// The amount is rounded to paise first, so 0.999 becomes One Rupees.
func AmountInWords(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	if rounded.IsZero() {
		return "Zero"
	}

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteString("Minus ")
		rounded = rounded.Neg()
	}

	whole := rounded.Truncate(0)
	rupees := whole.IntPart()
	paise := rounded.Sub(whole).Shift(2).IntPart()

	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(spell(rupees))
	}
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(spell(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// spell renders n > 0 in words. "and" appears only after a hundreds group.
func spell(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 20:
		return ones[n]
	case n < 100:
		return tens[n/10] + joinRest(" ", n%10)
	case n < thousand:
		return ones[n/100] + " Hundred" + joinRest(" and ", n%100)
	case n < lakh:
		return spell(n/thousand) + " Thousand" + joinRest(" ", n%thousand)
	case n < crore:
		return spell(n/lakh) + " Lakh" + joinRest(" ", n%lakh)
	default:
		return spell(n/crore) + " Crore" + joinRest(" ", n%crore)
	}
}

func joinRest(sep string, rest int64) string {
	if rest == 0 {
		return ""
	}
	return sep + spell(rest)
}
