package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used when no currency code is supplied.
const DefaultCurrency = "INR"

var symbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "CA$",
	"SGD": "SGD ",
	"AED": "AED ",
	"CNY": "CN¥",
	"HKD": "HK$",
	"NZD": "NZ$",
	"KRW": "₩",
	"ILS": "₪",
	"BRL": "R$",
	"MXN": "MX$",
	"PHP": "₱",
	"VND": "₫",
	"TWD": "NT$",
}

// FormatCurrency renders amount for display. INR uses the rupee sign with Indian digit
// grouping (₹1,23,456.75); other ISO 4217 codes use western grouping and the currency's
// minor-unit precision. Unrecognised codes are printed as "<CODE> 1,234.56".
func FormatCurrency(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = DefaultCurrency
	}

	if code == DefaultCurrency {
		return symbols[code] + groupIndian(amount.StringFixed(2))
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return code + " " + groupWestern(amount.Abs().StringFixed(2), amount.IsNegative())
	}

	scale, _ := currency.Standard.Rounding(unit)
	digits := amount.Abs().StringFixed(int32(scale))

	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}
	if amount.Round(int32(scale)).IsNegative() {
		return "-" + symbol + groupWestern(digits, false)
	}
	return symbol + groupWestern(digits, false)
}

// groupIndian inserts separators after the last three integer digits and then every two.
func groupIndian(fixed string) string {
	sign, intPart, frac := splitFixed(fixed)
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return sign + strings.Join(groups, ",") + "," + tail + frac
}

func groupWestern(fixed string, negative bool) string {
	sign, intPart, frac := splitFixed(fixed)
	if negative {
		sign = "-"
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}

func splitFixed(fixed string) (sign, intPart, frac string) {
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart = fixed
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, frac = fixed[:i], fixed[i:]
	}
	return sign, intPart, frac
}
