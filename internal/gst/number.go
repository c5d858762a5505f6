package gst

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceNumber converts loosely typed input into a decimal. Anything that is not
// a finite number (nil, "", "abc", NaN, booleans, unknown types) becomes zero.
func CoerceNumber(v any) decimal.Decimal {
	d, err := ParseNumber(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseNumber is the strict form of CoerceNumber. Absent values (nil, empty or
// blank string) are zero; malformed values yield an *InvalidNumberError.
func ParseNumber(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return n, nil
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, nil
		}
		return *n, nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int8:
		return decimal.NewFromInt(int64(n)), nil
	case int16:
		return decimal.NewFromInt(int64(n)), nil
	case int32:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case uint:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint8:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint16:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint32:
		return decimal.NewFromUint64(uint64(n)), nil
	case uint64:
		return decimal.NewFromUint64(n), nil
	case float32:
		return parseFloat(float64(n), v)
	case float64:
		return parseFloat(n, v)
	case json.Number:
		return parseString(n.String(), v)
	case string:
		return parseString(n, v)
	default:
		return decimal.Zero, &InvalidNumberError{Value: v}
	}
}

func parseFloat(f float64, raw any) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &InvalidNumberError{Value: raw}
	}
	return decimal.NewFromFloat(f), nil
}

func parseString(s string, raw any) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InvalidNumberError{Value: raw}
	}
	return d, nil
}
