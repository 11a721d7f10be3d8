// Package parse holds the tolerant value parsers shared by the closing
// engine and the spreadsheet importer. Spreadsheets arrive hand-edited, so
// every parser here degrades to a neutral value instead of returning an
// error; callers that need strictness validate separately.
package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency converts a raw cell value into a monetary amount. Numbers pass
// through unchanged. Strings are read as Brazilian-formatted currency:
// an optional leading "R$", "." as thousands separator and "," as the
// decimal separator. Anything unparseable yields zero, never an error.
func Currency(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case float32:
		return decimal.NewFromFloat32(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case string:
		return currencyFromString(val)
	default:
		return decimal.Zero
	}
}

func currencyFromString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	// 1.234,56 -> 1234.56
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
