// Package numfmt converts loosely typed numeric values into display strings.
//
// Inputs come straight from client payloads: numbers, strings such as
// "1,234.50", or nothing at all. Commas are always thousands separators and
// are stripped before parsing. Anything that cannot be read as a number
// degrades to a default instead of failing.
package numfmt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Output always uses "," for grouping and "." for decimals.
var printer = message.NewPrinter(language.English)

// ParseOrDefault reads v as a float64. The second result is false when v was
// absent or unparsable, in which case def is returned.
func ParseOrDefault(v any, def float64) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return def, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		return ParseOrDefault(string(n), def)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def, false
		}
		f = parsed
	default:
		return def, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def, false
	}
	return f, true
}

// ToNumber is ParseOrDefault without the success flag.
func ToNumber(v any, def float64) float64 {
	f, _ := ParseOrDefault(v, def)
	return f
}

// Format renders v with exactly decimals fractional digits and thousands
// grouping: Format(1234567, 0) == "1,234,567", Format("19.5", 2) == "19.50".
// Unparsable input formats as 0.
func Format(v any, decimals int) string {
	return FormatFloat(ToNumber(v, 0), decimals)
}

// FormatFloat is Format for a value that is already a float64.
func FormatFloat(f float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), f)
}
