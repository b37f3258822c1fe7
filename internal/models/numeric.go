package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/diewo77/hoadon/internal/numfmt"
)

type numericKind uint8

const (
	numericUnset numericKind = iota
	numericNumber
	numericString
	numericOther
)

// Numeric is a numeric-like payload field. It keeps the token exactly as the
// client sent it (a JSON number, a string such as "1,250.00", or anything
// else) so a stored invoice marshals back to the same document.
type Numeric struct {
	raw  string
	kind numericKind
}

// Number builds a Numeric from a float, as if the client had sent a JSON number.
// NaN and infinities have no JSON form and yield an unset value.
func Number(f float64) Numeric {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Numeric{}
	}
	return Numeric{raw: strconv.FormatFloat(f, 'f', -1, 64), kind: numericNumber}
}

// NumericString builds a Numeric from a string value.
func NumericString(s string) Numeric {
	return Numeric{raw: s, kind: numericString}
}

// IsZero reports whether the field was absent or null.
func (n Numeric) IsZero() bool { return n.kind == numericUnset }

// Value returns the payload value in a form numfmt understands: nil when
// unset, a string for string tokens, a float64 for numbers and the raw token
// otherwise (which numfmt treats as unparsable).
func (n Numeric) Value() any {
	switch n.kind {
	case numericNumber:
		// Out of range literals come back as ±Inf, which numfmt rejects.
		f, _ := strconv.ParseFloat(n.raw, 64)
		return f
	case numericString:
		return n.raw
	case numericOther:
		return json.RawMessage(n.raw)
	}
	return nil
}

// Float coerces the value, defaulting to 0.
func (n Numeric) Float() float64 { return numfmt.ToNumber(n.Value(), 0) }

// Format renders the value with a fixed number of decimals.
func (n Numeric) Format(decimals int) string { return numfmt.Format(n.Value(), decimals) }

// Text returns the value as it was sent, for labels that echo it verbatim.
// An absent value reads as "0".
func (n Numeric) Text() string {
	if n.kind == numericUnset {
		return "0"
	}
	return n.raw
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case numericUnset:
		return []byte("null"), nil
	case numericString:
		return json.Marshal(n.raw)
	}
	return []byte(n.raw), nil
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || string(data) == "null":
		*n = Numeric{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric{raw: s, kind: numericString}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*n = Numeric{raw: string(data), kind: numericNumber}
	default:
		*n = Numeric{raw: string(data), kind: numericOther}
	}
	return nil
}
