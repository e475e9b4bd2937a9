package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type ValueKind int

const (
	ValueUnset ValueKind = iota
	ValueText
	ValueNumber
	ValueNaN
	ValueJSON
)

// Value is the live input for one parameter. Coercion failures are kept as
// an explicit NaN variant instead of being dropped, so a deliberately bad
// value still reaches the server.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	JSON   any
}

func TextValue(s string) Value    { return Value{Kind: ValueText, Text: s} }
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Number: n} }
func NaNValue() Value             { return Value{Kind: ValueNaN} }
func JSONValue(v any) Value       { return Value{Kind: ValueJSON, JSON: v} }

func (v Value) Defined() bool {
	return v.Kind != ValueUnset
}

// Blank reports whether the value is the empty string. Blank values are
// skipped when building URLs; zero numbers are not.
func (v Value) Blank() bool {
	switch v.Kind {
	case ValueText:
		return v.Text == ""
	case ValueJSON:
		s, ok := v.JSON.(string)
		return ok && s == ""
	}
	return false
}

// String renders the value the way it is placed into a URL.
func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueNumber:
		return formatNumber(v.Number)
	case ValueNaN:
		return "NaN"
	case ValueJSON:
		switch t := v.JSON.(type) {
		case string:
			return t
		case float64:
			return formatNumber(t)
		case nil:
			return "null"
		}
		b, err := json.Marshal(v.JSON)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// MarshalJSON serializes the value as a request body. NaN has no JSON
// representation and becomes null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueText:
		return json.Marshal(v.Text)
	case ValueNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.Number)
	case ValueJSON:
		return json.Marshal(v.JSON)
	default:
		return []byte("null"), nil
	}
}

func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "NaN"
	}
	if math.IsInf(n, 1) {
		return "Infinity"
	}
	if math.IsInf(n, -1) {
		return "-Infinity"
	}
	if n == 0 {
		// covers -0
		return "0"
	}
	if abs := math.Abs(n); abs >= 1e21 || abs < 1e-6 {
		return exponent(n)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// exponent writes n as 1.5e+21 or 1.5e-7, without the zero padding
// strconv puts in the exponent.
func exponent(n float64) string {
	s := strconv.FormatFloat(n, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}
