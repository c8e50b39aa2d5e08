package trait

import (
	"cmp"
	"strconv"
	"strings"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNumeric represents a numeric value.
	KindNumeric
	// KindText represents a textual value.
	KindText
)

// Value is a small typed trait value.
//
// The representation keeps ranking fast and predictable: no reflection and
// no fmt-based stringification.
type Value struct {
	Kind Kind
	F64  float64
	S    string
}

// Parse converts raw text into a Value: numeric if it parses as a
// floating-point number, textual verbatim otherwise.
func Parse(raw string) Value {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Numeric(f)
	}
	return Text(raw)
}

// Numeric returns a numeric Value.
func Numeric(f float64) Value { return Value{Kind: KindNumeric, F64: f} }

// Text returns a textual Value.
func Text(s string) Value { return Value{Kind: KindText, S: s} }

// AsFloat64 returns the float64 value if Kind is KindNumeric.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindNumeric {
		return 0, false
	}
	return v.F64, true
}

// AsText returns the string value if Kind is KindText.
func (v Value) AsText() (string, bool) {
	if v.Kind != KindText {
		return "", false
	}
	return v.S, true
}

// String renders the value as table text: numeric values in the shortest
// representation that round-trips, text verbatim.
func (v Value) String() string {
	switch v.Kind {
	case KindNumeric:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	case KindText:
		return v.S
	default:
		return ""
	}
}

// Compare defines the total order used for ranking: numeric values compare
// numerically, text values lexicographically, and every numeric value
// orders before every text value.
func (v Value) Compare(o Value) int {
	if v.Kind != o.Kind {
		return cmp.Compare(v.Kind, o.Kind)
	}
	if v.Kind == KindNumeric {
		return cmp.Compare(v.F64, o.F64)
	}
	return strings.Compare(v.S, o.S)
}
