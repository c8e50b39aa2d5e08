// Package natsort implements natural-order string comparison: embedded
// digit runs compare numerically instead of character-by-character, so
// "trait2" sorts before "trait10".
package natsort

import "strings"

// Compare returns -1, 0, or 1 comparing a and b in natural order.
//
// Each string is tokenized into alternating runs of digits and non-digits.
// Digit runs compare numerically, non-digit runs lexicographically, and a
// digit run orders before any non-digit run. On a strict prefix match the
// shorter token sequence sorts first.
func Compare(a, b string) int {
	for a != "" && b != "" {
		ta, restA, numA := nextToken(a)
		tb, restB, numB := nextToken(b)

		var c int
		switch {
		case numA && numB:
			c = compareNumeric(ta, tb)
		case numA:
			c = -1
		case numB:
			c = 1
		default:
			c = strings.Compare(ta, tb)
		}
		if c != 0 {
			return c
		}
		a, b = restA, restB
	}

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// Less reports whether a orders before b in natural order.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// nextToken splits off the leading run of digits or non-digits.
func nextToken(s string) (token, rest string, numeric bool) {
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[:i], s[i:], numeric
}

// compareNumeric compares two digit runs by value without parsing, so runs
// longer than an int64 still compare correctly.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
