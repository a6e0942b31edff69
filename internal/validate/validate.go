// Package validate holds small semantic checks that gate high-false-positive
// pattern matches after the regex stage.
package validate

import "strings"

// LengthBetween returns true if n is within [min,max].
func LengthBetween(s string, min, max int) bool {
	n := len(s)
	return n >= min && n <= max
}

// IsAlphabet returns true if all characters in s are in allowed set.
func IsAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return false
		}
	}
	return true
}

// IsDigits reports whether s is non-empty and entirely ASCII digits.
func IsDigits(s string) bool {
	return IsAlphabet(s, "0123456789")
}

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Luhn runs the mod-10 checksum over a digit string, doubling every second
// digit starting from the rightmost. Card candidates that fail are dropped
// silently by the caller.
func Luhn(digits string) bool {
	if len(digits) < 12 || !IsDigits(digits) {
		return false
	}
	sum := 0
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		double = !double
		sum += d
	}
	return sum%10 == 0
}
