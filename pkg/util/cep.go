package util

import "strings"

// DigitsOnly strips every non-digit rune from s
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCEP reduces a CEP to its 8-digit form. Returns "" when the input
// does not contain exactly 8 digits after truncation.
func NormalizeCEP(s string) string {
	digits := DigitsOnly(s)
	if len(digits) > 8 {
		digits = digits[:8]
	}
	if len(digits) != 8 {
		return ""
	}
	return digits
}

// FormatCEP renders a CEP as "01001-000". Returns "" for malformed input.
func FormatCEP(s string) string {
	digits := NormalizeCEP(s)
	if digits == "" {
		return ""
	}
	return digits[:5] + "-" + digits[5:]
}
