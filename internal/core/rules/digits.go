package rules

import "strings"

// NormalizeDigits maps Devanagari digits (०-९) to ASCII (0-9). Everything else passes through.
func NormalizeDigits(text string) string {
	if !hasDevanagariDigit(text) {
		return text
	}
	return strings.Map(func(r rune) rune {
		if r >= '०' && r <= '९' {
			return '0' + (r - '०')
		}
		return r
	}, text)
}

func hasDevanagariDigit(text string) bool {
	return strings.ContainsFunc(text, func(r rune) bool { return r >= '०' && r <= '९' })
}
