package rules

import (
	"regexp"
	"strings"
)

// phonePatterns are tried in order against the raw text and then its
// digit-normalized twin. A pattern with a capture group contributes group 1.
var phonePatterns = []*regexp.Regexp{
	// +91 / 91 prefixed
	regexp.MustCompile(`(?:\+|\b)91[ \t\-]*[6-9][0-9]{4}[ \t\-]*[0-9]{5}\b`),
	// bare 10 digits
	regexp.MustCompile(`\b[6-9][0-9]{9}\b`),
	// 5+5 grouped
	regexp.MustCompile(`\b[6-9][0-9]{4}[ \t\-][0-9]{5}\b`),
	// 3+3+4 grouped
	regexp.MustCompile(`\b[6-9][0-9]{2}[ \t\-][0-9]{3}[ \t\-][0-9]{4}\b`),
	// label anchored
	regexp.MustCompile(`(?:मोबाइल|मोबाईल|भ्रमणध्वनी|दूरध्वनी|फोन|मो\.|(?i:mob(?:ile)?|mo\.|phone|ph\.|tel\.?|contact))[ \t]*(?:नं\.?|क्र\.?|(?i:no\.?))?[ \t]*[:\-–]?[ \t]*(\+?[0-9][0-9 \t\-]{8,16}[0-9])`),
}

var reNonPhoneChars = regexp.MustCompile(`[^0-9+]`)

// canonicalPhone returns the canonical form of a raw match, or "" when it is
// not a mobile number.
func canonicalPhone(raw string) string {
	s := reNonPhoneChars.ReplaceAllString(NormalizeDigits(raw), "")
	switch {
	case len(s) == 13 && strings.HasPrefix(s, "+91") && isMobileLead(s[3]):
		return s
	case len(s) == 12 && strings.HasPrefix(s, "91") && isMobileLead(s[2]):
		return "+" + s
	case len(s) == 10 && isMobileLead(s[0]) && !strings.Contains(s, "+"):
		return s
	}
	return ""
}

func isMobileLead(b byte) bool { return b >= '6' && b <= '9' }

// ExtractPhones finds mobile numbers and returns them comma-joined in
// first-seen order. Two forms of the same subscriber number count once.
func ExtractPhones(text string) string {
	return strings.Join(findPhones(text), ",")
}

func findPhones(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	sources := []string{text}
	if normalized := NormalizeDigits(text); normalized != text {
		sources = append(sources, normalized)
	}

	var out []string
	seen := make(map[string]struct{})
	for _, src := range sources {
		for _, re := range phonePatterns {
			for _, m := range re.FindAllStringSubmatch(src, -1) {
				p := canonicalPhone(captured(m))
				if p == "" {
					continue
				}
				key := p[len(p)-10:]
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				out = append(out, p)
			}
		}
	}
	return out
}
