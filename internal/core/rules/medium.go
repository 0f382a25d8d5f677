package rules

import "strings"

const (
	MediumSoftCopy  = "soft copy"
	MediumHardCopy  = "hard copy"
	MediumFax       = "fax"
	MediumCourier   = "courier"
	MediumSpeedPost = "speed post"
	MediumWhatsApp  = "whatsapp/sms"
)

// DefaultMedium reflects that most source letters arrive as physical mail.
const DefaultMedium = MediumHardCopy

var mediumTable = Table{
	rule(`(?:ई-?[ \t]*मेल|ईमेल)[ \t]*(?:द्वारे|ने|व्दारे)|(?i:\b(?:by|via|through)[ \t]+e-?mail\b|\bsoft[ \t]*copy\b)|सॉफ्ट[ \t]*(?:कॉपी|प्रत)`, MediumSoftCopy),
	rule(`फॅक्स|फैक्स|(?i:\bfax\b|\bfacsimile\b)`, MediumFax),
	rule(`स्पीड[ \t]*पोस्ट|रजिस्टर(?:्ड)?[ \t]*(?:पोस्ट|ए\.?[ \t]*डी\.?)|(?i:\bspeed[ \t]*post\b|\bregd\.?[ \t]*post\b|\bregistered[ \t]+post\b|\bR\.?P\.?A\.?D\.?\b)`, MediumSpeedPost),
	rule(`कुरिअर|कुरियर|(?i:\bcouriers?\b)`, MediumCourier),
	rule(`व्हॉट्सअ?ॅप|व्हाट्सअ?ॅप|एसएमएस|(?i:\bwhats[ \t]*app\b|\bsms\b)`, MediumWhatsApp),
	rule(`हार्ड[ \t]*(?:कॉपी|प्रत)|समक्ष|हस्तपोच|हस्ते|(?i:\bhard[ \t]*copy\b|\bby[ \t]+hand\b)`, MediumHardCopy),
}

var (
	digitalContextKeywords = []string{"pdf", "scan", "digital", "संगणक", "स्कॅन"}
	postalContextKeywords  = []string{"डाक", "पोस्ट", "वितरण", "delivery"}
)

// MatchMedium evaluates the medium table, then the keyword context.
func MatchMedium(text string) Match {
	if m := mediumTable.Match(text); m.Matched {
		return m
	}
	lower := strings.ToLower(text)
	if containsAny(lower, digitalContextKeywords) {
		return Match{Matched: true, Label: MediumSoftCopy}
	}
	if containsAny(lower, postalContextKeywords) {
		return Match{Matched: true, Label: MediumHardCopy}
	}
	return Match{}
}

// ClassifyMedium returns the medium label, DefaultMedium when nothing matched.
func ClassifyMedium(text string) string {
	return MatchMedium(text).Or(DefaultMedium)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
