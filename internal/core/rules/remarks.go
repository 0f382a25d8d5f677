package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RemarksFallback is returned when the body yields nothing usable.
const RemarksFallback = "दस्तऐवजाचा मुख्य मजकूर उपलब्ध नाही"

const (
	minRemarkRunes     = 15
	minRemarkLineRunes = 25
	maxRemarkRunes     = 300
)

// remarkPatterns are subject and intent anchors, tried in order.
var remarkPatterns = append(append([]*regexp.Regexp{}, subjectPatterns...),
	regexp.MustCompile(`([^\n।]*बाबत[^\n।]*)`),
	regexp.MustCompile(`उपरोक्त[ \t]*(?:संदर्भीय[ \t]*)?विषयान्वये[ \t]*,?[ \t]*([^\n।]+)`),
	regexp.MustCompile(`कळविण्यात[ \t]*येते[ \t]*की[ \t]*,?[ \t]*([^\n।]+)`),
	regexp.MustCompile(`विनंती[ \t]*(?:करण्यात[ \t]*येते|आहे)[ \t]*की[ \t]*,?[ \t]*([^\n।]+)`),
	regexp.MustCompile(`आदेशित[ \t]*करण्यात[ \t]*येते[ \t]*की[ \t]*,?[ \t]*([^\n।]+)`),
	regexp.MustCompile(`([^\n।]*संदर्भात[^\n।]*)`),
	regexp.MustCompile(`(?i:with[ \t]+reference[ \t]+to[ \t]+([^\n]+))`),
	regexp.MustCompile(`(?i:it[ \t]+is[ \t]+(?:hereby[ \t]+)?(?:informed|requested|submitted)[ \t]+that[ \t]+([^\n]+))`),
	regexp.MustCompile(`(?i:\bregarding[ \t]+([^\n]+))`),
)

var reReferencePrefix = regexp.MustCompile(`^(?:जा\.?[ \t]*क्र\.?|क्र\.?|संदर्भ[ \t]*क्र\.?|(?i:ref(?:erence)?\.?[ \t]*no\.?|no\.))`)

// looksLikeReference reports reference-number shaped text such as "जा.क्र./पोअ/123/2024".
func looksLikeReference(s string) bool {
	s = strings.TrimSpace(NormalizeDigits(s))
	if reReferencePrefix.MatchString(s) {
		return true
	}
	var numeric, total int
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsDigit(r) || r == '/' || r == '-' || r == '.' {
			numeric++
		}
	}
	return total > 0 && numeric*2 >= total
}

var remarkKeywords = []string{
	"साहित्य", "उपकरणे", "संगणक", "धोरण", "वाटप", "करणे", "मागणी",
	"विनंती", "बाबत", "संदर्भात", "अनुदान", "योजना", "कार्यक्रम",
}

var remarkNoiseMarkers = []string{
	"कार्यालय", "@", "www", "http", "मो.", "mo.", "मोबाइल", "मोबाईल", "फोन", "दूरध्वनी", "ई-मेल", "email", "e-mail",
}

// SynthesizeRemarks returns a one-line summary of the letter. It is never empty.
func SynthesizeRemarks(text string) string {
	if s, ok := remarkFromPatterns(text); ok {
		return s
	}
	if s, ok := remarkFromLines(text); ok {
		return s
	}
	return RemarksFallback
}

func remarkFromPatterns(text string) (string, bool) {
	for _, re := range remarkPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			s := strings.Trim(cleanField(m[1]), subjectCutset)
			if utf8.RuneCountInString(s) > minRemarkRunes && !looksLikeReference(s) {
				return s, true
			}
		}
	}
	return "", false
}

func remarkFromLines(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = cleanField(line)
		if utf8.RuneCountInString(line) <= minRemarkLineRunes {
			continue
		}
		if containsAny(strings.ToLower(line), remarkNoiseMarkers) {
			continue
		}
		if !containsAny(line, remarkKeywords) {
			continue
		}
		return truncateRunes(line, maxRemarkRunes), true
	}
	return "", false
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
