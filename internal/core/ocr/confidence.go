package ocr

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

var (
	reDateLike    = regexp.MustCompile(`[0-9०-९]{1,2}[/.\-][0-9०-९]{1,2}[/.\-][0-9०-९]{2,4}`)
	reLetterCue   = regexp.MustCompile(`विषय|संदर्भ|जा\.?\s?क्र|दिनांक|प्रति|(?i:subject|ref\.?|date)`)
	reMobileDigit = regexp.MustCompile(`[6-9६-९][0-9०-९]{9}`)
)

// heuristicConfidence scores recognized text in 0..1 from how much it looks
// like a government letter: script mix, date, headings and contact numbers.
func heuristicConfidence(txt string) float32 {
	total := utf8.RuneCountInString(txt)
	if total == 0 {
		return 0
	}
	var letters, junk int
	for _, r := range txt {
		switch {
		case unicode.Is(unicode.Devanagari, r), unicode.IsLetter(r), unicode.IsDigit(r):
			letters++
		case unicode.IsSpace(r), unicode.IsPunct(r):
		default:
			junk++
		}
	}

	score := float32(0.2)
	if float32(letters)/float32(total) > 0.6 {
		score += 0.2
	}
	if float32(junk)/float32(total) > 0.1 {
		score -= 0.15
	}
	if reDateLike.MatchString(txt) {
		score += 0.2
	}
	if reLetterCue.MatchString(txt) {
		score += 0.2
	}
	if reMobileDigit.MatchString(txt) {
		score += 0.05
	}
	if total > 200 {
		score += 0.15
	}
	switch {
	case score > 1:
		score = 1
	case score < 0:
		score = 0
	}
	return score
}
