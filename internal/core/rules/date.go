package rules

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultYearWindow bounds how far a letter year may be from the current year.
const DefaultYearWindow = 5

const (
	dateDigits  = `[0-9०-९]`
	numericDate = dateDigits + `{1,2}[ \t]*[/\-.][ \t]*` + dateDigits + `{1,2}[ \t]*[/\-.][ \t]*` + dateDigits + `{4}`
	dateLabel   = `(?:दिनांक|दि\.|तारीख|(?i:dated|date))`
)

const monthNames = `जानेवारी|फेब्रुवारी|मार्च|एप्रिल|मे|जून|जुलै|ऑगस्ट|सप्टेंबर|ऑक्टोबर|नोव्हेंबर|डिसेंबर|` +
	`(?i:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

const textualDate = dateDigits + `{1,2}[ \t]*(?:` + monthNames + `)[ \t,]*` + dateDigits + `{4}`

// datePatterns are tried in order; group 1 holds the date token.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(dateLabel + `[ \t]*[:\-–]?[ \t]*(` + numericDate + `)`),
	regexp.MustCompile(dateLabel + `[ \t]*[:\-–]?[ \t]*(` + textualDate + `)`),
	regexp.MustCompile(`(` + numericDate + `)`),
	regexp.MustCompile(`(` + textualDate + `)`),
	regexp.MustCompile(`\b([0-9]{4}-[0-9]{2}-[0-9]{2})\b`),
}

var reYear = regexp.MustCompile(`[0-9]{4}`)

// ExtractDate returns the first plausible date token relative to the current year.
func ExtractDate(text string) string {
	return ExtractDateAt(text, time.Now(), DefaultYearWindow)
}

// ExtractDateAt accepts a token only when it carries a four-digit year within
// window years of now. The token is returned as written.
func ExtractDateAt(text string, now time.Time, window int) string {
	if window < 0 {
		window = 0
	}
	for _, re := range datePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			tok := strings.TrimSpace(captured(m))
			if plausibleYear(tok, now.Year(), window) {
				return tok
			}
		}
	}
	return ""
}

func plausibleYear(tok string, current, window int) bool {
	for _, y := range reYear.FindAllString(NormalizeDigits(tok), -1) {
		year, err := strconv.Atoi(y)
		if err != nil {
			continue
		}
		if year >= current-window && year <= current+window {
			return true
		}
	}
	return false
}
