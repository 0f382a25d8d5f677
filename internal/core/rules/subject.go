package rules

import (
	"regexp"
	"strings"
)

var subjectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^[ \t]*विषय(?:[ \t]*[:：\-–—.]+|[ \t]+)[ \t]*([^\n]+)$`),
	regexp.MustCompile(`विषय[ \t]*[:：\-–—]+[ \t]*([^\n]+)`),
	// a dash only counts when spaced, so "Sub-Divisional" is not a marker
	regexp.MustCompile(`(?im:^[ \t]*(?:subject|sub)(?:[ \t]*[:.]|[ \t]*[-–—]+[ \t]|[ \t]+[-–—]+)[ \t]*([^\n]+))`),
}

const subjectCutset = " \t:：-–—.,"

// ExtractSubject returns the text following the subject marker, or "".
func ExtractSubject(text string) string {
	for _, re := range subjectPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if s := strings.Trim(cleanField(m[1]), subjectCutset); s != "" {
			return s
		}
	}
	return ""
}
