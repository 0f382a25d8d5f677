package rules

import (
	"regexp"
	"strings"
)

var (
	reCRLF         = regexp.MustCompile(`\r\n?`)
	reMarkdownImg  = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reHeading      = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*`)
	reBold         = regexp.MustCompile(`\*\*([^*]*)\*\*|__([^_]*)__`)
	reTrailingWS   = regexp.MustCompile(`(?m)[ \t]+$`)
	reBlankLineRun = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
)

// CleanText strips markdown artifacts that OCR providers emit (images,
// headings, bold) and collapses blank lines. Every extractor reads its output.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	s := reCRLF.ReplaceAllString(raw, "\n")
	s = reMarkdownImg.ReplaceAllString(s, "")
	s = reHeading.ReplaceAllString(s, "")
	s = reBold.ReplaceAllString(s, "$1$2")
	s = reTrailingWS.ReplaceAllString(s, "")
	s = reBlankLineRun.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
