package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/letters-tracker/constants"
)

// officePatterns are title-anchored and tried in order.
var officePatterns = []*regexp.Regexp{
	regexp.MustCompile(`जिल्हाधिकारी[ \t]*(?:व|आणि)[ \t]*जिल्हा[ \t]*दंडाधिकारी[ \t]*(?:यांचे[ \t]*)?कार्यालय[^\n]*`),
	regexp.MustCompile(`जिल्हाधिकारी[ \t]*(?:यांचे[ \t]*)?कार्यालय[^\n]*`),
	regexp.MustCompile(`(?:विशेष[ \t]*)?पोलीस[ \t]*महानिरीक्षक[^\n]{0,40}?कार्यालय[^\n]*`),
	regexp.MustCompile(`(?:अपर[ \t]*)?पोलीस[ \t]*अधीक्षक[ \t]*(?:यांचे[ \t]*)?कार्यालय[^\n]*`),
	regexp.MustCompile(`उप[ \t]*विभागीय[ \t]*पोलीस[ \t]*अधिकारी[ \t]*(?:यांचे[ \t]*)?(?:कार्यालय[^\n]*|,[^\n]*)`),
	regexp.MustCompile(`पोलीस[ \t]*आयुक्त(?:ालय|[ \t]*कार्यालय)[^\n]*`),
	regexp.MustCompile(`[^\n,]{0,30}पोलीस[ \t]*(?:स्टेशन|ठाणे)[^\n]*`),
	regexp.MustCompile(`(?:मुख्य[ \t]*कार्यकारी[ \t]*अधिकारी[ \t]*,?[ \t]*)?जिल्हा[ \t]*परिषद[^\n]*`),
	regexp.MustCompile(`(?:तहसील[ \t]*कार्यालय|तहसीलदार[ \t]*(?:यांचे[ \t]*)?कार्यालय)[^\n]*`),
	regexp.MustCompile(`(?i:office[ \t]+of[ \t]+the[ \t]+[^\n]+)`),
	regexp.MustCompile(`[^\n]{0,60}कार्यालय[^\n]{0,60}`),
	regexp.MustCompile(`[^\n]{0,60}विभाग[^\n]{0,40}`),
	regexp.MustCompile(`[^\n]{0,60}मंत्रालय[^\n]{0,40}`),
}

// officeFallbackPatterns are looser keyword lines used when no title matched.
var officeFallbackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:[^\n]*\b(?:office|department|ministry|police[ \t]+station)\b[^\n]*)`),
	regexp.MustCompile(`[^\n]*(?:शाखा|कक्ष|आयोग|महामंडळ)[^\n]*`),
	regexp.MustCompile(`[^\n]*(?:महानगरपालिका|महानगर[ \t]*पालिका|नगर[ \t]*परिषद|नगर[ \t]*पंचायत|ग्रामपंचायत)[^\n]*`),
}

const punctCutset = " \t,.;:-–—|।"

// ExtractOffice returns the receiving office line, or "".
func ExtractOffice(text string) string {
	if s := firstOffice(officePatterns, text); s != "" {
		return s
	}
	return firstOffice(officeFallbackPatterns, text)
}

func firstOffice(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			s := strings.Trim(cleanField(captured(m)), punctCutset)
			if utf8.RuneCountInString(s) > 5 {
				return s
			}
		}
	}
	return ""
}

var officeTypeTable = Table{
	rule(`विशेष[ \t]*पोलीस[ \t]*महानिरीक्षक|(?i:special[ \t]+inspector[ \t]+general)|\bI\.?G\.?P\.?\b`, string(constants.OfficeTypeIGP)),
	rule(`उप[ \t]*विभागीय[ \t]*पोलीस[ \t]*अधिकारी|उप[ \t]*पोलीस[ \t]*अधीक्षक|\bS\.?D\.?P\.?O\.?\b|(?i:sub[ \t\-]*divisional[ \t]+police[ \t]+officer)`, string(constants.OfficeTypeSDPO)),
	rule(`(?:अपर[ \t]*)?पोलीस[ \t]*अधीक्षक|(?i:superintendent[ \t]+of[ \t]+police)`, string(constants.OfficeTypeSP)),
	rule(`पोलीस[ \t]*(?:स्टेशन|ठाणे)|पो\.[ \t]*स्टे\.|(?i:police[ \t]+station)`, string(constants.OfficeTypePoliceStation)),
	rule(`(?:प्रभारी[ \t]*अधिकारी|ठाणे[ \t]*अंमलदार)|(?i:\bstation[ \t]+house[ \t]+officer\b|\bS\.?H\.?O\.?\b)`, string(constants.OfficeTypePoliceStation)),
}

// officeTypeKeywords is the contains-check used when no table rule matched.
var officeTypeKeywords = []struct {
	keywords []string
	typ      constants.OfficeType
}{
	{[]string{"महानिरीक्षक", "inspector general"}, constants.OfficeTypeIGP},
	{[]string{"अधीक्षक", "superintendent"}, constants.OfficeTypeSP},
	{[]string{"उप विभागीय", "sub divisional"}, constants.OfficeTypeSDPO},
	{[]string{"पोलीस स्टेशन", "police station"}, constants.OfficeTypePoliceStation},
}

// MatchOfficeType resolves the office type; it never guesses.
func MatchOfficeType(text string) Match {
	if m := officeTypeTable.Match(text); m.Matched {
		return m
	}
	lower := strings.ToLower(cleanField(text))
	for _, k := range officeTypeKeywords {
		for _, kw := range k.keywords {
			if strings.Contains(lower, kw) {
				return Match{Matched: true, Label: string(k.typ)}
			}
		}
	}
	return Match{}
}

// ResolveOfficeType returns one of IGP, SP, SDPO, Police Station or "".
func ResolveOfficeType(text string) constants.OfficeType {
	t, _ := constants.ParseOfficeType(MatchOfficeType(text).Label)
	return t
}

// officeNameTable only knows the served districts.
var officeNameTable = Table{
	rule(`अहिल्यानगर|अहमदनगर|(?i:ahilyanagar|ahmednagar)`, string(constants.OfficeAhilyanagar)),
	rule(`पुणे[ \t]*ग्रामीण|(?i:pune[ \t]+rural)`, string(constants.OfficePuneRural)),
	rule(`जळगाव|(?i:jalgaon)`, string(constants.OfficeJalgaon)),
	rule(`नंदुरबार|(?i:nandurbar)`, string(constants.OfficeNandurbar)),
	rule(`नाशिक[ \t]*ग्रामीण|(?i:nashik[ \t]+rural)`, string(constants.OfficeNashikRural)),
}

// ResolveOfficeName returns one of the served offices, or OfficeNone for anything else.
func ResolveOfficeName(text string) constants.OfficeName {
	n, ok := constants.ParseOfficeName(officeNameTable.Match(text).Label)
	if !ok {
		return constants.OfficeNone
	}
	return n
}
