package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxRecipients = 8

const (
	devName = `[\p{Devanagari}.]+(?:[ \t]+[\p{Devanagari}.]+){0,3}`

	devDesignation = `(?:विशेष[ \t]*पोलीस[ \t]*महानिरीक्षक|अपर[ \t]*पोलीस[ \t]*(?:महासंचालक|अधीक्षक)|` +
		`पोलीस[ \t]*(?:महासंचालक|महानिरीक्षक|अधीक्षक|उप[ \t]*अधीक्षक|उपअधीक्षक|उपनिरीक्षक|उप[ \t]*निरीक्षक|निरीक्षक|आयुक्त|हवालदार|नाईक|पाटील)|` +
		`सहायक[ \t]*पोलीस[ \t]*(?:उपनिरीक्षक|निरीक्षक)|उप[ \t]*विभागीय[ \t]*(?:पोलीस[ \t]*)?अधिकारी|` +
		`अपर[ \t]*जिल्हाधिकारी|निवासी[ \t]*उपजिल्हाधिकारी|उपजिल्हाधिकारी|जिल्हाधिकारी|नायब[ \t]*तहसीलदार|तहसीलदार|` +
		`गटविकास[ \t]*अधिकारी|मुख्य[ \t]*कार्यकारी[ \t]*अधिकारी|मुख्याधिकारी|प्रभारी[ \t]*अधिकारी|कक्ष[ \t]*अधिकारी|` +
		`अवर[ \t]*सचिव|उप[ \t]*सचिव|सरपंच|ग्रामसेवक)`

	engDesignation = `(?:Special[ \t]+Inspector[ \t]+General[ \t]+of[ \t]+Police|Inspector[ \t]+General[ \t]+of[ \t]+Police|` +
		`(?:Additional[ \t]+|Deputy[ \t]+)?Superintendent[ \t]+of[ \t]+Police|Sub[ \t\-]*Divisional[ \t]+(?:Police[ \t]+)?Officer|` +
		`Commissioner[ \t]+of[ \t]+Police|(?:Assistant[ \t]+)?Police[ \t]+(?:Sub[ \t\-]*)?Inspector|` +
		`District[ \t]+Collector|District[ \t]+Magistrate|Collector|Tahsildar|Officer[ \t]+In[ \t\-]*Charge)`

	commonSurnames = `(?:पाटील|देशमुख|जाधव|पवार|शिंदे|कुलकर्णी|जोशी|चव्हाण|गायकवाड|कदम|भोसले|देशपांडे|सावंत|मोरे|वाघ|काळे|साळुंखे|थोरात)`
)

type recipientKind int

const (
	// whole match is the candidate
	recipientTitle recipientKind = iota
	// group 1 is the name, group 2 the designation
	recipientPair
)

type recipientRule struct {
	re   *regexp.Regexp
	kind recipientKind
}

func titleRule(expr string) recipientRule {
	return recipientRule{re: regexp.MustCompile(expr), kind: recipientTitle}
}

func pairRule(expr string) recipientRule {
	return recipientRule{re: regexp.MustCompile(expr), kind: recipientPair}
}

// addressingRules cover the ways a letter names its addressee.
var addressingRules = []recipientRule{
	titleRule(`मा\.[ \t]*[^\n,।]{2,40}?[ \t]*साहेब`),
	pairRule(`(?:श्रीमती|श्री|कु|सौ)\.?[ \t]*(` + devName + `)[ \t]*,[ \t]*(` + devDesignation + `)`),
	pairRule(`(?:डॉ|ॲड|अ‍ॅड|अॅड)\.?[ \t]*(` + devName + `)[ \t]*,[ \t]*([\p{Devanagari}][\p{Devanagari} \t]{2,40})`),
	pairRule(`((?:Dr|Adv|Mr|Mrs|Ms|Shri|Smt)\.?[ \t]+[A-Z][A-Za-z.]*(?:[ \t]+[A-Z][A-Za-z.]*){0,3})[ \t]*,[ \t]*([A-Z][A-Za-z .&]{2,60})`),
	titleRule(devDesignation + `[ \t]*,[ \t]*[\p{Devanagari}]+(?:[ \t]+[\p{Devanagari}]+)?`),
	pairRule(`(` + devName + `)[ \t]*,[ \t]*(` + devDesignation + `)`),
	pairRule(`(` + devName + `)[ \t]*,[ \t]*([\p{Devanagari}]+[ \t]*विभाग)(?:[^\p{Devanagari}]|$)`),
	pairRule(`\([ \t]*([\p{Devanagari}A-Za-z.][\p{Devanagari}A-Za-z. \t]{3,40}?)[ \t]*\)[ \t]*\n[ \t]*([^\n]{3,60})`),
	pairRule(`(?:श्रीमती|श्री|कु)\.?[ \t]*(` + devName + `)[ \t]*\([ \t]*([^\n)]{3,40})\)`),
	titleRule(`(?:(?:श्रीमती|श्री)\.?[ \t]*)?[\p{Devanagari}.]+[ \t]+[\p{Devanagari}.]+[ \t]+` + commonSurnames),
	titleRule(`मा\.[ \t]*` + devDesignation + `[^\n]{0,40}`),
	titleRule(`(?i:` + engDesignation + `[ \t]*,[ \t]*[A-Za-z]+(?:[ \t]+[A-Za-z]+)?)`),
}

// hierarchyRules pick up formal English titles, the police hierarchy and departments.
var hierarchyRules = []recipientRule{
	titleRule(`(?i:\bThe[ \t]+(?:` + engDesignation + `|Director|Secretary|Registrar|Chairman|Commissioner)[^\n,]{0,40})`),
	titleRule(`(?:पोलीस[ \t]*महासंचालक|अपर[ \t]*पोलीस[ \t]*महासंचालक|विशेष[ \t]*पोलीस[ \t]*महानिरीक्षक|अपर[ \t]*पोलीस[ \t]*अधीक्षक|पोलीस[ \t]*अधीक्षक|उप[ \t]*विभागीय[ \t]*पोलीस[ \t]*अधिकारी|पोलीस[ \t]*निरीक्षक)(?:[ \t]*,[ \t]*[\p{Devanagari}]+)?`),
	titleRule(`[\p{Devanagari}]+[ \t]+(?:विभाग|शाखा)(?:[ \t]*,[ \t]*[\p{Devanagari}]+|[ \t.,\n]|$)`),
}

var (
	reToBlockStart  = regexp.MustCompile(`^(?:(?:प्रति|प्रती)(?:[ \t]*[,:][ \t]*|[ \t]+|$)|(?i:to)(?:[ \t]*[,:][ \t]*|$))(.*)$`)
	reBlockEnd      = regexp.MustCompile(`^(?:विषय|संदर्भ|महोदय|(?i:sub(?:ject)?(?:[ \t]*[:.]|[ \t]*[-–—][ \t]|[ \t]+[-–—])|ref[ \t]*[:.]|sir\b|madam\b))`)
	reListNumbering = regexp.MustCompile(`^(?:[0-9०-९]{1,2}|[a-zA-Z]|[क-ह])[ \t]*[.)][ \t]*`)
	reSignoffMarker = regexp.MustCompile(`^(?:(?:आपला|आपली|आपले)[ \t]*(?:विश्वासू|नम्र)|(?i:yours[ \t]+(?:faithfully|sincerely|truly)))`)
	reEndorseMarker = regexp.MustCompile(`^(?:प्रतिलिपी|प्रत|(?i:copy[ \t]+to|c\.c\.|cc))(?:[ \t]*[:,\-][ \t]*|[ \t]+|$)`)
	reHonorific     = regexp.MustCompile(`^(?:श्रीमती|श्री|कु|सौ)(?:\.[ \t]*|[ \t]+)`)

	reNumericOnly = regexp.MustCompile(`^[0-9०-९ \t/\-.,+()]+$`)
	reURLOrEmail  = regexp.MustCompile(`(?i:https?://|www\.|@|\.com\b|\.gov\.in\b|\.nic\.in\b)`)
)

var recipientNoiseMarkers = []string{
	"मो.", "मोबाइल", "मोबाईल", "दूरध्वनी", "फोन", "दिनांक", "तारीख", "दि.", "विषय", "जा.क्र",
	"mo.", "mob", "phone", "tel.", "tel:", "date", "e-mail", "email", "ईमेल", "ई-मेल",
}

// ExtractRecipients returns up to eight distinct "name, designation" entries or titles, pipe-joined.
func ExtractRecipients(text string) string {
	return strings.Join(findRecipients(text), "|")
}

func findRecipients(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var candidates []string
	candidates = append(candidates, applyRecipientRules(addressingRules, text)...)
	candidates = append(candidates, toBlockEntries(text)...)
	candidates = append(candidates, applyRecipientRules(hierarchyRules, text)...)
	candidates = append(candidates, signatureEntries(text)...)

	var out []string
	for _, c := range candidates {
		c = normalizeRecipient(c)
		if !acceptRecipient(c) {
			continue
		}
		out = mergeRecipient(out, c)
	}
	if len(out) > maxRecipients {
		out = out[:maxRecipients]
	}
	return out
}

// mergeRecipient adds c unless an accepted entry already contains it. When c
// extends accepted entries, it takes the place of the first and the others go.
func mergeRecipient(out []string, c string) []string {
	lc := strings.ToLower(c)
	for _, e := range out {
		if strings.Contains(strings.ToLower(e), lc) {
			return out
		}
	}
	merged := make([]string, 0, len(out)+1)
	placed := false
	for _, e := range out {
		if !strings.Contains(lc, strings.ToLower(e)) {
			merged = append(merged, e)
			continue
		}
		if !placed {
			merged = append(merged, c)
			placed = true
		}
	}
	if !placed {
		merged = append(merged, c)
	}
	return merged
}

func applyRecipientRules(rs []recipientRule, text string) []string {
	var out []string
	for _, r := range rs {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			switch r.kind {
			case recipientPair:
				name := strings.Trim(cleanField(m[1]), punctCutset)
				desig := strings.Trim(cleanField(m[2]), punctCutset)
				if name == "" || desig == "" {
					continue
				}
				out = append(out, name+", "+desig)
			default:
				out = append(out, m[0])
			}
		}
	}
	return out
}

// toBlockEntries reads the addressee block after "प्रति"/"To". Numbered
// entries are separate recipients; unnumbered lines form one entry.
func toBlockEntries(text string) []string {
	lines := strings.Split(text, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		m := reToBlockStart.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		var block []string
		if rest := strings.TrimSpace(m[1]); rest != "" {
			block = append(block, rest)
		}
		for j := i + 1; j < len(lines) && j <= i+6; j++ {
			ln := strings.TrimSpace(lines[j])
			if ln == "" {
				continue
			}
			if reBlockEnd.MatchString(ln) {
				break
			}
			if loc := reListNumbering.FindStringIndex(ln); loc != nil {
				out = append(out, ln[loc[1]:])
				continue
			}
			block = append(block, strings.Trim(ln, punctCutset))
		}
		if len(block) > 0 {
			out = append(out, strings.Join(block, ", "))
		}
	}
	return out
}

// signatureEntries collects the lines under a sign-off or an endorsement marker.
func signatureEntries(text string) []string {
	lines := strings.Split(text, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		ln := strings.TrimSpace(lines[i])
		var span int
		switch {
		case reSignoffMarker.MatchString(ln):
			span = 3
		case reEndorseMarker.MatchString(ln):
			if rest := strings.TrimSpace(reEndorseMarker.ReplaceAllString(ln, "")); rest != "" {
				out = append(out, rest)
			}
			span = 5
		default:
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+span; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if reSignoffMarker.MatchString(next) || reEndorseMarker.MatchString(next) {
				break
			}
			out = append(out, reListNumbering.ReplaceAllString(next, ""))
		}
	}
	return out
}

func normalizeRecipient(s string) string {
	s = strings.Trim(cleanField(s), punctCutset+"()")
	s = reHonorific.ReplaceAllString(s, "")
	return strings.Trim(s, punctCutset)
}

func acceptRecipient(s string) bool {
	if utf8.RuneCountInString(s) <= 5 {
		return false
	}
	if reNumericOnly.MatchString(s) || reURLOrEmail.MatchString(s) {
		return false
	}
	return !containsAny(strings.ToLower(s), recipientNoiseMarkers)
}
