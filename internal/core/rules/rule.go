package rules

import "regexp"

// Rule maps a pattern to the label it assigns.
type Rule struct {
	Pattern *regexp.Regexp
	Label   string
}

// Table is an ordered rule list. Order is significant: the first rule whose
// pattern matches anywhere in the text decides the label.
type Table []Rule

// Match is the outcome of evaluating a Table.
type Match struct {
	Matched bool
	Label   string
}

// Or returns the matched label, or def when nothing matched.
func (m Match) Or(def string) string {
	if m.Matched {
		return m.Label
	}
	return def
}

func rule(expr, label string) Rule {
	return Rule{Pattern: regexp.MustCompile(expr), Label: label}
}

// Match evaluates the table in declared order and stops at the first hit.
func (t Table) Match(text string) Match {
	for _, r := range t {
		if r.Pattern.MatchString(text) {
			return Match{Matched: true, Label: r.Label}
		}
	}
	return Match{}
}

// Labels lists the labels in table order, duplicates included.
func (t Table) Labels() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Label
	}
	return out
}

// captured returns group 1 of a submatch slice when the pattern has a
// capturing group that participated, else the whole match.
func captured(m []string) string {
	if len(m) > 1 && m[1] != "" {
		return m[1]
	}
	if len(m) == 0 {
		return ""
	}
	return m[0]
}
