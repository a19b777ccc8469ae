package diagnosis

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultConnector joins the words of a multi-word symptom.
const DefaultConnector = "_"

// NormalizeText performs Unicode normalization, drops control characters and trims whitespace.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return strings.TrimSpace(normed)
}

// NormalizeSymptom turns a raw phrase into a symptom token: lower case, with every
// run of internal whitespace or underscores replaced by a single connector, so
// "blurred vision" and "blurred_vision" agree under any connector. Blank input yields "".
func NormalizeSymptom(raw, connector string) string {
	if connector == "" {
		connector = DefaultConnector
	}
	text := NormalizeText(raw)
	if text == "" {
		return ""
	}
	text = cases.Lower(language.Und).String(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_'
	})
	return strings.Join(words, connector)
}

// NormalizeSymptoms normalizes every phrase and collapses duplicates, keeping
// first-seen order. Blank phrases are discarded.
func NormalizeSymptoms(raw []string, connector string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		token := NormalizeSymptom(r, connector)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// ParseSymptomLine splits a comma separated line of symptoms as typed at the prompt.
func ParseSymptomLine(line string) []string {
	return strings.Split(line, ",")
}
