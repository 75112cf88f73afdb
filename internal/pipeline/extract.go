package pipeline

import (
	"regexp"
	"strings"
)

// Panel labels that carry no test data and confuse the candidate pattern.
var boilerplateHeaders = []string{"cbc:", "bc:"}

var (
	reLetterDigit = regexp.MustCompile(`([a-z])(\d)`)
	reLineSplit   = regexp.MustCompile(`[\n;]+`)

	// Permissive first pass: a name segment, an optional colon, a numeric
	// value, an optional unit and an optional parenthesized status. Every
	// independent match inside a line is one candidate, so a line holding
	// several glued-together results yields several candidates.
	reCandidate = regexp.MustCompile(`([a-z\s()]+?)\s*:?\s*([\d,.]+)\s*([a-z\s/\x{00b5}\x{03bc}]+)?(?:\s*\(([\w\s]+)\)?)?`)
)

// ExtractCandidateLines segments raw report text into candidate test-entry
// substrings. It tolerates missing colons, glued tokens like "hgb10.2" and
// several results on one line. It never fails; malformed text simply yields
// fewer (or zero) candidates.
func ExtractCandidateLines(raw string) []string {
	text := strings.ToLower(raw)
	for _, header := range boilerplateHeaders {
		text = strings.ReplaceAll(text, header, "")
	}
	text = reLetterDigit.ReplaceAllString(text, "$1 $2")

	var out []string
	for _, line := range reLineSplit.Split(text, -1) {
		for _, m := range reCandidate.FindAllString(line, -1) {
			m = strings.TrimSpace(m)
			if m != "" {
				out = append(out, m)
			}
		}
	}
	return out
}
