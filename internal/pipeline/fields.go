package pipeline

import (
	"regexp"
	"strings"
)

// rawFields is the decomposition of one candidate line. Ephemeral; it only
// lives between the strict parse and validation.
type rawFields struct {
	name   string
	value  string
	unit   string
	status string
}

// Strict second pass over an already-extracted candidate: name, separator
// (colon or whitespace), value that may carry OCR'd o/O for zero, optional
// unit, optional parenthesized status.
var reFields = regexp.MustCompile(`(?i)([a-z\s\d.()]+?)(?:\s*:\s*|\s+)([\d,.oO]+)\s*([a-z\s/\x{00b5}\x{03bc}]+)?(?:\s*\(([\w\s]+)\))?`)

func parseFields(line string) (rawFields, bool) {
	m := reFields.FindStringSubmatch(line)
	if m == nil {
		return rawFields{}, false
	}
	return rawFields{
		name:   strings.TrimSpace(m[1]),
		value:  m[2],
		unit:   strings.TrimSpace(m[3]),
		status: strings.TrimSpace(m[4]),
	}, true
}
