package pipeline

import (
	"strings"

	"medreport/internal"
	"medreport/internal/catalog"
)

// Known spellings, abbreviations and OCR typos of status words.
var statusWords = map[string]internal.Status{
	"high":   internal.StatusHigh,
	"hgh":    internal.StatusHigh,
	"h":      internal.StatusHigh,
	"ligh":   internal.StatusHigh,
	"low":    internal.StatusLow,
	"l":      internal.StatusLow,
	"loh":    internal.StatusLow,
	"normal": internal.StatusNormal,
	"n":      internal.StatusNormal,
	"noraml": internal.StatusNormal,
}

// ResolveStatus classifies a test value. An explicit status token wins when
// it can be normalized through the typo table or contains "high"/"low"; an
// unrecognized token rejects the candidate. Without a token the status is
// derived from the reference bounds.
func ResolveStatus(statusRaw string, value float64, entry catalog.Entry) (internal.Status, bool) {
	if statusRaw != "" {
		phrase := strings.ToLower(strings.TrimSpace(statusRaw))
		if status, ok := statusWords[phrase]; ok {
			return status, true
		}
		if strings.Contains(phrase, "high") {
			return internal.StatusHigh, true
		}
		if strings.Contains(phrase, "low") {
			return internal.StatusLow, true
		}
		return "", false
	}

	switch {
	case value < entry.RefLow:
		return internal.StatusLow, true
	case value > entry.RefHigh:
		return internal.StatusHigh, true
	default:
		return internal.StatusNormal, true
	}
}
