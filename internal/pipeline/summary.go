package pipeline

import (
	"fmt"
	"strings"

	"medreport/internal"
	"medreport/internal/catalog"
)

// Summarize renders a patient-readable sentence plus one explanation per
// record. Abnormal records contribute a "{status} {name}" point; normal ones
// only an explanation. pointLimit caps how many points are spelled out before
// the rest collapse into a count.
func Summarize(tests []internal.NormalizedTest, cat *catalog.Catalog, pointLimit int) internal.SummaryResult {
	points := make([]string, 0, len(tests))
	explanations := make([]string, 0, len(tests))

	for _, test := range tests {
		if test.Status == internal.StatusNormal {
			explanations = append(explanations, fmt.Sprintf("%s: This result is within the normal range.", test.Name))
			continue
		}

		points = append(points, fmt.Sprintf("%s %s", test.Status, test.Name))

		phrase := ""
		if entry, ok := cat.Get(test.Name); ok {
			if test.Status == internal.StatusLow {
				phrase = entry.ExplanationLow
			} else {
				phrase = entry.ExplanationHigh
			}
		}
		if phrase != "" {
			explanations = append(explanations, fmt.Sprintf("%s %s", test.Name, phrase))
		} else {
			explanations = append(explanations, fmt.Sprintf("%s: No specific explanation is available for this result.", test.Name))
		}
	}

	if len(explanations) == 0 {
		explanations = []string{"No additional details are available for these results."}
	}

	return internal.SummaryResult{
		Summary:      summarySentence(points, pointLimit),
		Explanations: explanations,
	}
}

func summarySentence(points []string, limit int) string {
	switch {
	case len(points) == 0:
		return "All test results appear to be within the normal range."
	case len(points) == 1:
		return fmt.Sprintf("Your report shows %s.", points[0])
	case len(points) == 2:
		return fmt.Sprintf("Your report shows %s and %s.", points[0], points[1])
	case len(points) > limit:
		shown := strings.Join(points[:limit], ", ")
		return fmt.Sprintf("Your report shows %s, and %d more abnormal results.", shown, len(points)-limit)
	default:
		head := strings.Join(points[:len(points)-1], ", ")
		return fmt.Sprintf("Your report shows %s, and %s.", head, points[len(points)-1])
	}
}
