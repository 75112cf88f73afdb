package pipeline

import (
	"log/slog"
	"math"

	"medreport/internal"
	"medreport/internal/catalog"
	"medreport/internal/config"
	"medreport/internal/util"
)

type Normalizer struct {
	cfg config.Config
	cat *catalog.Catalog
}

func NewNormalizer(cfg config.Config, cat *catalog.Catalog) *Normalizer {
	return &Normalizer{cfg: cfg, cat: cat}
}

// Normalize validates candidate lines into structured records. A candidate
// survives only if its name resolves, its unit (when present) matches the
// catalog and its status resolves; any rejection drops the whole candidate.
// Accepted records keep input order. Confidence is accepted/attempted,
// rounded to two decimals, 0.0 when there were no candidates.
func (n *Normalizer) Normalize(lines []string) internal.NormalizationResult {
	tests := make([]internal.NormalizedTest, 0, len(lines))

	for _, line := range lines {
		fields, ok := parseFields(line)
		if !ok {
			continue
		}

		match, ok := ResolveName(fields.name, n.cat, n.cfg.MatchScoreCutoff)
		if !ok {
			slog.Warn("no confident catalog match", "raw", fields.name, "bestGuess", match.Name, "score", match.Score)
			continue
		}
		entry, ok := n.cat.Get(match.Name)
		if !ok {
			continue
		}

		if fields.unit != "" && util.SanitizeUnit(fields.unit) != util.SanitizeUnit(entry.Unit) {
			slog.Warn("unit mismatch", "test", entry.CanonicalName, "expected", entry.Unit, "got", fields.unit)
			continue
		}

		value, err := util.ParseValue(fields.value)
		if err != nil {
			continue
		}

		status, ok := ResolveStatus(fields.status, value, entry)
		if !ok {
			slog.Warn("unknown status phrase", "test", entry.CanonicalName, "phrase", fields.status)
			continue
		}

		tests = append(tests, internal.NormalizedTest{
			Name:     entry.CanonicalName,
			Value:    value,
			Unit:     entry.Unit,
			Status:   status,
			RefRange: internal.RefRange{Low: entry.RefLow, High: entry.RefHigh},
		})
	}

	confidence := 0.0
	if len(lines) > 0 {
		confidence = math.Round(float64(len(tests))/float64(len(lines))*100) / 100
	}
	return internal.NormalizationResult{Tests: tests, Confidence: confidence}
}
