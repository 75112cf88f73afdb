package pipeline

import (
	"medreport/internal/catalog"
	"medreport/internal/util"
)

type NameMatch struct {
	Name  string
	Score int
}

// ResolveName maps a noisy name token to a canonical catalog name. The best
// match is returned either way so callers can log the guess; ok is true only
// when its score meets the cutoff. Ties between equally scored names go to
// the lexicographically smallest, which keeps resolution deterministic.
func ResolveName(raw string, cat *catalog.Catalog, cutoff int) (NameMatch, bool) {
	best := NameMatch{Score: -1}
	for _, name := range cat.Names() {
		if score := util.SimilarityScore(raw, name); score > best.Score {
			best = NameMatch{Name: name, Score: score}
		}
	}
	if best.Score < 0 {
		return NameMatch{}, false
	}
	return best, best.Score >= cutoff
}
