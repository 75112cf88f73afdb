package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

func CollapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// SanitizeUnit reduces a unit token to a canonical comparable form: NFKC
// normalization, lowercase, no whitespace, and the micro sign collapsed to
// ASCII "u" so that "/uL", "/µL" and "/μL" all compare equal.
func SanitizeUnit(input string) string {
	s := norm.NFKC.String(input)
	s = strings.ToLower(s)
	s = reSpaces.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "µ", "u")
	s = strings.ReplaceAll(s, "μ", "u")
	return s
}

// SimilarityScore rates how close two strings are on a 0-100 scale using
// edit distance over the longer length. Case and surrounding whitespace are
// ignored; identical strings score 100.
func SimilarityScore(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 100
	}
	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein(ra, rb)
	score := 100 - (100*dist+longest/2)/longest
	if score < 0 {
		score = 0
	}
	return score
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
