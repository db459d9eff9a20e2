package match

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"

	"github.com/okian/moniker/internal/domain/model"
)

// maxScore is the upper bound of the normalized similarity scale.
const maxScore = 100.0

// similarity computes the normalized similarity between a and b under the
// given method, on a 0..100 scale where 100 means identical strings.
// Comparison is case-insensitive: "ali" and "Ali" are the same name.
// The method must already be validated by the caller.
func similarity(method model.Method, a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	var score float64
	switch method {
	case model.Levenshtein:
		score = normalizedDistance(levenshtein.ComputeDistance(a, b), a, b)
	case model.DamerauLevenshtein:
		score = normalizedDistance(matchr.DamerauLevenshtein(a, b), a, b)
	case model.JaroWinkler:
		if a == b {
			score = maxScore
		} else {
			score = matchr.JaroWinkler(a, b, false) * maxScore
		}
	}
	// Clamp against float drift so callers can rely on the [0,100] contract.
	return math.Max(0, math.Min(maxScore, score))
}

// normalizedDistance rescales an edit distance to 0..100 by the longer
// operand's rune count: 1 - dist/max(len(a), len(b)), scaled.
func normalizedDistance(dist int, a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return maxScore // both empty: identical
	}
	return (1 - float64(dist)/float64(longest)) * maxScore
}
