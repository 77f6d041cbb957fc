package similarity

import (
	"math"

	"github.com/antzucaro/matchr"
)

// Scorer computes the metric vector for a query and a candidate.
type Scorer interface {
	Score(query, candidate string) Scores
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(query, candidate string) Scores

// Score implements Scorer.
func (f ScorerFunc) Score(query, candidate string) Scores {
	return f(query, candidate)
}

// Default is the thefuzz-compatible scorer.
var Default Scorer = ScorerFunc(Score)

// Score computes all five metrics for a and b.
func Score(a, b string) Scores {
	sortedA, sortedB := sortedTokens(a), sortedTokens(b)
	return Scores{
		MetricRatio:                 round(indelRatio([]rune(a), []rune(b))),
		MetricPartialRatio:          round(partialRatio([]rune(a), []rune(b))),
		MetricTokenSortRatio:        round(indelRatio([]rune(sortedA), []rune(sortedB))),
		MetricTokenSetRatio:         round(tokenSetRatio(a, b)),
		MetricPartialTokenSortRatio: round(partialRatio([]rune(sortedA), []rune(sortedB))),
	}
}

// Ratio returns the normalized Indel similarity of a and b.
func Ratio(a, b string) int {
	return round(indelRatio([]rune(a), []rune(b)))
}

// PartialRatio returns the best Ratio of the shorter string against
// windows of the longer one.
func PartialRatio(a, b string) int {
	return round(partialRatio([]rune(a), []rune(b)))
}

// indelRatio is 100 * (1 - indel distance / total length). The Indel
// distance of two strings is len(a)+len(b)-2*LCS(a,b).
func indelRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	lcs := matchr.LongestCommonSubsequence(string(a), string(b))
	return 100 * float64(2*lcs) / float64(total)
}

func partialRatio(a, b []rune) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		if len(b) == 0 {
			return 100
		}
		return 0
	}

	best := partialWindows(a, b)
	if best != 100 && len(a) == len(b) {
		if rev := partialWindows(b, a); rev > best {
			best = rev
		}
	}
	return best
}

// partialWindows slides needle over haystack (len(needle) <= len(haystack)).
// Prefix windows shorter than the needle, full-length windows and the suffix
// windows are scored. Windows whose boundary rune does not occur in the
// needle are skipped.
func partialWindows(needle, haystack []rune) float64 {
	n, h := len(needle), len(haystack)
	chars := make(map[rune]struct{}, n)
	for _, r := range needle {
		chars[r] = struct{}{}
	}
	has := func(r rune) bool {
		_, ok := chars[r]
		return ok
	}

	best := 0.0
	for i := 1; i < n; i++ {
		if !has(haystack[i-1]) {
			continue
		}
		if r := indelRatio(needle, haystack[:i]); r > best {
			best = r
			if best == 100 {
				return best
			}
		}
	}
	for i := 0; i < h-n; i++ {
		if !has(haystack[i+n-1]) {
			continue
		}
		if r := indelRatio(needle, haystack[i:i+n]); r > best {
			best = r
			if best == 100 {
				return best
			}
		}
	}
	for i := h - n; i < h; i++ {
		if !has(haystack[i]) {
			continue
		}
		if r := indelRatio(needle, haystack[i:]); r > best {
			best = r
			if best == 100 {
				return best
			}
		}
	}
	return best
}

// round converts a float score to the integer thefuzz reports.
func round(score float64) int {
	return int(math.RoundToEven(score))
}
