package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// SimilarityFunc scores how closely two token sequences match, in [0,1].
// It must be order-sensitive: 1.0 means identical sequences, not just
// identical token sets.
type SimilarityFunc func(a, b []string) float64

// LCSSimilarity is the default similarity: the longest-common-subsequence
// length of the space-joined sequences over the longer sequence's length.
func LCSSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	as := strings.Join(a, " ")
	bs := strings.Join(b, " ")
	if as == bs {
		return 1
	}
	longest := utf8.RuneCountInString(as)
	if n := utf8.RuneCountInString(bs); n > longest {
		longest = n
	}
	return float64(edlib.LCS(as, bs)) / float64(longest)
}

// JaroWinklerSimilarity is an alternative metric that weights shared prefixes
// more heavily.
func JaroWinklerSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return float64(edlib.JaroWinklerSimilarity(strings.Join(a, " "), strings.Join(b, " ")))
}
