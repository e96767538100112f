package engine

import "strings"

// Index gives exact n-gram lookup over one transcript. Position lists per
// n-gram are built lazily per requested length and cached for the life of the
// index. An index belongs to a single matching call and is never shared
// across transcripts or goroutines.
type Index struct {
	tr    *Transcript
	grams map[int]map[string][]int
}

// NewIndex builds an index over tr.
func NewIndex(tr *Transcript) *Index {
	return &Index{
		tr:    tr,
		grams: make(map[int]map[string][]int),
	}
}

// Len returns the transcript's token count.
func (ix *Index) Len() int {
	return ix.tr.Len()
}

// TokenAt returns the token at pos.
func (ix *Index) TokenAt(pos int) Token {
	return ix.tr.Token(pos)
}

// Words returns the transcript's normalized token texts.
func (ix *Index) Words() []string {
	return ix.tr.Words()
}

// Span maps an inclusive token position range to its timestamp range:
// the start of the first token's segment and the end of the last token's.
func (ix *Index) Span(startPos, endPos int) (float64, float64) {
	return ix.tr.Token(startPos).Start, ix.tr.Token(endPos).End
}

// Ngrams returns the mapping from joined n-gram to ascending start positions
// for length n, building it on first request. Callers must not mutate it.
func (ix *Index) Ngrams(n int) map[string][]int {
	if table, ok := ix.grams[n]; ok {
		return table
	}
	words := ix.tr.Words()
	table := make(map[string][]int)
	for i := 0; i+n <= len(words); i++ {
		key := strings.Join(words[i:i+n], " ")
		table[key] = append(table[key], i)
	}
	ix.grams[n] = table
	return table
}

// Lookup returns the ascending transcript start positions where gram occurs
// verbatim, or nil.
func (ix *Index) Lookup(gram []string) []int {
	if len(gram) == 0 || len(gram) > ix.tr.Len() {
		return nil
	}
	return ix.Ngrams(len(gram))[strings.Join(gram, " ")]
}
