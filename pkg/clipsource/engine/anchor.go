package engine

// matchExactOrAnchor tries the exact full-phrase match, then contiguous
// n-gram anchors at 12, 10 and 8 words. Stages are attempted in strict
// order and the first success wins: a longer anchor is stronger evidence
// even when a shorter one would also hit. Returns nil when nothing anchors.
func matchExactOrAnchor(queryTokens []string, ix *Index) *Match {
	// Full snippet as a contiguous token run (tightest possible evidence).
	if positions := ix.Lookup(queryTokens); len(positions) > 0 {
		startPos := positions[0]
		endPos := startPos + len(queryTokens) - 1
		start, end := ix.Span(startPos, endPos)
		return &Match{
			StartPos:   startPos,
			EndPos:     endPos,
			Start:      start,
			End:        end,
			Confidence: EvidenceExactPhrase.BaseConfidence(),
			Coverage:   1,
			Similarity: 1,
			Evidence:   EvidenceExactPhrase,
		}
	}

	for _, n := range anchorLengths {
		if len(queryTokens) < n {
			continue
		}
		for i := 0; i+n <= len(queryTokens); i++ {
			positions := ix.Lookup(queryTokens[i : i+n])
			if len(positions) == 0 {
				continue
			}
			// First query n-gram that hits, at its earliest transcript
			// occurrence. Deterministic across runs.
			startPos := positions[0]
			endPos := startPos + n - 1
			start, end := ix.Span(startPos, endPos)

			evidence := anchorEvidence(n)
			coverage := float64(n) / float64(len(queryTokens))
			if coverage > 1 {
				coverage = 1
			}
			return &Match{
				StartPos:   startPos,
				EndPos:     endPos,
				Start:      start,
				End:        end,
				Confidence: evidence.BaseConfidence(),
				Coverage:   coverage,
				Similarity: 1,
				Evidence:   evidence,
			}
		}
	}

	return nil
}

// Tightening bounds: inside an accepted fuzzy span, look for shared runs of
// at least tightenMinN tokens, preferring the longest up to tightenMaxN.
const (
	tightenMinN = 4
	tightenMaxN = 12
)

// longestSharedNgram finds the longest contiguous n-gram, between maxN and
// minN tokens, shared by queryTokens and words[lo..hi]. Returns the start
// position (into words) and length of the first such run found at the
// winning length. Ties go to the earliest query n-gram, matching the anchor
// stage's left-to-right probe order.
func longestSharedNgram(queryTokens, words []string, lo, hi, minN, maxN int) (int, int, bool) {
	if len(queryTokens) == 0 || lo > hi {
		return 0, 0, false
	}
	if maxN > len(queryTokens) {
		maxN = len(queryTokens)
	}
	if span := hi - lo + 1; maxN > span {
		maxN = span
	}

	for n := maxN; n >= minN; n-- {
		// Index the span's n-grams by first occurrence.
		index := make(map[string]int)
		for i := lo; i+n-1 <= hi; i++ {
			key := joinGram(words[i : i+n])
			if _, ok := index[key]; !ok {
				index[key] = i
			}
		}
		for j := 0; j+n <= len(queryTokens); j++ {
			if pos, ok := index[joinGram(queryTokens[j:j+n])]; ok {
				return pos, n, true
			}
		}
	}
	return 0, 0, false
}

func joinGram(gram []string) string {
	total := len(gram) - 1
	for _, w := range gram {
		total += len(w)
	}
	b := make([]byte, 0, total)
	for i, w := range gram {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, w...)
	}
	return string(b)
}
