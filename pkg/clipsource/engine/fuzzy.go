package engine

import "math"

// matchFuzzy slides a window of p.WindowWords tokens across the transcript at
// p.WindowStride steps, scoring each window by coverage (distinct query
// tokens present) and order-sensitive similarity. A window is only kept when
// it clears both acceptance thresholds; the calibration prefers returning no
// match over a wrong one. The winning span is trimmed to the sub-range that
// actually contains query tokens and then tightened to the longest exact
// shared n-gram inside it.
func matchFuzzy(queryTokens []string, ix *Index, p Params) *Match {
	if len(queryTokens) == 0 || ix.Len() == 0 {
		return nil
	}

	querySet := make(map[string]struct{}, len(queryTokens))
	for _, t := range queryTokens {
		querySet[t] = struct{}{}
	}

	words := ix.Words()
	width := p.WindowWords

	limit := len(words) - width + 1
	if limit < 1 {
		limit = 1
	}

	var best *Match
	for i := 0; i < limit; i += p.WindowStride {
		j := i + width
		if j > len(words) {
			j = len(words)
		}
		window := words[i:j]

		coverage := coverageRatio(querySet, window)
		if coverage < p.MinCoverage {
			continue
		}

		// Trim to the sub-range that actually contains query tokens; the
		// full window is mostly surrounding context.
		a, b := trimToMatched(querySet, window)
		similarity := p.Similarity(queryTokens, window[a:b+1])

		confidence := fuzzyConfidence(coverage, similarity)
		if confidence < p.MinConfidence {
			continue
		}

		cand := &Match{
			StartPos:   i + a,
			EndPos:     i + b,
			Confidence: confidence,
			Coverage:   coverage,
			Similarity: similarity,
			Evidence:   EvidenceFuzzyWindow,
		}
		if betterWindow(cand, best) {
			best = cand
		}
	}

	if best == nil {
		return nil
	}

	// Tighten to the longest exact shared n-gram inside the accepted span.
	// Narrows only; the span never grows past what was matched.
	if pos, n, ok := longestSharedNgram(queryTokens, words, best.StartPos, best.EndPos, tightenMinN, tightenMaxN); ok {
		if n < best.EndPos-best.StartPos+1 {
			best.StartPos = pos
			best.EndPos = pos + n - 1
			best.TightenedN = n
		}
	}

	best.Start, best.End = ix.Span(best.StartPos, best.EndPos)
	return best
}

// coverageRatio is the fraction of distinct query tokens present anywhere in
// the window. Adding query tokens to a window never decreases it.
func coverageRatio(querySet map[string]struct{}, window []string) float64 {
	if len(querySet) == 0 {
		return 0
	}
	present := make(map[string]struct{}, len(window))
	for _, w := range window {
		if _, ok := querySet[w]; ok {
			present[w] = struct{}{}
		}
	}
	return float64(len(present)) / float64(len(querySet))
}

// trimToMatched returns the inclusive sub-range [a,b] of window spanning the
// first through last token that occurs in the query. Callers must ensure the
// window contains at least one query token.
func trimToMatched(querySet map[string]struct{}, window []string) (int, int) {
	a, b := 0, len(window)-1
	for a < len(window) {
		if _, ok := querySet[window[a]]; ok {
			break
		}
		a++
	}
	for b > a {
		if _, ok := querySet[window[b]]; ok {
			break
		}
		b--
	}
	return a, b
}

// fuzzyConfidence combines coverage and similarity into a confidence score:
// the equal-weight average on a 0-100 scale, capped below the weakest anchor
// tier. Monotonic in both inputs.
func fuzzyConfidence(coverage, similarity float64) int {
	c := int(math.Round(100 * (coverage + similarity) / 2))
	if c > maxFuzzyConfidence {
		c = maxFuzzyConfidence
	}
	return c
}

// betterWindow orders retained windows by confidence, then coverage, then
// similarity, then earliest position.
func betterWindow(cand, best *Match) bool {
	if best == nil {
		return true
	}
	if cand.Confidence != best.Confidence {
		return cand.Confidence > best.Confidence
	}
	if cand.Coverage != best.Coverage {
		return cand.Coverage > best.Coverage
	}
	if cand.Similarity != best.Similarity {
		return cand.Similarity > best.Similarity
	}
	return false // earlier window wins ties; candidates arrive in position order
}
