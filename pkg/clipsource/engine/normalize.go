// Package engine locates a text snippet inside timestamped transcripts.
//
// The pipeline per transcript is: exact full-phrase match, then contiguous
// n-gram anchors at decreasing lengths, then a fuzzy sliding-window fallback.
// Per-candidate results are ranked into a single best match plus ordered
// alternatives. The engine is a pure computation: it owns no global state,
// performs no I/O, and is safe to invoke concurrently on disjoint inputs.
package engine

import "strings"

// Normalize canonicalizes text for matching: lower-case, curly quotes folded
// to ASCII apostrophes, everything outside [a-z0-9'] treated as a separator,
// whitespace collapsed. Applied identically to queries and transcripts so
// token equality is meaningful.
func Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			space = false
		case r == '\'', r == '‘', r == '’':
			b.WriteByte('\'')
			space = false
		default:
			if !space {
				b.WriteByte(' ')
				space = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Tokenize normalizes s and splits it into word tokens. Empty or
// whitespace-only input yields a nil slice.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}
