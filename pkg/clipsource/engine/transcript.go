package engine

import "clipsource/pkg/models"

// Token is one normalized word of a transcript, carrying its position and the
// timestamps of the caption segment it came from. Immutable once built.
type Token struct {
	Text  string
	Pos   int
	Start float64
	End   float64
}

// Transcript is the ordered token stream of one candidate's caption track.
// Positions are strictly increasing and timestamps non-decreasing (tokens of
// one segment share that segment's start/end).
type Transcript struct {
	tokens []Token
	words  []string
}

// NewTranscript tokenizes caption segments into a transcript. Segments that
// normalize to nothing are dropped.
func NewTranscript(segs []models.CaptionSegment) *Transcript {
	var tokens []Token
	for _, seg := range segs {
		for _, w := range Tokenize(seg.Text) {
			tokens = append(tokens, Token{
				Text:  w,
				Pos:   len(tokens),
				Start: seg.Start,
				End:   seg.End,
			})
		}
	}
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Text
	}
	return &Transcript{tokens: tokens, words: words}
}

// Len returns the number of tokens.
func (t *Transcript) Len() int {
	return len(t.tokens)
}

// Token returns the token at pos.
func (t *Transcript) Token(pos int) Token {
	return t.tokens[pos]
}

// Words returns the normalized token texts in position order. The returned
// slice is shared; callers must not mutate it.
func (t *Transcript) Words() []string {
	return t.words
}
