package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipsource/pkg/models"
)

func captionSegs(step float64, texts ...string) []models.CaptionSegment {
	segs := make([]models.CaptionSegment, len(texts))
	for i, text := range texts {
		segs[i] = models.CaptionSegment{
			Start: float64(i) * step,
			End:   float64(i+1) * step,
			Text:  text,
		}
	}
	return segs
}

func TestNewTranscript(t *testing.T) {
	tr := NewTranscript(captionSegs(2.0,
		"Hello world,",
		"   ",
		"this is FINE."))

	require.Equal(t, 5, tr.Len())
	assert.Equal(t, []string{"hello", "world", "this", "is", "fine"}, tr.Words())

	first := tr.Token(0)
	assert.Equal(t, "hello", first.Text)
	assert.Equal(t, 0, first.Pos)
	assert.Equal(t, 0.0, first.Start)
	assert.Equal(t, 2.0, first.End)

	// Tokens of the whitespace-only segment are dropped; "this" comes from
	// the third segment.
	third := tr.Token(2)
	assert.Equal(t, "this", third.Text)
	assert.Equal(t, 4.0, third.Start)
	assert.Equal(t, 6.0, third.End)
}

func TestIndexLookup(t *testing.T) {
	tr := NewTranscript(captionSegs(1.0, "a b c", "a b d", "a b c"))
	ix := NewIndex(tr)

	assert.Equal(t, []int{0, 6}, ix.Lookup([]string{"a", "b", "c"}))
	assert.Equal(t, []int{3}, ix.Lookup([]string{"a", "b", "d"}))
	assert.Nil(t, ix.Lookup([]string{"z"}))
	assert.Nil(t, ix.Lookup(nil))
	assert.Nil(t, ix.Lookup([]string{"a", "b", "c", "a", "b", "d", "a", "b", "c", "x"}))
}

func TestIndexNgramsRestartable(t *testing.T) {
	tr := NewTranscript(captionSegs(1.0, "a b", "a b"))
	ix := NewIndex(tr)

	first := ix.Ngrams(2)
	second := ix.Ngrams(2)
	assert.Equal(t, first, second)
	assert.Equal(t, []int{0, 2}, first["a b"])
	assert.Equal(t, []int{1}, first["b a"])
}

func TestIndexSpan(t *testing.T) {
	tr := NewTranscript(captionSegs(2.0, "a b", "c d", "e f"))
	ix := NewIndex(tr)

	start, end := ix.Span(1, 4)
	assert.Equal(t, 0.0, start) // "b" belongs to the first segment
	assert.Equal(t, 6.0, end)   // "e" belongs to the third
}
