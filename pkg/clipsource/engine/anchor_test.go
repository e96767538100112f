package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipsource/pkg/models"
)

func TestLocateExactPhrase(t *testing.T) {
	segs := []models.CaptionSegment{
		{Start: 330.0, End: 334.0, Text: "and as I was saying back then"},
		{Start: 338.0, End: 340.0, Text: "people don't buy what you do"},
		{Start: 340.0, End: 342.0, Text: "they buy why you do it"},
		{Start: 342.0, End: 345.0, Text: "and that is the whole point"},
	}
	tr := NewTranscript(segs)

	m := Locate("People don't buy what you do, they buy why you do it.", tr, DefaultParams())
	require.NotNil(t, m)

	assert.Equal(t, EvidenceExactPhrase, m.Evidence)
	assert.Equal(t, 98, m.Confidence)
	assert.Equal(t, 1.0, m.Coverage)
	assert.Equal(t, 1.0, m.Similarity)
	assert.Equal(t, 338.0, m.Start)
	assert.Equal(t, 342.0, m.End)
	assert.Zero(t, m.TightenedN)
}

func TestLocateAnchor10(t *testing.T) {
	// The query's first ten words appear contiguously; words 11+ diverge, so
	// no 12-gram exists and anchor_10 must win before anchor_8 is tried.
	shared := "alpha bravo charlie delta echo foxtrot golf hotel india juliett"
	segs := []models.CaptionSegment{
		{Start: 10.0, End: 14.0, Text: "completely unrelated opening remarks here"},
		{Start: 14.0, End: 18.0, Text: shared},
		{Start: 18.0, End: 22.0, Text: "zulu yankee xray whiskey victor uniform"},
	}
	tr := NewTranscript(segs)

	query := shared + " kilo lima mike november"
	m := Locate(query, tr, DefaultParams())
	require.NotNil(t, m)

	assert.Equal(t, EvidenceAnchor10, m.Evidence)
	assert.Equal(t, 85, m.Confidence)
	assert.InDelta(t, 10.0/14.0, m.Coverage, 1e-9)
	assert.Equal(t, 1.0, m.Similarity)
	assert.Equal(t, 14.0, m.Start)
	assert.Equal(t, 18.0, m.End)
}

func TestLocateAnchorPrefersEarliestOccurrence(t *testing.T) {
	phrase := "one two three four five six seven eight"
	segs := []models.CaptionSegment{
		{Start: 0.0, End: 4.0, Text: "noise words before anything else happens"},
		{Start: 4.0, End: 8.0, Text: phrase},
		{Start: 8.0, End: 12.0, Text: "more filler in the middle of things"},
		{Start: 12.0, End: 16.0, Text: phrase},
	}
	tr := NewTranscript(segs)

	m := Locate(phrase+" nine ten eleven twelve", tr, DefaultParams())
	require.NotNil(t, m)
	assert.Equal(t, EvidenceAnchor8, m.Evidence)
	assert.Equal(t, 4.0, m.Start)
	assert.Equal(t, 8.0, m.End)
}

func TestLocateShortQuerySkipsAnchors(t *testing.T) {
	// A seven-word query can never anchor; it either matches exactly or
	// falls through to the fuzzy stage.
	segs := []models.CaptionSegment{
		{Start: 0.0, End: 3.0, Text: "the quick brown fox jumps over fences"},
	}
	tr := NewTranscript(segs)

	m := Locate("quick brown fox leaps over tall fences", tr, DefaultParams())
	if m != nil {
		assert.Equal(t, EvidenceFuzzyWindow, m.Evidence)
	}
}

func TestLocateEmptyInputs(t *testing.T) {
	tr := NewTranscript([]models.CaptionSegment{{Start: 0, End: 1, Text: "something here"}})
	assert.Nil(t, Locate("", tr, DefaultParams()))
	assert.Nil(t, Locate("   !!! ", tr, DefaultParams()))

	empty := NewTranscript(nil)
	assert.Nil(t, Locate("a real query", empty, DefaultParams()))
}

func TestLongestSharedNgram(t *testing.T) {
	words := strings.Fields("x x x alpha bravo charlie delta echo y y foxtrot z")
	query := strings.Fields("alpha bravo charlie delta echo foxtrot")

	pos, n, ok := longestSharedNgram(query, words, 0, len(words)-1, 4, 12)
	require.True(t, ok)
	assert.Equal(t, 3, pos)
	assert.Equal(t, 5, n)

	_, _, ok = longestSharedNgram(strings.Fields("p q r s"), words, 0, len(words)-1, 4, 12)
	assert.False(t, ok)
}
