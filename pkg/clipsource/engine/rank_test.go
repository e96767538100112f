package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipsource/pkg/models"
)

func ref(id string) models.Reference {
	return models.Reference{
		Platform: "youtube",
		ID:       id,
		URL:      "https://www.youtube.com/watch?v=" + id,
	}
}

func fuzzyMatch(confidence int, coverage, similarity float64) *Match {
	return &Match{
		Start:      10,
		End:        20,
		Confidence: confidence,
		Coverage:   coverage,
		Similarity: similarity,
		Evidence:   EvidenceFuzzyWindow,
	}
}

func TestRankEvidenceOrdering(t *testing.T) {
	// Evidence tier dominates numeric confidence: exact beats anchors beats
	// fuzzy even when the fuzzy candidate is listed first.
	candidates := []Candidate{
		{Ref: ref("fuzzyvideo1"), Match: fuzzyMatch(77, 0.9, 0.9)},
		{Ref: ref("anchorvid01"), Match: &Match{Confidence: 78, Coverage: 0.6, Similarity: 1, Evidence: EvidenceAnchor8}},
		{Ref: ref("exactvideo1"), Match: &Match{Confidence: 98, Coverage: 1, Similarity: 1, Evidence: EvidenceExactPhrase}},
	}

	rs := Rank(candidates)
	require.True(t, rs.OK)
	require.NotNil(t, rs.Best)

	assert.Equal(t, "exactvideo1", rs.Best.Reference.ID)
	assert.Equal(t, "exact_phrase", rs.Best.Details.Evidence)
	require.Len(t, rs.Alternatives, 2)
	assert.Equal(t, "anchorvid01", rs.Alternatives[0].Reference.ID)
	assert.Equal(t, "fuzzyvideo1", rs.Alternatives[1].Reference.ID)
}

func TestRankByConfidence(t *testing.T) {
	rs := Rank([]Candidate{
		{Ref: ref("lowconf0001"), Match: fuzzyMatch(75, 0.7, 0.8)},
		{Ref: ref("highconf001"), Match: fuzzyMatch(80, 0.7, 0.8)},
	})

	require.True(t, rs.OK)
	assert.Equal(t, "highconf001", rs.Best.Reference.ID)
	assert.Equal(t, 80, rs.Best.Confidence)
	require.Len(t, rs.Alternatives, 1)
	assert.Equal(t, "lowconf0001", rs.Alternatives[0].Reference.ID)
	assert.Equal(t, 75, rs.Alternatives[0].Confidence)
}

func TestRankInputOrderTieBreak(t *testing.T) {
	rs := Rank([]Candidate{
		{Ref: ref("firstinput1"), Match: fuzzyMatch(75, 0.7, 0.8)},
		{Ref: ref("secondinput"), Match: fuzzyMatch(75, 0.7, 0.8)},
	})

	require.True(t, rs.OK)
	assert.Equal(t, "firstinput1", rs.Best.Reference.ID)
}

func TestRankAlternativesBound(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 8; i++ {
		candidates = append(candidates, Candidate{
			Ref:   ref(fmt.Sprintf("candidate%02d", i)),
			Match: fuzzyMatch(70+i, 0.7, 0.8),
		})
	}

	rs := Rank(candidates)
	require.True(t, rs.OK)
	assert.Len(t, rs.Alternatives, 4)

	// All returned entries reference distinct candidates.
	seen := map[string]bool{rs.Best.Reference.ID: true}
	for _, alt := range rs.Alternatives {
		assert.False(t, seen[alt.Reference.ID])
		seen[alt.Reference.ID] = true
	}
}

func TestRankDropsNoMatchCandidates(t *testing.T) {
	rs := Rank([]Candidate{
		{Ref: ref("nomatchvid1"), Match: nil},
		{Ref: ref("matchedvid1"), Match: fuzzyMatch(75, 0.7, 0.8)},
		{Ref: ref("nomatchvid2"), Match: nil},
	})

	require.True(t, rs.OK)
	assert.Equal(t, "matchedvid1", rs.Best.Reference.ID)
	assert.Empty(t, rs.Alternatives)
}

func TestRankEmpty(t *testing.T) {
	for _, candidates := range [][]Candidate{
		nil,
		{{Ref: ref("nomatchvid1"), Match: nil}},
	} {
		rs := Rank(candidates)
		assert.False(t, rs.OK)
		assert.Nil(t, rs.Best)
		assert.Empty(t, rs.Alternatives)
		assert.NotEmpty(t, rs.Explanation)
		assert.NotEmpty(t, rs.Error)
	}
}

func TestRankExplanation(t *testing.T) {
	rs := Rank([]Candidate{
		{Ref: ref("exactvideo1"), Match: &Match{Confidence: 98, Coverage: 1, Similarity: 1, Evidence: EvidenceExactPhrase}},
	})
	assert.Equal(t, "Accepted: youtube:exact_phrase.", rs.Explanation)
}

func TestRankSerializedTimestamps(t *testing.T) {
	m := fuzzyMatch(75, 0.66666, 0.825)
	m.Start = 338.2
	m.End = 340.4
	m.TightenedN = 6

	rs := Rank([]Candidate{{Ref: ref("serialized1"), Match: m}})
	require.True(t, rs.OK)
	assert.Equal(t, "00:05:38", rs.Best.TimestampStart)
	assert.Equal(t, "00:05:40", rs.Best.TimestampEnd)
	assert.Equal(t, 0.667, rs.Best.Details.Coverage)
	assert.Equal(t, 0.825, rs.Best.Details.Similarity)
	assert.Equal(t, 6, rs.Best.Details.NgramN)
}
