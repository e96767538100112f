package engine

import (
	"fmt"
	"math"
	"sort"

	"clipsource/pkg/models"
	"clipsource/pkg/utils"
)

// Candidate pairs a video reference with the best match the pipeline found in
// its transcript. Match is nil when the transcript produced no acceptable
// match. Slice order is the candidate discovery order, which is the final
// ranking tie-break.
type Candidate struct {
	Ref   models.Reference
	Match *Match
}

// maxAlternatives bounds the ranked alternatives after the best match.
const maxAlternatives = 4

// Rank orders per-candidate matches into the final result set. Candidates
// without a match are dropped; the rest sort by evidence precedence, then
// confidence, coverage, similarity, and finally input order, so identical
// inputs always rank identically. Each ranked entry references a distinct
// video.
func Rank(candidates []Candidate) *models.ResultSet {
	type scored struct {
		idx int
		c   Candidate
	}

	var kept []scored
	seen := make(map[string]struct{})
	for i, c := range candidates {
		if c.Match == nil {
			continue
		}
		if _, dup := seen[c.Ref.ID]; dup {
			continue
		}
		seen[c.Ref.ID] = struct{}{}
		kept = append(kept, scored{idx: i, c: c})
	}

	if len(kept) == 0 {
		return &models.ResultSet{
			OK:           false,
			Error:        "No confident match found",
			Alternatives: []models.MatchResult{},
			Explanation:  "No candidate met coverage/confidence thresholds.",
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i].c.Match, kept[j].c.Match
		if a.Evidence.Precedence() != b.Evidence.Precedence() {
			return a.Evidence.Precedence() < b.Evidence.Precedence()
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Coverage != b.Coverage {
			return a.Coverage > b.Coverage
		}
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		return kept[i].idx < kept[j].idx
	})

	best := toResult(kept[0].c)
	alternatives := make([]models.MatchResult, 0, maxAlternatives)
	for _, s := range kept[1:] {
		alternatives = append(alternatives, toResult(s.c))
		if len(alternatives) == maxAlternatives {
			break
		}
	}

	return &models.ResultSet{
		OK:           true,
		Best:         &best,
		Alternatives: alternatives,
		Explanation: fmt.Sprintf("Accepted: %s:%s.",
			kept[0].c.Ref.Platform, kept[0].c.Match.Evidence),
	}
}

func toResult(c Candidate) models.MatchResult {
	return models.MatchResult{
		Reference:      c.Ref,
		TimestampStart: utils.HMS(c.Match.Start),
		TimestampEnd:   utils.HMS(c.Match.End),
		Confidence:     c.Match.Confidence,
		Details: models.MatchDetails{
			Evidence:   string(c.Match.Evidence),
			Coverage:   round3(c.Match.Coverage),
			Similarity: round3(c.Match.Similarity),
			NgramN:     c.Match.TightenedN,
		},
	}
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
