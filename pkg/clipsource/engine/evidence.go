package engine

import "fmt"

// Evidence tags how a match was produced. It is the primary ranking key:
// exact beats anchors, longer anchors beat shorter ones, and anchors beat
// fuzzy windows regardless of numeric confidence.
type Evidence string

const (
	EvidenceExactPhrase Evidence = "exact_phrase"
	EvidenceAnchor12    Evidence = "anchor_12"
	EvidenceAnchor10    Evidence = "anchor_10"
	EvidenceAnchor8     Evidence = "anchor_8"
	EvidenceFuzzyWindow Evidence = "fuzzy_window"
)

// anchorLengths are the n-gram probe lengths, tried longest first.
var anchorLengths = []int{12, 10, 8}

type evidenceTier struct {
	confidence int // base confidence for this tier
	precedence int // lower ranks first
}

var evidenceTiers = map[Evidence]evidenceTier{
	EvidenceExactPhrase: {confidence: 98, precedence: 0},
	EvidenceAnchor12:    {confidence: 92, precedence: 1},
	EvidenceAnchor10:    {confidence: 85, precedence: 2},
	EvidenceAnchor8:     {confidence: 78, precedence: 3},
	EvidenceFuzzyWindow: {confidence: 0, precedence: 4},
}

// maxFuzzyConfidence caps fuzzy-window confidence one below the weakest
// anchor tier, so anchored matches always outrank fuzzy ones numerically too.
const maxFuzzyConfidence = 77

// BaseConfidence returns the tier's base confidence score.
func (e Evidence) BaseConfidence() int {
	return evidenceTiers[e].confidence
}

// Precedence returns the tier's rank; lower sorts first.
func (e Evidence) Precedence() int {
	return evidenceTiers[e].precedence
}

func anchorEvidence(n int) Evidence {
	return Evidence(fmt.Sprintf("anchor_%d", n))
}
