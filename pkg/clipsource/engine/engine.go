package engine

// Defaults for Params. The anchor lengths themselves are fixed (see
// anchorLengths); only the fuzzy stage is tunable.
const (
	DefaultMinConfidence = 70
	DefaultMinCoverage   = 0.55
	DefaultWindowWords   = 80
	DefaultWindowStride  = 12
)

// Params are the engine's tunables, passed explicitly into every call.
// The engine never reads ambient configuration.
type Params struct {
	MinConfidence int
	MinCoverage   float64
	WindowWords   int
	WindowStride  int
	Similarity    SimilarityFunc
}

// DefaultParams returns the calibrated defaults with LCS similarity.
func DefaultParams() Params {
	return Params{
		MinConfidence: DefaultMinConfidence,
		MinCoverage:   DefaultMinCoverage,
		WindowWords:   DefaultWindowWords,
		WindowStride:  DefaultWindowStride,
		Similarity:    LCSSimilarity,
	}
}

func (p Params) withDefaults() Params {
	if p.MinConfidence <= 0 {
		p.MinConfidence = DefaultMinConfidence
	}
	if p.MinCoverage <= 0 {
		p.MinCoverage = DefaultMinCoverage
	}
	if p.WindowWords < 1 {
		p.WindowWords = DefaultWindowWords
	}
	if p.WindowStride < 1 {
		p.WindowStride = DefaultWindowStride
	}
	if p.Similarity == nil {
		p.Similarity = LCSSimilarity
	}
	return p
}

// Match is one located span in one transcript. Start/End are seconds;
// StartPos/EndPos are inclusive token positions. TightenedN is the length of
// the longest exact shared n-gram the span was narrowed to, or 0.
type Match struct {
	StartPos   int
	EndPos     int
	Start      float64
	End        float64
	Confidence int
	Coverage   float64
	Similarity float64
	Evidence   Evidence
	TightenedN int
}

// Locate runs the full matching pipeline for one transcript: exact phrase,
// then anchors at decreasing lengths, then the fuzzy window fallback. It
// returns nil when the query or transcript is empty or when no stage
// produces an acceptable match; it never fails any other way.
func Locate(query string, tr *Transcript, p Params) *Match {
	p = p.withDefaults()

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 || tr.Len() == 0 {
		return nil
	}

	ix := NewIndex(tr)
	if m := matchExactOrAnchor(queryTokens, ix); m != nil {
		return m
	}
	return matchFuzzy(queryTokens, ix, p)
}
