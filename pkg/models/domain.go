package models

// Reference identifies a candidate video on a platform. The matching engine
// carries it through untouched; only the presentation layer interprets it.
type Reference struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
	URL      string `json:"url"`
}

// CaptionSegment is one cue from a caption track: a text chunk with the
// start/end time (seconds) it is displayed.
type CaptionSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// MatchDetails carries the evidence behind a match result.
type MatchDetails struct {
	Evidence   string  `json:"evidence"`
	Coverage   float64 `json:"coverage"`
	Similarity float64 `json:"similarity"`
	// NgramN is the length of the longest exact shared n-gram used to
	// tighten the reported span, when tightening was applied.
	NgramN int `json:"ngram_n,omitempty"`
}

// MatchResult is one located timestamp range in one candidate video.
// Timestamps are whole-second "HH:MM:SS" strings.
type MatchResult struct {
	Reference      Reference    `json:"reference"`
	TimestampStart string       `json:"timestamp_start"`
	TimestampEnd   string       `json:"timestamp_end"`
	Confidence     int          `json:"confidence"`
	Details        MatchDetails `json:"details"`
}

// ResultSet is the final output of a locate call: at most one best match plus
// ranked alternatives, each for a distinct candidate.
type ResultSet struct {
	OK           bool          `json:"ok"`
	Error        string        `json:"error,omitempty"`
	Best         *MatchResult  `json:"best"`
	Alternatives []MatchResult `json:"alternatives"`
	Explanation  string        `json:"explanation"`
}

// Run is a persisted locate invocation.
type Run struct {
	ID        string `json:"id"`
	Snippet   string `json:"snippet"`
	OK        bool   `json:"ok"`
	Result    string `json:"result"`
	CreatedAt string `json:"created_at"`
}

// CachedTrack describes one caption track held in the cache.
type CachedTrack struct {
	VideoID   string `json:"video_id"`
	Lang      string `json:"lang"`
	Bytes     int    `json:"bytes"`
	FetchedAt string `json:"fetched_at"`
}
