// Package clipsource locates the point in a spoken-video transcript that
// best matches a short text snippet. The Service ties together web search
// for candidate videos, caption fetching, the matching engine, and run
// persistence; each collaborator sits behind an interface so callers can
// swap in their own.
package clipsource

import (
	"context"

	"clipsource/pkg/models"
)

type Service interface {
	// Locate searches the web for candidate videos and returns the best
	// timestamped match for the snippet plus ranked alternatives.
	Locate(ctx context.Context, snippet string) (*models.ResultSet, error)
	// LocateInVideo skips discovery and matches the snippet against one
	// known video (URL or bare ID).
	LocateInVideo(ctx context.Context, urlOrID, snippet string) (*models.ResultSet, error)
	ListRuns(limit int) ([]models.Run, error)
	ListCachedTracks() ([]models.CachedTrack, error)
	EvictCachedTrack(videoID string) error
	Close() error
}

// Searcher finds candidate video URLs for a snippet. Satisfied by
// search.Multi.
type Searcher interface {
	Search(ctx context.Context, snippet string, max int) ([]string, error)
}

// CaptionSource produces the caption segments for a video. Satisfied by
// transcript.Fetcher.
type CaptionSource interface {
	Fetch(ctx context.Context, videoID, url string) ([]models.CaptionSegment, error)
}

// Storage persists caption tracks and locate runs. Satisfied by
// storage.Client.
type Storage interface {
	GetCaptions(videoID string) (string, bool, error)
	PutCaptions(videoID, lang, vtt string) error
	ListCaptionTracks() ([]models.CachedTrack, error)
	DeleteCaptionTrack(videoID string) error
	SaveRun(id, snippet string, ok bool, resultJSON string) error
	ListRuns(limit int) ([]models.Run, error)
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
