package main

import (
	"fmt"
	"strings"

	"clipsource/pkg/models"
)

// MaxSnippetLen bounds the snippet length accepted by the API. Anything this
// long is no longer a "short quote" and the fuzzy window would degenerate.
const MaxSnippetLen = 2000

// LocateRequest is the request body for POST /api/locate
type LocateRequest struct {
	Snippet string `json:"snippet"`
}

func (r *LocateRequest) Validate() error {
	if strings.TrimSpace(r.Snippet) == "" {
		return fmt.Errorf("snippet is required")
	}
	if len(r.Snippet) > MaxSnippetLen {
		return fmt.Errorf("snippet too long: %d characters (maximum: %d)", len(r.Snippet), MaxSnippetLen)
	}
	return nil
}

// LocateVideoRequest is the request body for POST /api/locate/video
type LocateVideoRequest struct {
	// Video is a YouTube URL or bare video ID.
	Video   string `json:"video"`
	Snippet string `json:"snippet"`
}

func (r *LocateVideoRequest) Validate() error {
	if strings.TrimSpace(r.Video) == "" {
		return fmt.Errorf("video is required")
	}
	return (&LocateRequest{Snippet: r.Snippet}).Validate()
}

// RunsResponse is the response for GET /api/runs
type RunsResponse struct {
	Runs  []models.Run `json:"runs"`
	Count int          `json:"count"`
}

// CacheResponse is the response for GET /api/cache
type CacheResponse struct {
	Tracks []models.CachedTrack `json:"tracks"`
	Count  int                  `json:"count"`
}

// EvictResponse is the response for DELETE /api/cache/{video_id}
type EvictResponse struct {
	Message string `json:"message"`
	VideoID string `json:"video_id"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
