package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"clipsource/pkg/clipsource"
	"clipsource/pkg/logger"
)

const locateTimeout = 10 * time.Minute

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service clipsource.Service
	config  *ServerConfig
	log     clipsource.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Bind           string
	DBPath         string
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service clipsource.Service, config *ServerConfig) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger(),
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "clipsource API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":      "GET /health",
			"locate":      "POST /api/locate",
			"locateVideo": "POST /api/locate/video",
			"runs":        "GET /api/runs",
			"cache":       "GET /api/cache",
			"evictTrack":  "DELETE /api/cache/{video_id}",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleLocate handles POST /api/locate
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), locateTimeout)
	defer cancel()

	var req LocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Infof("Locating snippet (%d chars)", len(req.Snippet))
	rs, err := s.service.Locate(ctx, req.Snippet)
	if err != nil {
		s.log.Errorf("Locate failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Locate failed")
		return
	}

	// A not-ok result set is still a valid 200 answer; the caller inspects
	// the ok field.
	s.respondJSON(w, http.StatusOK, rs)
}

// handleLocateVideo handles POST /api/locate/video
func (s *Server) handleLocateVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), locateTimeout)
	defer cancel()

	var req LocateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rs, err := s.service.LocateInVideo(ctx, req.Video, req.Snippet)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, rs)
}

// handleRuns handles GET /api/runs
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	runs, err := s.service.ListRuns(limit)
	if err != nil {
		s.log.Errorf("Failed to list runs: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve runs")
		return
	}
	s.respondJSON(w, http.StatusOK, RunsResponse{Runs: runs, Count: len(runs)})
}

// handleCache routes requests to /api/cache
func (s *Server) handleCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	tracks, err := s.service.ListCachedTracks()
	if err != nil {
		s.log.Errorf("Failed to list cached tracks: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve cache")
		return
	}
	s.respondJSON(w, http.StatusOK, CacheResponse{Tracks: tracks, Count: len(tracks)})
}

// handleCacheTrack routes requests to /api/cache/{video_id}
func (s *Server) handleCacheTrack(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Path[len("/api/cache/"):]
	if videoID == "" {
		s.respondError(w, http.StatusBadRequest, "Video ID required")
		return
	}

	if r.Method != http.MethodDelete {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := s.service.EvictCachedTrack(videoID); err != nil {
		s.log.Errorf("Failed to evict track %s: %v", videoID, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to evict track")
		return
	}

	s.log.Infof("Evicted caption track: %s", videoID)
	s.respondJSON(w, http.StatusOK, EvictResponse{
		Message: "Caption track evicted",
		VideoID: videoID,
	})
}
