package clipsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"clipsource/pkg/clipsource/engine"
	"clipsource/pkg/clipsource/search"
	"clipsource/pkg/clipsource/storage"
	"clipsource/pkg/clipsource/transcript"
	"clipsource/pkg/logger"
	"clipsource/pkg/models"
	"clipsource/pkg/utils"
)

// locateService is the default implementation of the Service interface.
type locateService struct {
	storage  Storage
	searcher Searcher
	captions CaptionSource
	log      Logger
	config   *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	stor := cfg.Storage
	if stor == nil {
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = storage.DefaultDBFile
		}
		var err error
		stor, err = storage.NewClientWithPath(dbPath)
		if err != nil {
			return nil, fmt.Errorf("creating storage: %w", err)
		}
	}

	searcher := cfg.Searcher
	if searcher == nil {
		var providers []search.Provider
		if p := search.NewSerper(os.Getenv("SERPER_API_KEY")); p != nil {
			providers = append(providers, p)
		}
		if p := search.NewTavily(os.Getenv("TAVILY_API_KEY")); p != nil {
			providers = append(providers, p)
		}
		searcher = search.NewMulti(providers...)
	}

	captions := cfg.CaptionSource
	if captions == nil {
		captions = transcript.NewFetcher(stor, transcript.Options{
			CookiesFile:        os.Getenv("YTDLP_COOKIES_FILE"),
			CookiesFromBrowser: os.Getenv("YTDLP_COOKIES_FROM_BROWSER"),
		})
	}

	return &locateService{
		storage:  stor,
		searcher: searcher,
		captions: captions,
		log:      cfg.Logger,
		config:   cfg,
	}, nil
}

// Locate runs the full pipeline: discover candidate videos, fetch their
// captions, match the snippet in each, rank, and persist the run.
func (s *locateService) Locate(ctx context.Context, snippet string) (*models.ResultSet, error) {
	snippet = strings.TrimSpace(snippet)
	if len(engine.Tokenize(snippet)) == 0 {
		rs := &models.ResultSet{
			OK:          false,
			Error:       "No snippet provided.",
			Explanation: "The snippet was empty after normalization.",
		}
		s.saveRun(snippet, rs)
		return rs, nil
	}

	urls, err := s.searcher.Search(ctx, snippet, maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("searching for candidates: %w", err)
	}

	refs := canonicalize(urls)
	s.log.Infof("Discovered %d candidate videos", len(refs))
	if len(refs) == 0 {
		rs := &models.ResultSet{
			OK:          false,
			Error:       "No candidate videos found",
			Explanation: "Web search returned no YouTube results for the snippet.",
		}
		s.saveRun(snippet, rs)
		return rs, nil
	}
	if len(refs) > s.config.MaxEval {
		refs = refs[:s.config.MaxEval]
	}

	candidates := s.evaluate(ctx, snippet, refs)
	rs := engine.Rank(candidates)
	s.saveRun(snippet, rs)
	return rs, nil
}

// LocateInVideo matches the snippet against a single known video.
func (s *locateService) LocateInVideo(ctx context.Context, urlOrID, snippet string) (*models.ResultSet, error) {
	snippet = strings.TrimSpace(snippet)
	if len(engine.Tokenize(snippet)) == 0 {
		return &models.ResultSet{
			OK:          false,
			Error:       "No snippet provided.",
			Explanation: "The snippet was empty after normalization.",
		}, nil
	}

	id, err := utils.ExtractVideoID(urlOrID)
	if err != nil {
		return nil, err
	}
	ref := models.Reference{Platform: "youtube", ID: id, URL: utils.CanonicalWatchURL(id)}

	cand := s.evaluateOne(ctx, snippet, ref)
	if cand.Match == nil {
		// Distinguish "no captions" from "captions matched nothing": the
		// fetch error was already logged, the caller just gets a not-ok set.
		rs := engine.Rank(nil)
		s.saveRun(snippet, rs)
		return rs, nil
	}

	rs := engine.Rank([]engine.Candidate{cand})
	s.saveRun(snippet, rs)
	return rs, nil
}

func (s *locateService) ListRuns(limit int) ([]models.Run, error) {
	return s.storage.ListRuns(limit)
}

func (s *locateService) ListCachedTracks() ([]models.CachedTrack, error) {
	return s.storage.ListCaptionTracks()
}

func (s *locateService) EvictCachedTrack(videoID string) error {
	return s.storage.DeleteCaptionTrack(videoID)
}

func (s *locateService) Close() error {
	return s.storage.Close()
}

// evaluate matches the snippet in each candidate, Parallelism at a time.
// Results land at the candidate's own index so ranking ties still break on
// discovery order. Once a batch produces a verbatim full-phrase match the
// remaining candidates are skipped; nothing later can outrank it.
func (s *locateService) evaluate(ctx context.Context, snippet string, refs []models.Reference) []engine.Candidate {
	out := make([]engine.Candidate, len(refs))
	par := s.config.Parallelism
	if par < 1 {
		par = 1
	}

	for lo := 0; lo < len(refs); lo += par {
		hi := min(lo+par, len(refs))

		var wg sync.WaitGroup
		for i := lo; i < hi; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				out[i] = s.evaluateOne(ctx, snippet, refs[i])
			}(i)
		}
		wg.Wait()

		for i := lo; i < hi; i++ {
			if out[i].Match != nil && out[i].Match.Evidence == engine.EvidenceExactPhrase {
				s.log.Infof("Exact phrase found in %s, skipping %d remaining candidates", out[i].Ref.ID, len(refs)-hi)
				return out[:hi]
			}
		}
	}
	return out
}

func (s *locateService) evaluateOne(ctx context.Context, snippet string, ref models.Reference) engine.Candidate {
	cand := engine.Candidate{Ref: ref}

	segs, err := s.captions.Fetch(ctx, ref.ID, ref.URL)
	if err != nil {
		s.log.Warnf("Skipping %s: %v", ref.ID, err)
		return cand
	}

	tr := engine.NewTranscript(segs)
	cand.Match = engine.Locate(snippet, tr, s.config.Matching)
	if cand.Match != nil {
		s.log.Debugf("Match in %s: %s confidence=%d", ref.ID, cand.Match.Evidence, cand.Match.Confidence)
	}
	return cand
}

func (s *locateService) saveRun(snippet string, rs *models.ResultSet) {
	if s.storage == nil {
		return
	}
	data, err := json.Marshal(rs)
	if err != nil {
		s.log.Warnf("Serializing run result: %v", err)
		return
	}
	if err := s.storage.SaveRun(uuid.NewString(), snippet, rs.OK, string(data)); err != nil {
		s.log.Warnf("Persisting run: %v", err)
	}
}

// canonicalize maps raw search hits to deduplicated video references,
// preserving discovery order.
func canonicalize(urls []string) []models.Reference {
	var refs []models.Reference
	seen := make(map[string]struct{})
	for _, u := range urls {
		id, err := utils.ExtractVideoID(u)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		refs = append(refs, models.Reference{
			Platform: "youtube",
			ID:       id,
			URL:      utils.CanonicalWatchURL(id),
		})
		if len(refs) >= maxCandidates {
			break
		}
	}
	return refs
}
