// Package app wires configuration into a ready-to-use Service. Shared by
// the CLI and the HTTP server so both assemble the same stack.
package app

import (
	"fmt"

	"clipsource/internal/config"
	"clipsource/pkg/clipsource"
	"clipsource/pkg/clipsource/engine"
	"clipsource/pkg/clipsource/search"
	"clipsource/pkg/clipsource/storage"
	"clipsource/pkg/clipsource/transcript"
)

// BuildService assembles the locate service from a loaded config.
func BuildService(cfg *config.Config) (clipsource.Service, error) {
	store, err := storage.NewClientWithPath(cfg.Paths.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	var providers []search.Provider
	if p := search.NewSerper(cfg.Search.SerperAPIKey); p != nil {
		providers = append(providers, p)
	}
	if p := search.NewTavily(cfg.Search.TavilyAPIKey); p != nil {
		providers = append(providers, p)
	}

	fetcher := transcript.NewFetcher(store, transcript.Options{
		Langs:              cfg.Captions.Langs,
		CookiesFile:        cfg.Captions.CookiesFile,
		CookiesFromBrowser: cfg.Captions.CookiesFromBrowser,
	})

	return clipsource.NewService(
		clipsource.WithStorage(store),
		clipsource.WithSearcher(search.NewMulti(providers...)),
		clipsource.WithCaptionSource(fetcher),
		clipsource.WithMatching(engine.Params{
			MinConfidence: cfg.Matching.MinConfidence,
			MinCoverage:   cfg.Matching.MinCoverage,
			WindowWords:   cfg.Matching.WindowWords,
			WindowStride:  cfg.Matching.WindowStride,
		}),
		clipsource.WithMaxEval(cfg.Matching.MaxEval),
		clipsource.WithParallelism(cfg.Matching.Parallelism),
	)
}
