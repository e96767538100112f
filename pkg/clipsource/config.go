package clipsource

import "clipsource/pkg/clipsource/engine"

const (
	// DefaultMaxEval bounds how many candidate videos get their captions
	// fetched and matched per locate call.
	DefaultMaxEval = 30
	// DefaultParallelism is how many candidates are evaluated concurrently.
	DefaultParallelism = 4
	// maxCandidates caps the deduplicated discovery list before evaluation.
	maxCandidates = 50
)

type Config struct {
	DBPath      string
	MaxEval     int
	Parallelism int
	Matching    engine.Params

	Logger        Logger
	Storage       Storage
	Searcher      Searcher
	CaptionSource CaptionSource
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithMaxEval(n int) Option {
	return func(c *Config) {
		c.MaxEval = n
	}
}

func WithParallelism(n int) Option {
	return func(c *Config) {
		c.Parallelism = n
	}
}

func WithMatching(p engine.Params) Option {
	return func(c *Config) {
		c.Matching = p
	}
}

func WithMinConfidence(v int) Option {
	return func(c *Config) {
		c.Matching.MinConfidence = v
	}
}

func WithMinCoverage(v float64) Option {
	return func(c *Config) {
		c.Matching.MinCoverage = v
	}
}

func WithWindowWords(n int) Option {
	return func(c *Config) {
		c.Matching.WindowWords = n
	}
}

func WithWindowStride(n int) Option {
	return func(c *Config) {
		c.Matching.WindowStride = n
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(s Storage) Option {
	return func(c *Config) {
		c.Storage = s
	}
}

func WithSearcher(s Searcher) Option {
	return func(c *Config) {
		c.Searcher = s
	}
}

func WithCaptionSource(cs CaptionSource) Option {
	return func(c *Config) {
		c.CaptionSource = cs
	}
}

func defaultConfig() *Config {
	return &Config{
		MaxEval:     DefaultMaxEval,
		Parallelism: DefaultParallelism,
		Matching:    engine.DefaultParams(),
	}
}
