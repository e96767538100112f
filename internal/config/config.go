// Package config loads the TOML configuration file and applies environment
// overrides. Environment variables win over file values so API keys can stay
// out of the config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Matching contains the engine thresholds.
type Matching struct {
	MinConfidence int     `toml:"min_confidence"`
	MinCoverage   float64 `toml:"min_coverage"`
	WindowWords   int     `toml:"window_words"`
	WindowStride  int     `toml:"window_stride"`
	MaxEval       int     `toml:"max_eval"`
	Parallelism   int     `toml:"parallelism"`
}

// Search contains web search provider credentials.
type Search struct {
	SerperAPIKey string `toml:"serper_api_key"`
	TavilyAPIKey string `toml:"tavily_api_key"`
}

// Captions contains caption download settings.
type Captions struct {
	Langs              string `toml:"langs"`
	CookiesFile        string `toml:"cookies_file"`
	CookiesFromBrowser string `toml:"cookies_from_browser"`
}

// Paths contains file locations.
type Paths struct {
	DBPath string `toml:"db_path"`
}

// Server contains the HTTP API settings.
type Server struct {
	Bind string `toml:"bind"`
}

// Config encapsulates all configuration values.
type Config struct {
	Matching Matching `toml:"matching"`
	Search   Search   `toml:"search"`
	Captions Captions `toml:"captions"`
	Paths    Paths    `toml:"paths"`
	Server   Server   `toml:"server"`
}

const (
	defaultMinConfidence = 70
	defaultMinCoverage   = 0.55
	defaultWindowWords   = 80
	defaultWindowStride  = 12
	defaultMaxEval       = 30
	defaultParallelism   = 4
	defaultLangs         = "en.*,en-orig,en"
	defaultDBPath        = "~/.local/share/clipsource/clipsource.sqlite3"
	defaultBind          = "127.0.0.1:8571"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Matching: Matching{
			MinConfidence: defaultMinConfidence,
			MinCoverage:   defaultMinCoverage,
			WindowWords:   defaultWindowWords,
			WindowStride:  defaultWindowStride,
			MaxEval:       defaultMaxEval,
			Parallelism:   defaultParallelism,
		},
		Captions: Captions{
			Langs: defaultLangs,
		},
		Paths: Paths{
			DBPath: defaultDBPath,
		},
		Server: Server{
			Bind: defaultBind,
		},
	}
}

// Load locates and parses a configuration file, applies environment
// overrides, and validates the result. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Paths.DBPath, err = expandPath(cfg.Paths.DBPath); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/clipsource/config.toml")
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("clipsource.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setFloat := func(dst *float64, key string) {
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}

	setString(&c.Search.SerperAPIKey, "SERPER_API_KEY")
	setString(&c.Search.TavilyAPIKey, "TAVILY_API_KEY")
	setString(&c.Paths.DBPath, "CLIPSOURCE_DB_PATH")
	setString(&c.Captions.CookiesFile, "YTDLP_COOKIES_FILE")
	setString(&c.Captions.CookiesFromBrowser, "YTDLP_COOKIES_FROM_BROWSER")
	setInt(&c.Matching.MinConfidence, "MIN_CONFIDENCE")
	setFloat(&c.Matching.MinCoverage, "MIN_COVERAGE")
	setInt(&c.Matching.WindowWords, "WINDOW_WORDS")
	setInt(&c.Matching.WindowStride, "WINDOW_STRIDE")
	setInt(&c.Matching.MaxEval, "MAX_EVAL")
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	m := c.Matching
	if m.MinConfidence < 0 || m.MinConfidence > 100 {
		return fmt.Errorf("matching.min_confidence must be in [0,100], got %d", m.MinConfidence)
	}
	if m.MinCoverage < 0 || m.MinCoverage > 1 {
		return fmt.Errorf("matching.min_coverage must be in [0,1], got %g", m.MinCoverage)
	}
	if m.WindowWords < 1 {
		return fmt.Errorf("matching.window_words must be positive, got %d", m.WindowWords)
	}
	if m.WindowStride < 1 {
		return fmt.Errorf("matching.window_stride must be positive, got %d", m.WindowStride)
	}
	if m.MaxEval < 1 {
		return fmt.Errorf("matching.max_eval must be positive, got %d", m.MaxEval)
	}
	if m.Parallelism < 1 {
		return fmt.Errorf("matching.parallelism must be positive, got %d", m.Parallelism)
	}
	if c.Server.Bind == "" {
		return fmt.Errorf("server.bind must not be empty")
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && pathValue[1] == '/' {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
