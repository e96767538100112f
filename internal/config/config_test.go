package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Matching.MinConfidence)
	assert.Equal(t, 0.55, cfg.Matching.MinCoverage)
	assert.Equal(t, 80, cfg.Matching.WindowWords)
	assert.Equal(t, 12, cfg.Matching.WindowStride)
	assert.Equal(t, 30, cfg.Matching.MaxEval)
	assert.Equal(t, "en.*,en-orig,en", cfg.Captions.Langs)
	assert.Equal(t, "127.0.0.1:8571", cfg.Server.Bind)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[matching]
min_confidence = 80
window_words = 60

[search]
serper_api_key = "file-key"

[server]
bind = "0.0.0.0:9000"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Matching.MinConfidence)
	assert.Equal(t, 60, cfg.Matching.WindowWords)
	// Untouched sections keep their defaults.
	assert.Equal(t, 12, cfg.Matching.WindowStride)
	assert.Equal(t, "file-key", cfg.Search.SerperAPIKey)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Bind)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[search]
serper_api_key = "file-key"
`), 0o644))

	t.Setenv("SERPER_API_KEY", "env-key")
	t.Setenv("MIN_CONFIDENCE", "75")
	t.Setenv("MIN_COVERAGE", "0.6")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Search.SerperAPIKey)
	assert.Equal(t, 75, cfg.Matching.MinConfidence)
	assert.Equal(t, 0.6, cfg.Matching.MinCoverage)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Matching.MinConfidence = 150
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Matching.MinCoverage = -0.1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Matching.WindowStride = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Bind = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadExpandsDBPath(t *testing.T) {
	t.Setenv("CLIPSOURCE_DB_PATH", "~/data/clip.sqlite3")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "clip.sqlite3"), cfg.Paths.DBPath)
}
