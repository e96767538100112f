// Package storage persists caption tracks and locate runs in SQLite via
// GORM. Caption tracks are a cache: fetching them is slow and rate-limited,
// so a track is downloaded once per video and reused.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clipsource/pkg/models"
)

const DefaultDBFile = "clipsource.sqlite3"

const errClientNil = "db client is nil"

// Client wraps the GORM handle plus the underlying sql.DB for pool tuning
// and shutdown.
type Client struct {
	DB *gorm.DB
	db *sql.DB
}

// CaptionTrack is one cached raw WEBVTT track.
type CaptionTrack struct {
	VideoID   string `gorm:"primaryKey;type:varchar(16)"`
	Lang      string `gorm:"type:varchar(16)"`
	VTT       string
	FetchedAt time.Time
}

// Run is one persisted locate invocation with its serialized result.
type Run struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Snippet   string
	OK        bool
	Result    string
	CreatedAt time.Time `gorm:"index:idx_run_created"`
}

// NewClient opens the database at the CLIPSOURCE_DB_PATH env path, falling
// back to DefaultDBFile in the working directory.
func NewClient() (*Client, error) {
	dbPath := os.Getenv("CLIPSOURCE_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewClientWithPath(dbPath)
}

// NewClientWithPath opens (creating if needed) the database at dbPath and
// runs migrations.
func NewClientWithPath(dbPath string) (*Client, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&CaptionTrack{}, &Run{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Client{DB: db, db: sqlDB}, nil
}

func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// GetCaptions returns the cached raw VTT for a video, with ok=false on a
// cache miss.
func (c *Client) GetCaptions(videoID string) (string, bool, error) {
	if c == nil || c.DB == nil {
		return "", false, errors.New(errClientNil)
	}
	var track CaptionTrack
	err := c.DB.Where("video_id = ?", videoID).First(&track).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying caption track: %w", err)
	}
	return track.VTT, true, nil
}

// PutCaptions upserts the raw VTT track for a video.
func (c *Client) PutCaptions(videoID, lang, vtt string) error {
	if c == nil || c.DB == nil {
		return errors.New(errClientNil)
	}
	track := CaptionTrack{VideoID: videoID, Lang: lang, VTT: vtt, FetchedAt: time.Now().UTC()}
	if err := c.DB.Save(&track).Error; err != nil {
		return fmt.Errorf("storing caption track: %w", err)
	}
	return nil
}

// ListCaptionTracks returns cache metadata for every stored track, newest
// first. The raw VTT bodies stay in the database.
func (c *Client) ListCaptionTracks() ([]models.CachedTrack, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errClientNil)
	}
	var rows []CaptionTrack
	if err := c.DB.Order("fetched_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing caption tracks: %w", err)
	}
	out := make([]models.CachedTrack, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.CachedTrack{
			VideoID:   r.VideoID,
			Lang:      r.Lang,
			Bytes:     len(r.VTT),
			FetchedAt: r.FetchedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// DeleteCaptionTrack evicts one video's track from the cache.
func (c *Client) DeleteCaptionTrack(videoID string) error {
	if c == nil || c.DB == nil {
		return errors.New(errClientNil)
	}
	return c.DB.Where("video_id = ?", videoID).Delete(&CaptionTrack{}).Error
}

// SaveRun records a locate invocation.
func (c *Client) SaveRun(id, snippet string, ok bool, resultJSON string) error {
	if c == nil || c.DB == nil {
		return errors.New(errClientNil)
	}
	run := Run{ID: id, Snippet: snippet, OK: ok, Result: resultJSON, CreatedAt: time.Now().UTC()}
	if err := c.DB.Create(&run).Error; err != nil {
		return fmt.Errorf("storing run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 means all.
func (c *Client) ListRuns(limit int) ([]models.Run, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errClientNil)
	}
	q := c.DB.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []Run
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	out := make([]models.Run, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Run{
			ID:        r.ID,
			Snippet:   r.Snippet,
			OK:        r.OK,
			Result:    r.Result,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
