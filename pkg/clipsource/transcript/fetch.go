package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"clipsource/pkg/logger"
	"clipsource/pkg/models"
)

// YouTube's bot challenge shows up in yt-dlp output as this phrase (with
// either a straight or curly apostrophe).
const (
	botGateHint      = "sign in to confirm you're not a bot"
	botGateHintCurly = "sign in to confirm you’re not a bot"
)

// minTrackBytes filters out caption files that are effectively empty.
const minTrackBytes = 200

var (
	// ErrBotGate means YouTube refused the request pending a sign-in; the
	// candidate should be skipped, retrying without cookies won't help.
	ErrBotGate = errors.New("blocked by bot challenge")
	// ErrNoCaptions means the video has no usable caption track.
	ErrNoCaptions = errors.New("no captions available")
)

// Cache stores raw VTT tracks keyed by video ID. Satisfied by
// storage.Client.
type Cache interface {
	GetCaptions(videoID string) (string, bool, error)
	PutCaptions(videoID, lang, vtt string) error
}

// Options configures caption fetching.
type Options struct {
	// Langs is the yt-dlp subtitle language selector.
	Langs string
	// CookiesFile takes precedence over CookiesFromBrowser when both are set.
	CookiesFile        string
	CookiesFromBrowser string
	TempDir            string
}

func defaultOptions() Options {
	return Options{
		Langs:   "en.*,en-orig,en",
		TempDir: os.TempDir(),
	}
}

// Fetcher downloads caption tracks via yt-dlp, consulting the cache first.
// Auto-generated captions are tried before manual ones: for spoken-word
// content the auto track usually exists and the manual one often doesn't.
type Fetcher struct {
	cache Cache
	opts  Options
	log   *logger.Logger
}

// NewFetcher creates a Fetcher. cache may be nil, in which case every fetch
// downloads.
func NewFetcher(cache Cache, opts Options) *Fetcher {
	def := defaultOptions()
	if opts.Langs == "" {
		opts.Langs = def.Langs
	}
	if opts.TempDir == "" {
		opts.TempDir = def.TempDir
	}
	return &Fetcher{
		cache: cache,
		opts:  opts,
		log:   logger.GetLogger(),
	}
}

// Probe lists the video's subtitles without downloading anything. It returns
// ErrBotGate when YouTube blocks the request and ErrNoCaptions when the
// video has none.
func (f *Fetcher) Probe(ctx context.Context, url string) error {
	cmd := ytdlp.New().SkipDownload().ListSubs()
	f.applyCookies(cmd)

	res, err := cmd.Run(ctx, url)
	out := combinedOutput(res)
	if isBotGate(out) {
		return ErrBotGate
	}
	if err != nil {
		return fmt.Errorf("listing subtitles: %w", err)
	}

	lower := strings.ToLower(out)
	if strings.Contains(lower, "has no subtitles") || strings.Contains(lower, "no subtitles") {
		return ErrNoCaptions
	}
	return nil
}

// Fetch returns the parsed caption segments for a video, downloading and
// caching the raw track on a cache miss.
func (f *Fetcher) Fetch(ctx context.Context, videoID, url string) ([]models.CaptionSegment, error) {
	if f.cache != nil {
		vtt, ok, err := f.cache.GetCaptions(videoID)
		if err != nil {
			f.log.Warnf("caption cache read failed for %s: %v", videoID, err)
		} else if ok && len(vtt) > minTrackBytes {
			f.log.Debugf("caption cache hit for %s", videoID)
			return ParseVTT(vtt), nil
		}
	}

	vtt, lang, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.PutCaptions(videoID, lang, vtt); err != nil {
			f.log.Warnf("caption cache write failed for %s: %v", videoID, err)
		}
	}

	return ParseVTT(vtt), nil
}

// download tries auto captions first, then manual ones.
func (f *Fetcher) download(ctx context.Context, url string) (string, string, error) {
	vtt, lang, autoErr := f.downloadVariant(ctx, url, true)
	if autoErr == nil {
		return vtt, lang, nil
	}
	if errors.Is(autoErr, ErrBotGate) {
		return "", "", autoErr
	}

	vtt, lang, manualErr := f.downloadVariant(ctx, url, false)
	if manualErr == nil {
		return vtt, lang, nil
	}
	return "", "", fmt.Errorf("%w (auto: %v)", manualErr, autoErr)
}

func (f *Fetcher) downloadVariant(ctx context.Context, url string, auto bool) (string, string, error) {
	dir, err := os.MkdirTemp(f.opts.TempDir, "clipsource_caps_")
	if err != nil {
		return "", "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	cmd := ytdlp.New().
		SkipDownload().
		SubFormat("vtt").
		SubLangs(f.opts.Langs).
		Output(filepath.Join(dir, "sub.%(ext)s"))
	if auto {
		cmd.WriteAutoSubs()
	} else {
		cmd.WriteSubs()
	}
	f.applyCookies(cmd)

	res, runErr := cmd.Run(ctx, url)
	if isBotGate(combinedOutput(res)) {
		return "", "", ErrBotGate
	}

	best, lang := pickBestTrack(dir)
	if best == "" {
		if runErr != nil {
			return "", "", fmt.Errorf("downloading captions: %w", runErr)
		}
		return "", "", ErrNoCaptions
	}

	data, err := os.ReadFile(best)
	if err != nil {
		return "", "", fmt.Errorf("reading caption file: %w", err)
	}
	return string(data), lang, nil
}

func (f *Fetcher) applyCookies(cmd *ytdlp.Command) {
	if f.opts.CookiesFile != "" {
		cmd.Cookies(f.opts.CookiesFile)
	} else if f.opts.CookiesFromBrowser != "" {
		cmd.CookiesFromBrowser(f.opts.CookiesFromBrowser)
	}
}

// pickBestTrack picks the most useful VTT file yt-dlp wrote: a preferred
// English variant when present, otherwise the largest non-trivial file.
// Returns the path and the language parsed from the filename.
func pickBestTrack(dir string) (string, string) {
	preferred := []string{"sub.en.vtt", "sub.en-US.vtt", "sub.en-GB.vtt", "sub.en-orig.vtt"}
	for _, name := range preferred {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Size() > minTrackBytes {
			return p, trackLang(name)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", ""
	}
	type track struct {
		path string
		size int64
	}
	var tracks []track
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".vtt") {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Size() <= minTrackBytes {
			continue
		}
		tracks = append(tracks, track{path: filepath.Join(dir, e.Name()), size: info.Size()})
	}
	if len(tracks) == 0 {
		return "", ""
	}
	sort.Slice(tracks, func(i, j int) bool {
		if tracks[i].size != tracks[j].size {
			return tracks[i].size > tracks[j].size
		}
		return tracks[i].path < tracks[j].path
	})
	return tracks[0].path, trackLang(filepath.Base(tracks[0].path))
}

// trackLang extracts the language code from a "sub.<lang>.vtt" filename.
func trackLang(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) == 3 {
		return parts[1]
	}
	return ""
}

func combinedOutput(res *ytdlp.Result) string {
	if res == nil {
		return ""
	}
	return res.Stdout + "\n" + res.Stderr
}

func isBotGate(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, botGateHint) || strings.Contains(lower, botGateHintCurly)
}
