// Package transcript turns YouTube caption tracks into timestamped segments.
// It parses WEBVTT files and fetches caption tracks through yt-dlp, with a
// cache in front so a video's track is only downloaded once.
package transcript

import (
	"regexp"
	"strconv"
	"strings"

	"clipsource/pkg/models"
)

var (
	cueTimeRe = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}\.\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}\.\d{3})`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
)

// ParseVTT parses raw WEBVTT content into caption segments. Cue styling tags
// are stripped, multi-line cue text is joined, and cues with no remaining
// text are dropped. Malformed lines are skipped rather than failing the
// whole track; auto-generated captions are messy.
func ParseVTT(raw string) []models.CaptionSegment {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	lines := strings.Split(raw, "\n")

	var segs []models.CaptionSegment

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		i++

		if line == "" || strings.ToUpper(line) == "WEBVTT" {
			continue
		}

		m := cueTimeRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start := parseCueTime(m[1])
		end := parseCueTime(m[2])

		var textLines []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			t := tagRe.ReplaceAllString(strings.TrimSpace(lines[i]), "")
			if t != "" {
				textLines = append(textLines, t)
			}
			i++
		}

		text := strings.TrimSpace(strings.Join(textLines, " "))
		if text != "" {
			segs = append(segs, models.CaptionSegment{Start: start, End: end, Text: text})
		}
	}

	return segs
}

// parseCueTime converts "HH:MM:SS.mmm" to seconds.
func parseCueTime(s string) float64 {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return 0
	}
	hh, _ := strconv.Atoi(parts[0])
	mm, _ := strconv.Atoi(parts[1])
	secParts := strings.SplitN(parts[2], ".", 2)
	ss, _ := strconv.Atoi(secParts[0])
	ms := 0
	if len(secParts) == 2 {
		ms, _ = strconv.Atoi(secParts[1])
	}
	return float64(hh)*3600 + float64(mm)*60 + float64(ss) + float64(ms)/1000
}
