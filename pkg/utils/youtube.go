package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

var shortsPathRe = regexp.MustCompile(`/shorts/([A-Za-z0-9_-]{11})`)

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL, or
// accepts a bare ID as-is. Supported forms: watch?v=, youtu.be/, /shorts/,
// /embed/ and /v/ paths.
func ExtractVideoID(urlOrID string) (string, error) {
	s := strings.TrimSpace(urlOrID)
	if videoIDRe.MatchString(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	host := strings.ToLower(u.Host)

	if strings.Contains(host, "youtu.be") {
		id := strings.TrimPrefix(u.Path, "/")
		if idx := strings.IndexByte(id, '/'); idx != -1 {
			id = id[:idx]
		}
		if videoIDRe.MatchString(id) {
			return id, nil
		}
		return "", fmt.Errorf("no video ID found in youtu.be URL: %s", urlOrID)
	}

	if strings.Contains(host, "youtube.com") {
		if v := u.Query().Get("v"); videoIDRe.MatchString(v) {
			return v, nil
		}
		if m := shortsPathRe.FindStringSubmatch(u.Path); m != nil {
			return m[1], nil
		}
		for _, prefix := range []string{"/embed/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id := strings.TrimPrefix(u.Path, prefix)
				if videoIDRe.MatchString(id) {
					return id, nil
				}
			}
		}
	}

	return "", fmt.Errorf("unable to extract video ID from URL: %s", urlOrID)
}

// IsYouTubeURL reports whether the string parses as a YouTube URL.
func IsYouTubeURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
}

// CanonicalWatchURL builds the canonical watch URL for a video ID.
func CanonicalWatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
