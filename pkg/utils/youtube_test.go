package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	const vid = "qp0HIF3SfI4"

	for _, input := range []string{
		vid,
		"https://www.youtube.com/watch?v=" + vid,
		"https://youtu.be/" + vid,
		"https://www.youtube.com/shorts/" + vid,
		"https://www.youtube.com/embed/" + vid,
		"https://www.youtube.com/v/" + vid,
		"https://www.youtube.com/watch?v=" + vid + "&t=42s",
	} {
		got, err := ExtractVideoID(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, vid, got, "input %q", input)
	}
}

func TestExtractVideoIDRejectsNonVideo(t *testing.T) {
	for _, input := range []string{
		"https://example.com",
		"https://www.youtube.com/feed/trending",
		"not a url at all",
		"",
	} {
		_, err := ExtractVideoID(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, IsYouTubeURL("https://www.youtube.com/watch?v=abc"))
	assert.True(t, IsYouTubeURL("https://youtu.be/abc"))
	assert.False(t, IsYouTubeURL("https://vimeo.com/12345"))
}

func TestCanonicalWatchURL(t *testing.T) {
	assert.Equal(t,
		"https://www.youtube.com/watch?v=qp0HIF3SfI4",
		CanonicalWatchURL("qp0HIF3SfI4"))
}
