package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:03.500
People don't buy <c>what</c> you do

00:00:03.500 --> 00:00:06.000 align:start position:0%
they buy why
you do it

00:00:06.000 --> 00:00:08.000

00:05:38.200 --> 00:05:40.400
start with why
`

func TestParseVTT(t *testing.T) {
	segs := ParseVTT(sampleVTT)
	require.Len(t, segs, 3)

	assert.Equal(t, 1.0, segs[0].Start)
	assert.Equal(t, 3.5, segs[0].End)
	assert.Equal(t, "People don't buy what you do", segs[0].Text)

	assert.Equal(t, "they buy why you do it", segs[1].Text)

	assert.InDelta(t, 338.2, segs[2].Start, 1e-9)
	assert.InDelta(t, 340.4, segs[2].End, 1e-9)
	assert.Equal(t, "start with why", segs[2].Text)
}

func TestParseVTTWindowsLineEndings(t *testing.T) {
	raw := "WEBVTT\r\n\r\n00:00:00.000 --> 00:00:02.000\r\nhello there\r\n"
	segs := ParseVTT(raw)
	require.Len(t, segs, 1)
	assert.Equal(t, "hello there", segs[0].Text)
	assert.Equal(t, 2.0, segs[0].End)
}

func TestParseVTTEmpty(t *testing.T) {
	assert.Empty(t, ParseVTT(""))
	assert.Empty(t, ParseVTT("WEBVTT\n\n"))
	assert.Empty(t, ParseVTT("not a caption file at all"))
}

func TestParseCueTime(t *testing.T) {
	assert.Equal(t, 0.0, parseCueTime("00:00:00.000"))
	assert.InDelta(t, 3723.456, parseCueTime("01:02:03.456"), 1e-9)
}

func TestPickBestTrackLang(t *testing.T) {
	assert.Equal(t, "en", trackLang("sub.en.vtt"))
	assert.Equal(t, "en-US", trackLang("sub.en-US.vtt"))
	assert.Equal(t, "", trackLang("sub.vtt"))
}
