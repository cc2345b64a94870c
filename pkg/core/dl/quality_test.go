package dl

import (
	"testing"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoFormat(id string, height int) cache.Format {
	return cache.Format{FormatID: id, Height: height, VCodec: "avc1", ACodec: "mp4a", Ext: "mp4"}
}

func audioFormat(id string, abr float64) cache.Format {
	return cache.Format{FormatID: id, VCodec: "none", ACodec: "opus", ABR: abr, Ext: "webm"}
}

func TestQualityOptionsRankedAndDeduped(t *testing.T) {
	info := &cache.MediaInfo{Formats: []cache.Format{
		videoFormat("a", 480),
		videoFormat("b", 1080),
		videoFormat("c", 720),
		videoFormat("d", 1080),
	}}

	options := QualityOptions(info, 6)
	require.Len(t, options, 3)
	assert.Equal(t, 1080, options[0].Height)
	assert.Equal(t, "1080p", options[0].Label)
	assert.Equal(t, 720, options[1].Height)
	assert.Equal(t, 480, options[2].Height)
}

func TestQualityOptionsAppendsBestAudio(t *testing.T) {
	info := &cache.MediaInfo{Formats: []cache.Format{
		videoFormat("v", 720),
		audioFormat("low", 64),
		audioFormat("high", 160),
	}}

	options := QualityOptions(info, 6)
	require.Len(t, options, 2)

	audio := options[1]
	assert.True(t, audio.AudioOnly)
	assert.Equal(t, HeightAudio, audio.Height)
	assert.Equal(t, "high", audio.FormatID)
}

func TestQualityOptionsTruncation(t *testing.T) {
	// Six distinct video heights plus an audio track: truncation keeps
	// the six video rows and drops the audio one.
	info := &cache.MediaInfo{Formats: []cache.Format{
		videoFormat("a", 1080),
		videoFormat("b", 1080),
		videoFormat("c", 720),
		videoFormat("d", 480),
		videoFormat("e", 240),
		videoFormat("f", 144),
		videoFormat("g", 96),
		audioFormat("h", 128),
	}}

	options := QualityOptions(info, 6)
	require.Len(t, options, 6)
	for _, opt := range options {
		assert.False(t, opt.AudioOnly)
	}
	assert.Equal(t, 1080, options[0].Height)
	assert.Equal(t, 96, options[5].Height)
}

func TestQualityOptionsIgnoresHeightlessVideo(t *testing.T) {
	info := &cache.MediaInfo{Formats: []cache.Format{
		{FormatID: "sb", VCodec: "avc1", ACodec: "none", Height: 0},
		videoFormat("v", 360),
	}}

	options := QualityOptions(info, 6)
	require.Len(t, options, 1)
	assert.Equal(t, 360, options[0].Height)
}

func TestQualityOptionsAudioOnlySource(t *testing.T) {
	info := &cache.MediaInfo{Formats: []cache.Format{
		audioFormat("a", 128),
	}}

	options := QualityOptions(info, 6)
	require.Len(t, options, 1)
	assert.True(t, options[0].AudioOnly)
}

func TestQualityOptionsEmptyFormats(t *testing.T) {
	assert.Empty(t, QualityOptions(&cache.MediaInfo{}, 6))
}

func TestQualityOptionsDefaultMax(t *testing.T) {
	var formats []cache.Format
	for h := 100; h <= 1000; h += 100 {
		formats = append(formats, videoFormat("v", h))
	}
	info := &cache.MediaInfo{Formats: formats}

	options := QualityOptions(info, 0)
	assert.Len(t, options, DefaultMaxQualities)
}
