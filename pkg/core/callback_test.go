package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Query
	}{
		{"info", "info:a1b2c3d4", Query{Action: ActionInfo, Key: "a1b2c3d4"}},
		{"download", "download:a1b2c3d4", Query{Action: ActionDownload, Key: "a1b2c3d4"}},
		{"quality video", "quality:a1b2c3d4:720", Query{Action: ActionQuality, Key: "a1b2c3d4", Quality: "720"}},
		{"quality audio", "quality:a1b2c3d4:audio", Query{Action: ActionQuality, Key: "a1b2c3d4", Quality: "audio"}},
		{"cancel", "cancel:a1b2c3d4", Query{Action: ActionCancel, Key: "a1b2c3d4"}},
		{"close", "close", Query{Action: ActionClose}},
		// A legacy key may be a raw URL full of colons. The quality is
		// always the rightmost segment.
		{"quality with URL key", "quality:https://ex.com/v:720", Query{Action: ActionQuality, Key: "https://ex.com/v", Quality: "720"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQueryRejectsMalformed(t *testing.T) {
	for _, data := range []string{
		"",
		"info",
		"info:",
		"quality:key",
		"quality:key:",
		"quality::720",
		"explode:key",
		"setlang_en",
	} {
		_, err := ParseQuery(data)
		assert.ErrorIs(t, err, ErrBadQuery, "payload %q", data)
	}
}

func TestQueryStringRoundTrip(t *testing.T) {
	queries := []Query{
		{Action: ActionInfo, Key: "a1b2c3d4"},
		{Action: ActionDownload, Key: "a1b2c3d4"},
		{Action: ActionQuality, Key: "a1b2c3d4", Quality: "1080"},
		{Action: ActionQuality, Key: "a1b2c3d4", Quality: "audio"},
		{Action: ActionCancel, Key: "a1b2c3d4"},
		{Action: ActionClose},
	}

	for _, q := range queries {
		got, err := ParseQuery(q.String())
		require.NoError(t, err)
		assert.Equal(t, q, got)
	}
}
