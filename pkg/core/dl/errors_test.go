package dl

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClassifyResolverError(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   error
	}{
		{"private video", "ERROR: Private video. Sign in if you've been granted access", ErrRestricted},
		{"login required", "ERROR: This video requires LOGIN to view", ErrRestricted},
		{"sign in wall", "ERROR: Sign in to confirm your age", ErrRestricted},
		{"unsupported site", "ERROR: Unsupported URL: https://ex.co", ErrExtractionFailed},
		{"empty stderr", "", ErrExtractionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyResolverError(tt.stderr, ErrExtractionFailed)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClassifyResolverErrorKeepsFallback(t *testing.T) {
	err := classifyResolverError("ERROR: network unreachable", ErrDownloadFailed)
	assert.ErrorIs(t, err, ErrDownloadFailed)
	assert.NotErrorIs(t, err, ErrRestricted)
}

func TestErrDetailBounded(t *testing.T) {
	long := strings.Repeat("x", 500) + "\nsecond line"
	detail := errDetail(long)
	assert.LessOrEqual(t, utf8.RuneCountInString(detail), 100)
	assert.NotContains(t, detail, "second line")

	assert.Equal(t, "no further detail", errDetail("  \n"))
}

func TestErrDetailMultibyte(t *testing.T) {
	detail := errDetail("ERROR: " + strings.Repeat("א", 200))
	assert.True(t, utf8.ValidString(detail), "truncation must not split a rune")
	assert.Equal(t, 100, utf8.RuneCountInString(detail))
}
