package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare link", "https://example.com/v/123", "https://example.com/v/123"},
		{"link inside text", "check this https://example.com/v/123 out", "https://example.com/v/123"},
		{"http scheme", "http://example.com/a", "http://example.com/a"},
		{"first of two", "https://a.com/1 https://b.com/2", "https://a.com/1"},
		{"query and fragment", "see https://example.com/w?v=abc#t=1m", "https://example.com/w?v=abc#t=1m"},
		{"no link", "hello there", ""},
		{"scheme only elsewhere", "ftp://example.com/file", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractURL(tt.text))
		})
	}
}
