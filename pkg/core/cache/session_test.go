package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionPutResolveRoundTrip(t *testing.T) {
	s := NewSessionCacher(time.Minute, 16)

	key := s.Put("https://example.com/v/123", 42)
	require.Len(t, key, 8)

	url, ok := s.Resolve(key, 42)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/v/123", url)
}

func TestSessionKeysAreUnique(t *testing.T) {
	s := NewSessionCacher(time.Minute, 64)

	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		key := s.Put("https://example.com/v/123", 1)
		assert.False(t, seen[key], "key %q issued twice", key)
		seen[key] = true
	}
	assert.Equal(t, 32, s.Len(), "same URL twice must yield two sessions")
}

func TestSessionPutOverwritesExhaustedKey(t *testing.T) {
	s := NewSessionCacher(time.Minute, 16)

	orig := newSessionKey
	newSessionKey = func() string { return "c0ffee00" }
	t.Cleanup(func() { newSessionKey = orig })

	first := s.Put("https://ex.co/a", 1)
	require.Equal(t, "c0ffee00", first)

	// Every regeneration collides with a live session for another URL,
	// so the last writer takes over the key.
	second := s.Put("https://ex.co/b", 2)
	assert.Equal(t, "c0ffee00", second)

	sess, ok := s.Get("c0ffee00")
	require.True(t, ok)
	assert.Equal(t, "https://ex.co/b", sess.URL)
	assert.Equal(t, int64(2), sess.UserID)
	assert.Equal(t, 1, s.Len())
}

func TestSessionResolveUnknownKey(t *testing.T) {
	s := NewSessionCacher(time.Minute, 16)

	_, ok := s.Resolve("deadbeef", 1)
	assert.False(t, ok)
}

func TestSessionResolveRawURLFallback(t *testing.T) {
	s := NewSessionCacher(time.Minute, 16)

	url, ok := s.Resolve("https://ex.co/v", 7)
	require.True(t, ok)
	assert.Equal(t, "https://ex.co/v", url)

	// The raw link is re-registered under itself for later callbacks.
	sess, ok := s.Get("https://ex.co/v")
	require.True(t, ok)
	assert.Equal(t, int64(7), sess.UserID)
}

func TestSessionExpiry(t *testing.T) {
	s := NewSessionCacher(10*time.Millisecond, 16)

	key := s.Put("https://example.com/v/123", 1)
	time.Sleep(30 * time.Millisecond)

	_, ok := s.Get(key)
	assert.False(t, ok)
	_, ok = s.Resolve(key, 1)
	assert.False(t, ok, "an expired opaque key must not resolve")
}

func TestSessionCapacityEviction(t *testing.T) {
	s := NewSessionCacher(time.Minute, 4)

	for i := 0; i < 10; i++ {
		s.Put("https://example.com/v/123", 1)
	}
	assert.LessOrEqual(t, s.Len(), 4)
}

func TestSessionAttachMetaSetOnce(t *testing.T) {
	s := NewSessionCacher(time.Minute, 16)
	key := s.Put("https://example.com/v/123", 1)

	first := &MediaInfo{Title: "first"}
	s.AttachMeta(key, first)
	s.AttachMeta(key, &MediaInfo{Title: "second"})

	sess, ok := s.Get(key)
	require.True(t, ok)
	assert.Equal(t, "first", sess.Meta.Title)
}

func TestSessionAttachMetaMissingKey(t *testing.T) {
	s := NewSessionCacher(time.Minute, 16)

	s.AttachMeta("nope", &MediaInfo{Title: "x"})
	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestSessionDelete(t *testing.T) {
	s := NewSessionCacher(time.Minute, 16)
	key := s.Put("https://example.com/v/123", 1)

	s.Delete(key)
	_, ok := s.Get(key)
	assert.False(t, ok)
}
