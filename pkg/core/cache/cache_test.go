package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache[string](time.Minute, 8)

	c.Set("a", "one")
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "one", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache[int](10*time.Millisecond, 8)

	c.Set("a", 1)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCacheSetWithTTL(t *testing.T) {
	c := NewCache[int](time.Minute, 8)

	c.SetWithTTL("short", 1, 10*time.Millisecond)
	c.Set("long", 2)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("long")
	assert.True(t, ok)
}

func TestCacheCapacity(t *testing.T) {
	c := NewCache[int](time.Minute, 4)

	for i := 0; i < 10; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	assert.LessOrEqual(t, c.Len(), 4)
}

func TestCacheEvictsExpiredFirst(t *testing.T) {
	c := NewCache[int](time.Minute, 2)

	c.SetWithTTL("stale", 1, time.Nanosecond)
	c.Set("fresh", 2)
	time.Sleep(time.Millisecond)
	c.Set("new", 3)

	_, ok := c.Get("fresh")
	assert.True(t, ok, "a live entry must survive when an expired one can be evicted")
	_, ok = c.Get("new")
	assert.True(t, ok)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache[int](time.Minute, 8)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
