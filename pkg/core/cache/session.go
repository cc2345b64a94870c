package cache

import (
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/Laky-64/gologging"
	"github.com/google/uuid"
)

// ErrLinkExpired is reported when a callback references a key that is no
// longer in the registry and is not itself a usable link.
var ErrLinkExpired = errors.New("link expired")

const (
	// sessionKeyLen keeps the key short enough to embed in a button
	// payload alongside the action prefix and a quality suffix.
	sessionKeyLen = 8
	// keyAttempts bounds key regeneration when a freshly generated key
	// collides with a live session for a different URL.
	keyAttempts = 5

	defaultSessionTTL = 6 * time.Hour
	defaultSessionCap = 2048
)

// Session is the association between a short key and a submitted link.
// Meta is nil until the first metadata fetch completes.
type Session struct {
	Key    string
	URL    string
	UserID int64
	Meta   *MediaInfo
}

type sessionEntry struct {
	url     string
	userID  int64
	meta    *MediaInfo
	expires time.Time
}

// SessionCacher is a bounded, thread-safe registry of link sessions.
// Entries expire after a TTL; at capacity the entry closest to expiry is
// evicted so long-running deployments keep a bounded footprint.
type SessionCacher struct {
	mu         sync.RWMutex
	sessions   map[string]*sessionEntry
	ttl        time.Duration
	maxEntries int
}

// NewSessionCacher initializes a SessionCacher with the given TTL and
// capacity. A maxEntries of 0 means unbounded.
func NewSessionCacher(ttl time.Duration, maxEntries int) *SessionCacher {
	return &SessionCacher{
		sessions:   make(map[string]*sessionEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// newSessionKey generates a short random key for a session. It is a
// variable so tests can force collisions.
var newSessionKey = func() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:sessionKeyLen]
}

// Put registers a URL for a user and returns the generated key. If a
// generated key collides with a live session for a different URL, the key
// is regenerated; after keyAttempts the last writer wins, which is logged.
func (s *SessionCacher) Put(url string, userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := newSessionKey()
	for i := 0; i < keyAttempts; i++ {
		existing, ok := s.sessions[key]
		if !ok || existing.url == url || time.Now().After(existing.expires) {
			break
		}
		if i == keyAttempts-1 {
			gologging.WarnF("session key %s collided %d times, overwriting", key, keyAttempts)
			break
		}
		key = newSessionKey()
	}

	s.insert(key, url, userID)
	return key
}

// insert stores an entry under key, evicting if at capacity.
// The caller must hold the write lock.
func (s *SessionCacher) insert(key, url string, userID int64) {
	if _, exists := s.sessions[key]; !exists && s.maxEntries > 0 && len(s.sessions) >= s.maxEntries {
		s.evictOne()
	}
	s.sessions[key] = &sessionEntry{
		url:     url,
		userID:  userID,
		expires: time.Now().Add(s.ttl),
	}
}

// evictOne removes one expired entry, or failing that, the live entry
// closest to expiry. The caller must hold the write lock.
func (s *SessionCacher) evictOne() {
	now := time.Now()
	var oldestKey string
	var oldestExp time.Time
	for k, e := range s.sessions {
		if now.After(e.expires) {
			delete(s.sessions, k)
			return
		}
		if oldestKey == "" || e.expires.Before(oldestExp) {
			oldestKey = k
			oldestExp = e.expires
		}
	}
	if oldestKey != "" {
		delete(s.sessions, oldestKey)
	}
}

// Get returns a snapshot of the session stored under key.
func (s *SessionCacher) Get(key string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[key]
	if !ok || time.Now().After(e.expires) {
		return Session{}, false
	}
	return Session{Key: key, URL: e.url, UserID: e.userID, Meta: e.meta}, true
}

// AttachMeta stores resolver metadata on an existing session. It is a
// no-op when the key is absent, and metadata is only set once.
func (s *SessionCacher) AttachMeta(key string, meta *MediaInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[key]
	if !ok || time.Now().After(e.expires) {
		return
	}
	if e.meta == nil {
		e.meta = meta
	}
}

// Resolve maps a key back to its URL. When the key is unknown but is
// itself a well-formed link, it is treated as a legacy direct reference:
// short links were historically passed through un-tokenized because
// button payloads have a length ceiling. Such keys are re-registered so
// later callbacks find them.
func (s *SessionCacher) Resolve(key string, userID int64) (string, bool) {
	if sess, ok := s.Get(key); ok {
		return sess.URL, true
	}

	if ExtractURL(key) == key && key != "" {
		s.mu.Lock()
		s.insert(key, key, userID)
		s.mu.Unlock()
		return key, true
	}

	return "", false
}

// Delete removes a session by its key.
func (s *SessionCacher) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

// Len returns the number of stored sessions, counting expired ones not
// yet evicted.
func (s *SessionCacher) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sessions is the global session registry.
var Sessions = NewSessionCacher(defaultSessionTTL, defaultSessionCap)
