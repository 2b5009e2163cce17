package cache

import (
	"sync"
	"time"
)

// Store is an in-process TTL cache
// ⭐ SSOT: 프로세스 내 캐시는 여기서만 (Redis 비활성화 시 대체재)
// 동일 키를 읽고 쓰는 동시 호출자는 mutex로 보호된다.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// DefaultTTL is applied when Set is called with ttl <= 0.
const DefaultTTL = time.Hour

// New creates a cache store with the default TTL.
func New() *Store {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates a cache store with a custom default TTL.
func NewWithTTL(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries:    make(map[string]entry),
		defaultTTL: ttl,
	}
}

// Get returns the cached value for key, or false if absent/expired.
// 만료된 엔트리는 조회 시점에 제거된다.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		// Re-check under write lock: another caller may have refreshed the key.
		if cur, ok := s.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under key with the given TTL (<=0 uses the default).
func (s *Store) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
}

// Delete removes a key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Exists reports whether key is present and not expired.
func (s *Store) Exists(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// TTL returns the remaining TTL for key, or -1 if absent/expired.
func (s *Store) TTL(key string) time.Duration {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return -1
	}

	remaining := time.Until(e.expiresAt)
	if remaining <= 0 {
		return -1
	}
	return remaining
}

// Len returns the number of entries, including not-yet-collected expired ones.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
