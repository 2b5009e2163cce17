package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetGet(t *testing.T) {
	s := New()

	s.Set("k", "v", time.Minute)

	got, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestStore_Expiry(t *testing.T) {
	s := New()

	s.Set("k", 42, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := s.Get("k")
	assert.False(t, ok)
	assert.False(t, s.Exists("k"))
	assert.Equal(t, time.Duration(-1), s.TTL("k"))
}

func TestStore_DefaultTTL(t *testing.T) {
	s := NewWithTTL(time.Minute)

	s.Set("k", "v", 0) // 0이면 기본 TTL 적용

	ttl := s.TTL("k")
	assert.Greater(t, ttl, 50*time.Second)
	assert.LessOrEqual(t, ttl, time.Minute)
}

func TestStore_DeleteClear(t *testing.T) {
	s := New()

	s.Set("a", 1, time.Minute)
	s.Set("b", 2, time.Minute)

	s.Delete("a")
	assert.False(t, s.Exists("a"))
	assert.True(t, s.Exists("b"))

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%5)
			s.Set(key, n, time.Minute)
			s.Get(key)
			s.Exists(key)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 5)
}
