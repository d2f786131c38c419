package design

import (
	"sync"

	"github.com/cwbudde/algo-sleep/dsp/filter/biquad"
)

// Cache stores designed filters by key. Implementations must be safe for
// concurrent use and must keep the first value stored for a key.
type Cache interface {
	Load(key Key) (*biquad.SOS, bool)
	// LoadOrStore returns the existing value for key if present. Otherwise
	// it stores sos and returns it. loaded reports whether a value existed.
	LoadOrStore(key Key, sos *biquad.SOS) (actual *biquad.SOS, loaded bool)
}

// MapCache is an unbounded insert-if-absent Cache backed by sync.Map.
// Reads never take a lock.
type MapCache struct {
	m sync.Map
}

// NewCache returns an empty MapCache.
func NewCache() *MapCache {
	return &MapCache{}
}

// Load implements Cache.
func (c *MapCache) Load(key Key) (*biquad.SOS, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}

	return v.(*biquad.SOS), true
}

// LoadOrStore implements Cache.
func (c *MapCache) LoadOrStore(key Key, sos *biquad.SOS) (*biquad.SOS, bool) {
	v, loaded := c.m.LoadOrStore(key, sos)

	return v.(*biquad.SOS), loaded
}

// Len returns the number of cached designs.
func (c *MapCache) Len() int {
	n := 0

	c.m.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}
