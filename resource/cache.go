package resource

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/mzki/puzzlescene/scene"
)

type kind int8

const (
	kindSprite kind = iota
	kindSound
	kindBackground
)

type cacheKey struct {
	kind kind
	name string
}

// CacheStats counts lookups of Cache.
type CacheStats struct {
	Hits   int64
	Misses int64
}

// Cache memoizes resolved resources of backend Catalog by LRU.
// Failed lookups are not cached. Cache is safe for concurrent use,
// since one catalog is shared by many scenes.
type Cache struct {
	backend scene.Catalog

	mu    sync.Mutex
	lru   *lru.Cache
	stats CacheStats
}

// NewCache returns Cache holding at most size entries.
// size <= 0 means DefaultCacheSize.
func NewCache(backend scene.Catalog, size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{backend: backend, lru: lru.New(size)}
}

func (c *Cache) lookup(key cacheKey) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

func (c *Cache) add(key cacheKey, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, v)
}

func (c *Cache) Sprite(name string) (scene.Sprite, error) {
	key := cacheKey{kindSprite, name}
	if v, ok := c.lookup(key); ok {
		return v.(scene.Sprite), nil
	}
	sp, err := c.backend.Sprite(name)
	if err != nil {
		return sp, err
	}
	c.add(key, sp)
	return sp, nil
}

func (c *Cache) Sound(name string) (scene.Sound, error) {
	key := cacheKey{kindSound, name}
	if v, ok := c.lookup(key); ok {
		return v.(scene.Sound), nil
	}
	snd, err := c.backend.Sound(name)
	if err != nil {
		return snd, err
	}
	c.add(key, snd)
	return snd, nil
}

func (c *Cache) Background(name string) (scene.Background, error) {
	key := cacheKey{kindBackground, name}
	if v, ok := c.lookup(key); ok {
		return v.(scene.Background), nil
	}
	bg, err := c.backend.Background(name)
	if err != nil {
		return bg, err
	}
	c.add(key, bg)
	return bg, nil
}

// Len returns number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Purge drops all of cached entries, e.g. after the manifest is reloaded.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
}
