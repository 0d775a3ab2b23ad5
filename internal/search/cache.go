package search

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chess10kp/whereami/internal/logger"
	"github.com/chess10kp/whereami/internal/registry"
)

// DefaultCacheSize is used when a non-positive size is requested.
const DefaultCacheSize = 128

// CacheStats holds cache statistics
type CacheStats struct {
	Size    int     `json:"size" yaml:"size"`
	MaxSize int     `json:"max_size" yaml:"max_size"`
	Hits    int64   `json:"hits" yaml:"hits"`
	Misses  int64   `json:"misses" yaml:"misses"`
	HitRate float64 `json:"hit_rate" yaml:"hit_rate"`
}

// Ranker memoises Filter results per (snapshot content, query, options).
//
// Typing and deleting characters revisits the same queries against the same
// snapshot, and most timer refreshes return identical content.
type Ranker struct {
	opts    Options
	cache   *lru.Cache[string, DisplayList]
	maxSize int
	hits    int64
	misses  int64
	mu      sync.Mutex
}

// NewRanker creates a ranker. A size of zero disables caching.
func NewRanker(opts Options, size int) (*Ranker, error) {
	r := &Ranker{opts: opts}
	if size == 0 {
		return r, nil
	}
	if size < 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[string, DisplayList](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	r.cache = cache
	r.maxSize = size
	return r, nil
}

// Options returns the matching options in use.
func (r *Ranker) Options() Options {
	return r.opts
}

// Filter is search.Filter with memoisation. The returned list is shared
// with the cache and must not be modified.
func (r *Ranker) Filter(snap registry.Snapshot, query string) DisplayList {
	if r.cache == nil {
		return Filter(snap, query, r.opts)
	}

	log := logger.Component("search")
	key := r.makeKey(snap.Hash(), query)

	r.mu.Lock()
	defer r.mu.Unlock()

	if list, ok := r.cache.Get(key); ok {
		r.hits++
		log.Trace().Str("query", query).Int("results", len(list)).Msg("cache hit")
		return list
	}

	r.misses++
	list := Filter(snap, query, r.opts)
	r.cache.Add(key, list)
	log.Trace().Str("query", query).Int("results", len(list)).Msg("cache miss")
	return list
}

// Invalidate removes all cached entries
func (r *Ranker) Invalidate() {
	if r.cache == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Purge()
	r.hits = 0
	r.misses = 0
}

// Stats returns current cache statistics
func (r *Ranker) Stats() CacheStats {
	if r.cache == nil {
		return CacheStats{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	total := r.hits + r.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(r.hits) / float64(total)
	}

	return CacheStats{
		Size:    r.cache.Len(),
		MaxSize: r.maxSize,
		Hits:    r.hits,
		Misses:  r.misses,
		HitRate: hitRate,
	}
}

func (r *Ranker) makeKey(snapHash, query string) string {
	return fmt.Sprintf("%s:%t:%d:%s", snapHash, r.opts.CaseSensitive, r.opts.MaxResults, query)
}
