// Package cache provides in-memory caching for distribution fits.
package cache

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/rr-analyzer/internal/fitter"
	"github.com/yourusername/rr-analyzer/internal/metrics"
	"github.com/yourusername/rr-analyzer/internal/models"
)

// keyNamespace scopes profile fingerprints
var keyNamespace = uuid.MustParse("6f1c2a9e-3b7d-4d8e-9a51-0c2f4e7b8d13")

// Key identifies a fit by its input profile, support bound and search options
type Key uuid.UUID

// NewKey derives a deterministic key for a fit of profile over [0, maxDiff]
func NewKey(profile models.FrequencyProfile, maxDiff int, opts fitter.Options) Key {
	var b strings.Builder
	writeFloats(&b, profile.Support)
	b.WriteByte('|')
	writeFloats(&b, profile.Counts)
	fmt.Fprintf(&b, "|%d|%g:%g:%g|%d:%d|%g|%d",
		maxDiff,
		opts.CoarseMin, opts.CoarseMax, opts.CoarseStep,
		opts.RefineMinExponent, opts.RefineMaxExponent,
		opts.WindowFactor, opts.MaxPasses,
	)
	return Key(uuid.NewSHA1(keyNamespace, []byte(b.String())))
}

// String returns string representation of cache key
func (k Key) String() string {
	return uuid.UUID(k).String()
}

func writeFloats(b *strings.Builder, values []float64) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}

// FitCache provides in-memory caching for beta-binomial fits
type FitCache struct {
	cache     *gocache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewFitCache creates a new fit cache. A zero ttl keeps entries until cleared.
func NewFitCache(ttl time.Duration, maxSize int) *FitCache {
	expiration := ttl
	cleanup := ttl * 2
	if ttl <= 0 {
		expiration = gocache.NoExpiration
		cleanup = 0
	}
	return &FitCache{
		cache:   gocache.New(expiration, cleanup),
		ttl:     expiration,
		maxSize: maxSize,
	}
}

// Get retrieves a cached fit
func (fc *FitCache) Get(key Key) (models.DistributionFit, bool) {
	if result, found := fc.cache.Get(key.String()); found {
		if fit, ok := result.(models.DistributionFit); ok {
			fc.hitCount.Add(1)
			fc.updateMetrics()
			return fit, true
		}
	}

	fc.missCount.Add(1)
	fc.updateMetrics()
	return models.DistributionFit{}, false
}

// Set stores a fit in cache. When the cache is full and expiring entries do
// not free space, the fit is not stored.
func (fc *FitCache) Set(key Key, fit models.DistributionFit) bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.maxSize > 0 && fc.cache.ItemCount() >= fc.maxSize {
		fc.cache.DeleteExpired()
		if fc.cache.ItemCount() >= fc.maxSize {
			return false
		}
	}

	fc.cache.Set(key.String(), fit, fc.ttl)
	return true
}

// Clear flushes the entire cache
func (fc *FitCache) Clear() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.cache.Flush()
	fc.hitCount.Store(0)
	fc.missCount.Store(0)
}

// Stats returns cache statistics
func (fc *FitCache) Stats() (hits, misses uint64, ratio float64) {
	hits = fc.hitCount.Load()
	misses = fc.missCount.Load()
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (fc *FitCache) ItemCount() int {
	return fc.cache.ItemCount()
}

func (fc *FitCache) updateMetrics() {
	_, _, ratio := fc.Stats()
	metrics.UpdateFitCacheHitRatio(ratio)
}
