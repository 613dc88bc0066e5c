package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rr-analyzer/internal/fitter"
	"github.com/yourusername/rr-analyzer/internal/models"
)

func testProfile() models.FrequencyProfile {
	return models.FrequencyProfile{
		Support: []float64{0, 2, 4, 6},
		Counts:  []float64{1, 3, 1},
		Width:   2,
		Min:     0,
		Max:     4,
	}
}

// TestNewKeyDeterministic tests that identical inputs share a key
func TestNewKeyDeterministic(t *testing.T) {
	opts := fitter.DefaultOptions()

	a := NewKey(testProfile(), 4, opts)
	b := NewKey(testProfile(), 4, opts)
	assert.Equal(t, a, b)
	assert.Len(t, a.String(), 36)
}

// TestNewKeyDistinguishesInputs tests that any input change yields a new key
func TestNewKeyDistinguishesInputs(t *testing.T) {
	opts := fitter.DefaultOptions()
	base := NewKey(testProfile(), 4, opts)

	counts := testProfile()
	counts.Counts = []float64{1, 3, 2}
	assert.NotEqual(t, base, NewKey(counts, 4, opts))

	assert.NotEqual(t, base, NewKey(testProfile(), 6, opts))

	finer := opts
	finer.RefineMinExponent = -4
	assert.NotEqual(t, base, NewKey(testProfile(), 4, finer))
}

// TestFitCacheGetSet tests cache Get and Set operations
func TestFitCacheGetSet(t *testing.T) {
	cache := NewFitCache(time.Hour, 10)
	defer cache.Clear()

	key := NewKey(testProfile(), 4, fitter.DefaultOptions())

	_, found := cache.Get(key)
	assert.False(t, found)

	fit := models.DistributionFit{Alpha: 2.5, Beta: 3.25, MaxDiff: 4, Score: 0.01}
	require.True(t, cache.Set(key, fit))

	retrieved, found := cache.Get(key)
	require.True(t, found)
	assert.Equal(t, fit, retrieved)

	hits, misses, ratio := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 0.5, ratio, 1e-12)
}

// TestFitCacheExpiration tests cache TTL expiration
func TestFitCacheExpiration(t *testing.T) {
	cache := NewFitCache(50*time.Millisecond, 10)
	defer cache.Clear()

	key := NewKey(testProfile(), 4, fitter.DefaultOptions())
	cache.Set(key, models.DistributionFit{Alpha: 1, Beta: 1, MaxDiff: 4})

	time.Sleep(120 * time.Millisecond)

	_, found := cache.Get(key)
	assert.False(t, found)
}

// TestFitCacheNoExpiration tests that a zero TTL keeps entries
func TestFitCacheNoExpiration(t *testing.T) {
	cache := NewFitCache(0, 0)
	key := NewKey(testProfile(), 4, fitter.DefaultOptions())
	cache.Set(key, models.DistributionFit{Alpha: 1, Beta: 1, MaxDiff: 4})

	_, found := cache.Get(key)
	assert.True(t, found)
}

// TestFitCacheMaxSize tests that a full cache refuses new entries
func TestFitCacheMaxSize(t *testing.T) {
	cache := NewFitCache(time.Hour, 2)
	opts := fitter.DefaultOptions()

	assert.True(t, cache.Set(NewKey(testProfile(), 4, opts), models.DistributionFit{}))
	assert.True(t, cache.Set(NewKey(testProfile(), 6, opts), models.DistributionFit{}))
	assert.False(t, cache.Set(NewKey(testProfile(), 8, opts), models.DistributionFit{}))
	assert.Equal(t, 2, cache.ItemCount())
}

// TestFitCacheClear tests that Clear resets entries and statistics
func TestFitCacheClear(t *testing.T) {
	cache := NewFitCache(time.Hour, 10)
	key := NewKey(testProfile(), 4, fitter.DefaultOptions())
	cache.Set(key, models.DistributionFit{})
	cache.Get(key)

	cache.Clear()

	assert.Equal(t, 0, cache.ItemCount())
	hits, misses, ratio := cache.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, ratio)
}
