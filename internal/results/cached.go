package results

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/fifapredict/scorecast/internal/models"
)

// DefaultCacheTTL bounds how stale a cached match state may be. Live scores
// move fast, so the window is short.
const DefaultCacheTTL = 2 * time.Minute

// CachedProvider wraps a Provider with a short-TTL in-memory cache so that
// bulk pending checks do not hammer the upstream source.
type CachedProvider struct {
	inner     Provider
	cache     *cache.Cache
	ttl       time.Duration
	hitCount  uint64
	missCount uint64
}

// NewCachedProvider decorates inner with caching. A non-positive ttl falls
// back to DefaultCacheTTL.
func NewCachedProvider(inner Provider, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Lookup serves from cache when a fresh entry exists, otherwise delegates.
// Finished results are cached for much longer since they never change.
func (p *CachedProvider) Lookup(ctx context.Context, home, away string, kickoff time.Time) (models.MatchResult, error) {
	key := cacheKey(home, away, kickoff)

	if entry, found := p.cache.Get(key); found {
		atomic.AddUint64(&p.hitCount, 1)
		if result, ok := entry.(models.MatchResult); ok {
			return result, nil
		}
	}
	atomic.AddUint64(&p.missCount, 1)

	result, err := p.inner.Lookup(ctx, home, away, kickoff)
	if err != nil {
		return result, err
	}

	ttl := p.ttl
	if result.Status == models.StatusFinished {
		ttl = cache.NoExpiration
	}
	p.cache.Set(key, result, ttl)
	return result, nil
}

// Stats returns cache hit and miss counts
func (p *CachedProvider) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&p.hitCount), atomic.LoadUint64(&p.missCount)
}

// Flush empties the cache
func (p *CachedProvider) Flush() {
	p.cache.Flush()
}

func cacheKey(home, away string, kickoff time.Time) string {
	return fmt.Sprintf("%s:%s:%d", normalizeTeamName(home), normalizeTeamName(away), kickoff.Unix())
}
