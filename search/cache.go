package search

import (
	"context"
	"errors"
	"time"

	"github.com/kmorales/wayfarer/pkg/cache"
	"github.com/kmorales/wayfarer/pkg/logger"
)

// resultCache memoizes scored per-leg results keyed by SearchKey. Expiry is
// the backend's concern: the in-process backend checks TTL lazily on read,
// Redis expires server-side. Either way an entry past its TTL is never
// surfaced.
type resultCache struct {
	mgr *cache.Manager
	ttl time.Duration
	log *logger.Logger
}

func newResultCache(backend cache.Cache, ttl time.Duration, log *logger.Logger) *resultCache {
	if ttl <= 0 {
		ttl = cache.ResultTTL
	}
	return &resultCache{mgr: cache.NewManager(backend), ttl: ttl, log: log}
}

func (r *resultCache) keyString(key SearchKey) string {
	return cache.SearchResultKey(key.Origin, key.Destination, key.Date, string(key.Cabin), key.Passengers, string(key.Stops))
}

func (r *resultCache) get(ctx context.Context, key SearchKey) ([]ScoredFlight, bool) {
	var flights []ScoredFlight
	err := r.mgr.GetJSON(ctx, r.keyString(key), &flights)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.log.Warn("result cache read failed", "key", key.String(), "error", err)
		}
		return nil, false
	}
	return flights, true
}

func (r *resultCache) set(ctx context.Context, key SearchKey, flights []ScoredFlight) {
	if err := r.mgr.SetJSON(ctx, r.keyString(key), flights, r.ttl); err != nil {
		// A write failure costs a future provider call, nothing more.
		r.log.Warn("result cache write failed", "key", key.String(), "error", err)
	}
}

func (r *resultCache) clear(ctx context.Context) {
	if err := r.mgr.Clear(ctx); err != nil {
		r.log.Warn("result cache clear failed", "error", err)
	}
}
