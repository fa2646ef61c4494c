package forecast

import (
	"context"
	"log"
	"time"
)

// Cache is the contract the on-disk forecast store must satisfy.
type Cache interface {
	// Get returns the cached forecast for a key, ok=false when absent.
	Get(key Key) (HourForecast, bool, error)
	// Put writes through, silently overwriting an existing entry.
	Put(key Key, value HourForecast) error
}

// Ledger is the contract the persisted request-count ledger must satisfy.
type Ledger interface {
	// Remaining reports the counted requests still allowed, never negative.
	Remaining() int
	// Count reports counted requests made so far.
	Count() int
	// RecordRequest stamps the last-attempt time and, when counted,
	// increments the count by exactly one.
	RecordRequest(ts time.Time, counted bool) error
}

// SeriesFetcher is the deadline-bounded fetch the engine delegates to.
type SeriesFetcher interface {
	Fetch(ctx context.Context, placeID string) (HourlySeries, error)
}

// Engine decides, per request, between answering from cache and doing a
// quota-guarded bounded fetch.
type Engine struct {
	cache   Cache
	ledger  Ledger
	fetcher SeriesFetcher
}

// NewEngine creates a new Engine.
func NewEngine(cache Cache, ledger Ledger, fetcher SeriesFetcher) *Engine {
	return &Engine{
		cache:   cache,
		ledger:  ledger,
		fetcher: fetcher,
	}
}

// Acquire answers a (location, day, hour) request: cache check first,
// then a quota-gated fetch. Cache hits and refused attempts are never
// counted against the quota; every attempt stamps the last-request time.
func (e *Engine) Acquire(ctx context.Context, key Key, now time.Time) (HourForecast, error) {
	key = key.Normalize()
	if err := key.Validate(); err != nil {
		return HourForecast{}, err
	}

	index, effectiveDay, err := ComputeSlot(key.Hour, key.Day, now)
	if err != nil {
		return HourForecast{}, err
	}

	effKey := key
	effKey.Day = effectiveDay

	cached, ok, err := e.cache.Get(effKey)
	if err != nil {
		return HourForecast{}, err
	}
	if ok {
		e.stamp(now)
		cached.FromCache = true
		return cached, nil
	}

	if e.ledger.Remaining() == 0 {
		return HourForecast{}, Errf(KindQuotaExhausted, "request ceiling reached")
	}

	series, err := e.fetcher.Fetch(ctx, effKey.Location)
	if err != nil {
		e.stamp(now)
		return HourForecast{}, ClassifyErr(err)
	}

	value, err := series.At(index)
	if err != nil {
		e.stamp(now)
		return HourForecast{}, err
	}

	if err := e.cache.Put(effKey, value); err != nil {
		return HourForecast{}, err
	}
	if err := e.ledger.RecordRequest(now, true); err != nil {
		return HourForecast{}, err
	}
	return value, nil
}

// stamp records an uncounted attempt; a failure here must not mask the
// outcome already decided, so it is only logged.
func (e *Engine) stamp(now time.Time) {
	if err := e.ledger.RecordRequest(now, false); err != nil {
		log.Printf("ledger stamp failed: %v", err)
	}
}

// Remaining reports the counted requests still allowed this period.
func (e *Engine) Remaining() int {
	return e.ledger.Remaining()
}

// RequestCount reports counted requests made this period.
func (e *Engine) RequestCount() int {
	return e.ledger.Count()
}
