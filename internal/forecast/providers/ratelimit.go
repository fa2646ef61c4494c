package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"weathertui/internal/forecast"
)

// RateLimitedSource wraps a forecast.Source with burst protection. This
// is independent of the monthly request ledger: it only smooths the
// short-term call rate so the provider has less reason to answer 429.
type RateLimitedSource struct {
	source  forecast.Source
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource creates a new rate limited source.
// rps is the maximum requests per second allowed (can be fractional),
// burst is the maximum burst size allowed.
func NewRateLimitedSource(source forecast.Source, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchHourly fetches the hourly series, waiting for rate limiter
// permission or context cancellation first.
func (r *RateLimitedSource) FetchHourly(ctx context.Context, placeID string) (forecast.HourlySeries, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchHourly(ctx, placeID)
}

// Name returns the source name.
func (r *RateLimitedSource) Name() string {
	return r.name
}

var _ forecast.Source = (*RateLimitedSource)(nil)
