package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultFetchDeadline bounds a single network fetch end to end.
const DefaultFetchDeadline = 60 * time.Second

// Fetcher runs a source fetch inside a hard deadline. The fetch itself
// runs in its own goroutine; the deadline is enforced with a context so
// a hung transport cannot block the caller past it. Every call produces
// exactly one terminal outcome and leaves no worker behind: the result
// channel is buffered so a late worker can always deliver and exit, and
// cancelling the context aborts its in-flight request.
type Fetcher struct {
	source   Source
	deadline time.Duration
}

// NewFetcher wraps a source with the given deadline; zero or negative
// deadlines fall back to DefaultFetchDeadline.
func NewFetcher(source Source, deadline time.Duration) *Fetcher {
	if deadline <= 0 {
		deadline = DefaultFetchDeadline
	}
	return &Fetcher{source: source, deadline: deadline}
}

type fetchResult struct {
	series HourlySeries
	err    error
}

// Fetch retrieves the hourly series for a place, returning Timeout when
// the deadline expires first and ConnectionFailed when the worker dies
// without producing a result.
func (f *Fetcher) Fetch(ctx context.Context, placeID string) (HourlySeries, error) {
	ctx, cancel := context.WithTimeout(ctx, f.deadline)
	defer cancel()

	results := make(chan fetchResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				results <- fetchResult{err: &Error{
					Kind: KindConnectionFailed,
					Err:  fmt.Errorf("fetch worker crashed: %v", r),
				}}
			}
		}()

		series, err := f.source.FetchHourly(ctx, placeID)
		results <- fetchResult{series: series, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &Error{Kind: KindTimeout, Err: ctx.Err()}
		}
		return nil, &Error{Kind: KindConnectionFailed, Err: ctx.Err()}
	case res := <-results:
		if res.err != nil {
			return nil, ClassifyErr(res.err)
		}
		return res.series, nil
	}
}
