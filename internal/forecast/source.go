package forecast

import "context"

// Source abstracts the remote hourly forecast provider.
type Source interface {
	// FetchHourly fetches the full hourly series for a place. The call
	// must honor ctx cancellation.
	FetchHourly(ctx context.Context, placeID string) (HourlySeries, error)

	// Name returns the source's name.
	Name() string
}
