package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"weathertui/internal/forecast"
)

const (
	meteosourceBaseURL = "https://ai-weather-by-meteosource.p.rapidapi.com/hourly"
	meteosourceHost    = "ai-weather-by-meteosource.p.rapidapi.com"
)

// MeteosourceSource implements forecast.Source for the AI Weather by
// Meteosource API on RapidAPI.
type MeteosourceSource struct {
	name    string
	apiKey  string
	baseURL string
	host    string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewMeteosourceSource(client *http.Client, apiKey string) *MeteosourceSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "meteosource",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &MeteosourceSource{
		name:    "meteosource",
		apiKey:  apiKey,
		baseURL: meteosourceBaseURL,
		host:    meteosourceHost,
		client:  client,
		circuit: cb,
	}
}

func (s *MeteosourceSource) Name() string {
	return s.name
}

// FetchHourly performs a single request for the hourly series. There is
// no retry loop: a failed fetch is surfaced as-is and the caller decides
// whether to try again. The circuit breaker only refuses calls while the
// provider has been failing, which counts as a connection failure since
// the network was never reached.
func (s *MeteosourceSource) FetchHourly(ctx context.Context, placeID string) (forecast.HourlySeries, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("meteosource api key is not configured")
	}

	values := url.Values{}
	values.Set("place_id", placeID)

	u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", s.apiKey)
	req.Header.Set("X-RapidAPI-Host", s.host)

	result, err := s.circuit.Execute(func() (interface{}, error) {
		resp, execErr := s.client.Do(req)
		if execErr != nil {
			return nil, &forecast.Error{Kind: forecast.KindConnectionFailed, Err: execErr}
		}

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, forecast.StatusError(resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &forecast.Error{Kind: forecast.KindConnectionFailed, Err: err}
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	var payload struct {
		Hourly struct {
			Data forecast.HourlySeries `json:"data"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, forecast.Errf(forecast.KindMalformedPayload, "decoding hourly payload: %v", err)
	}
	if len(payload.Hourly.Data) == 0 {
		return nil, forecast.Errf(forecast.KindMalformedPayload, "payload has no hourly data")
	}

	return payload.Hourly.Data, nil
}

var _ forecast.Source = (*MeteosourceSource)(nil)
