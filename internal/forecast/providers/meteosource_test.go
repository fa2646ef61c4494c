package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"weathertui/internal/forecast"
)

const hourlyPayload = `{
  "hourly": {
    "data": [
      {
        "weather": "partly_sunny",
        "temperature": 18.2,
        "feels_like": 17.0,
        "wind_chill": 16.4,
        "dew_point": 9.1,
        "pressure": 1016,
        "ozone": 310.5,
        "uv_index": 4,
        "humidity": 55,
        "visibility": 23.9,
        "probability": {"precipitation": 20},
        "precipitation": {"type": "none"},
        "wind": {"speed": 3.4, "gusts": 6.1, "dir": "WNW", "angle": 290}
      }
    ]
  }
}`

func newTestSource(t *testing.T, handler http.HandlerFunc) (*MeteosourceSource, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewMeteosourceSource(srv.Client(), "test-key")
	s.baseURL = srv.URL
	return s, srv
}

func TestFetchHourlyDecodesSeries(t *testing.T) {
	var gotPlace, gotKey string
	s, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPlace = r.URL.Query().Get("place_id")
		gotKey = r.Header.Get("X-RapidAPI-Key")
		w.Write([]byte(hourlyPayload))
	})

	series, err := s.FetchHourly(context.Background(), "berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPlace != "berlin" {
		t.Fatalf("expected place_id=berlin, got %q", gotPlace)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header not sent")
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(series))
	}

	slot := series[0]
	if slot.Weather != "partly_sunny" || slot.Temperature != 18.2 {
		t.Fatalf("basic fields not decoded: %+v", slot)
	}
	if slot.Probability.Precipitation != 20 || slot.Precipitation.Type != "none" {
		t.Fatalf("nested precipitation fields not decoded: %+v", slot)
	}
	if slot.Wind.Speed != 3.4 || slot.Wind.Dir != "WNW" || slot.Wind.Angle != 290 {
		t.Fatalf("nested wind fields not decoded: %+v", slot)
	}
}

func TestFetchHourlyClassifiesStatuses(t *testing.T) {
	cases := []struct {
		status int
		want   forecast.Kind
	}{
		{http.StatusTooManyRequests, forecast.KindRateLimited},
		{http.StatusForbidden, forecast.KindForbidden},
		{http.StatusNotFound, forecast.KindNotFound},
		{http.StatusInternalServerError, forecast.KindServerError},
		{http.StatusServiceUnavailable, forecast.KindServiceUnavailable},
		{http.StatusTeapot, forecast.KindUnknownHTTP},
	}

	for _, tc := range cases {
		status := tc.status
		s, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := s.FetchHourly(context.Background(), "berlin")
		if forecast.KindOf(err) != tc.want {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.want, err)
		}
	}
}

func TestFetchHourlyEmptySeries(t *testing.T) {
	s, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hourly": {"data": []}}`))
	})

	_, err := s.FetchHourly(context.Background(), "berlin")
	if forecast.KindOf(err) != forecast.KindMalformedPayload {
		t.Fatalf("empty series should be a malformed payload, got %v", err)
	}
}

func TestFetchHourlyRequiresAPIKey(t *testing.T) {
	s := NewMeteosourceSource(http.DefaultClient, "")
	if _, err := s.FetchHourly(context.Background(), "berlin"); err == nil {
		t.Fatalf("expected error without api key")
	}
}
