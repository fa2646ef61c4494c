package forecast

// SlotData is one hourly entry of the provider's series, decoded with
// explicit field structure rather than dynamic lookups.
type SlotData struct {
	Weather     string  `json:"weather"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	WindChill   float64 `json:"wind_chill"`
	DewPoint    float64 `json:"dew_point"`
	Pressure    float64 `json:"pressure"`
	Ozone       float64 `json:"ozone"`
	UVIndex     float64 `json:"uv_index"`
	Humidity    float64 `json:"humidity"`
	Visibility  float64 `json:"visibility"`
	Probability struct {
		Precipitation float64 `json:"precipitation"`
	} `json:"probability"`
	Precipitation struct {
		Type string `json:"type"`
	} `json:"precipitation"`
	Wind struct {
		Speed float64 `json:"speed"`
		Gusts float64 `json:"gusts"`
		Dir   string  `json:"dir"`
		Angle float64 `json:"angle"`
	} `json:"wind"`
}

// HourlySeries is the provider's hourly forecast series, index 0 being
// the current hour.
type HourlySeries []SlotData

// At extracts the slot at index as a normalized HourForecast. A series
// shorter than index+1 is surfaced, never silently truncated.
func (s HourlySeries) At(index int) (HourForecast, error) {
	if index < 0 || index >= len(s) {
		return HourForecast{}, Errf(KindIndexOutOfRange,
			"series has %d entries, slot %d requested", len(s), index)
	}
	d := s[index]
	return HourForecast{
		Weather:           d.Weather,
		Temperature:       d.Temperature,
		FeelsLike:         d.FeelsLike,
		WindChill:         d.WindChill,
		DewPoint:          d.DewPoint,
		Pressure:          d.Pressure,
		Ozone:             d.Ozone,
		UVIndex:           d.UVIndex,
		Humidity:          d.Humidity,
		Visibility:        d.Visibility,
		PrecipProbability: d.Probability.Precipitation,
		PrecipType:        d.Precipitation.Type,
		WindSpeed:         d.Wind.Speed,
		WindGusts:         d.Wind.Gusts,
		WindDir:           d.Wind.Dir,
		WindAngle:         d.Wind.Angle,
	}, nil
}

// HourForecast is the immutable snapshot persisted per cache key. It is
// created on a successful fetch and never mutated afterwards.
type HourForecast struct {
	Weather           string  `json:"weather"`
	Temperature       float64 `json:"temperature"`
	FeelsLike         float64 `json:"feels_like"`
	WindChill         float64 `json:"wind_chill"`
	DewPoint          float64 `json:"dew_point"`
	Pressure          float64 `json:"pressure"`
	Ozone             float64 `json:"ozone"`
	UVIndex           float64 `json:"uv_index"`
	Humidity          float64 `json:"humidity"`
	Visibility        float64 `json:"visibility"`
	PrecipProbability float64 `json:"probability_precipitation"`
	PrecipType        string  `json:"precipitation_type"`
	WindSpeed         float64 `json:"wind_speed"`
	WindGusts         float64 `json:"wind_gusts"`
	WindDir           string  `json:"wind_dir"`
	WindAngle         float64 `json:"wind_angle"`

	// FromCache marks a value answered from the local cache. It is set
	// on the returned copy only, never persisted.
	FromCache bool `json:"from_cache,omitempty"`
}
