package airquality

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"playcast/internal/engine"
)

const (
	openMeteoAPIBase = "https://air-quality-api.open-meteo.com/v1/air-quality"

	// MaxSamples matches the weather forecast length so the two sequences
	// align by position
	MaxSamples = 8

	// sampleStep thins Open-Meteo's hourly series to the 3-hour forecast
	// cadence
	sampleStep = 3

	requestTimeout = 15 * time.Second
)

// Client fetches US AQI forecasts from the Open-Meteo air quality API.
// No credential is required.
type Client struct {
	httpClient *http.Client
	baseURL    string
	loc        *time.Location
}

// NewClient creates an Open-Meteo air quality client reporting times in loc
func NewClient(loc *time.Location) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    openMeteoAPIBase,
		loc:        loc,
	}
}

// openMeteoResponse represents the API response. AQI values can be null for
// hours the model has not produced yet.
type openMeteoResponse struct {
	Hourly struct {
		Time  []string   `json:"time"`
		USAQI []*float64 `json:"us_aqi"`
	} `json:"hourly"`
}

// FetchHourly fetches the AQI forecast for a coordinate and returns up to
// MaxSamples readings at the forecast cadence, starting at the current hour.
func (c *Client) FetchHourly(ctx context.Context, lat, lon float64) ([]engine.AirSample, error) {
	params := url.Values{}
	params.Add("latitude", fmt.Sprintf("%.4f", lat))
	params.Add("longitude", fmt.Sprintf("%.4f", lon))
	params.Add("hourly", "us_aqi")
	params.Add("forecast_days", "2")
	params.Add("timezone", c.loc.String())

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching air quality: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var meteoResp openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&meteoResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// Convert to AirSamples, skipping hours without a value
	readings := make([]engine.AirSample, 0, len(meteoResp.Hourly.Time))
	for i, raw := range meteoResp.Hourly.Time {
		if i >= len(meteoResp.Hourly.USAQI) || meteoResp.Hourly.USAQI[i] == nil {
			continue
		}
		ts, err := time.ParseInLocation("2006-01-02T15:04", raw, c.loc)
		if err != nil {
			continue
		}
		readings = append(readings, engine.AirSample{Time: ts, AQI: *meteoResp.Hourly.USAQI[i]})
	}

	return thin(readings, time.Now().In(c.loc), sampleStep, MaxSamples), nil
}

// thin keeps every step-th reading from the first one at or after from's
// hour, capped at max entries.
func thin(readings []engine.AirSample, from time.Time, step, max int) []engine.AirSample {
	base := time.Date(from.Year(), from.Month(), from.Day(), from.Hour(), 0, 0, 0, from.Location())

	start := -1
	for i, r := range readings {
		if !r.Time.Before(base) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	out := make([]engine.AirSample, 0, max)
	for i := start; i < len(readings) && len(out) < max; i += step {
		out = append(out, readings[i])
	}
	return out
}
