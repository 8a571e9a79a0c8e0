package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"playcast/internal/engine"
)

const (
	openWeatherAPIBase = "https://api.openweathermap.org/data/2.5/forecast"

	// MaxSamples is how many forecast intervals one recommendation consumes
	MaxSamples = 8

	requestTimeout = 15 * time.Second
)

// ErrMissingAPIKey means the client was built without a credential; callers
// are expected to fall back to synthetic data.
var ErrMissingAPIKey = errors.New("openweather API key not configured")

// Client fetches forecasts from the OpenWeather 5-day/3-hour API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	loc        *time.Location
}

// NewClient creates an OpenWeather client reporting times in loc
func NewClient(apiKey string, loc *time.Location) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    openWeatherAPIBase,
		apiKey:     apiKey,
		loc:        loc,
	}
}

// openWeatherResponse represents the API response
type openWeatherResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain map[string]float64 `json:"rain"`
	} `json:"list"`
}

// FetchHourly fetches the forecast for a city and returns up to MaxSamples
// samples in chronological order, timestamps converted to the client's
// timezone. Entries without a timestamp are skipped.
func (c *Client) FetchHourly(ctx context.Context, city string) ([]engine.Sample, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Add("q", city)
	params.Add("appid", c.apiKey)
	params.Add("units", "metric")

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "playcast/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var owResp openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// Convert to Samples
	samples := make([]engine.Sample, 0, MaxSamples)
	for _, item := range owResp.List {
		if len(samples) == MaxSamples {
			break
		}
		if item.Dt == 0 {
			continue
		}

		samples = append(samples, engine.Sample{
			Time:      time.Unix(item.Dt, 0).In(c.loc),
			TempC:     item.Main.Temp,
			Humidity:  item.Main.Humidity,
			Raining:   len(item.Rain) > 0,
			WindSpeed: item.Wind.Speed,
		})
	}

	return samples, nil
}
