package airquality

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playcast/internal/engine"
)

func airQualityJSON(t *testing.T, start time.Time, hours int, nullAt map[int]bool) []byte {
	t.Helper()

	times := make([]string, 0, hours)
	values := make([]*float64, 0, hours)
	for i := 0; i < hours; i++ {
		times = append(times, start.Add(time.Duration(i)*time.Hour).Format("2006-01-02T15:04"))
		if nullAt[i] {
			values = append(values, nil)
		} else {
			v := 50.0 + float64(i)
			values = append(values, &v)
		}
	}

	body, err := json.Marshal(map[string]interface{}{
		"hourly": map[string]interface{}{
			"time":   times,
			"us_aqi": values,
		},
	})
	require.NoError(t, err)
	return body
}

func TestFetchHourly(t *testing.T) {
	// Far-future timestamps keep every reading ahead of the thinning cutoff
	start := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "19.0760", r.URL.Query().Get("latitude"))
		assert.Equal(t, "72.8777", r.URL.Query().Get("longitude"))
		assert.Equal(t, "us_aqi", r.URL.Query().Get("hourly"))
		w.Write(airQualityJSON(t, start, 48, nil))
	}))
	defer srv.Close()

	c := NewClient(time.UTC)
	c.baseURL = srv.URL

	readings, err := c.FetchHourly(context.Background(), 19.0760, 72.8777)
	require.NoError(t, err)

	require.Len(t, readings, MaxSamples)
	assert.True(t, readings[0].Time.Equal(start))
	assert.Equal(t, 50.0, readings[0].AQI)
	for i := 1; i < len(readings); i++ {
		assert.Equal(t, 3*time.Hour, readings[i].Time.Sub(readings[i-1].Time))
		assert.Equal(t, readings[i-1].AQI+3, readings[i].AQI)
	}
}

func TestFetchHourlyAllNull(t *testing.T) {
	start := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	nulls := map[int]bool{}
	for i := 0; i < 6; i++ {
		nulls[i] = true
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(airQualityJSON(t, start, 6, nulls))
	}))
	defer srv.Close()

	c := NewClient(time.UTC)
	c.baseURL = srv.URL

	readings, err := c.FetchHourly(context.Background(), 19.0760, 72.8777)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestFetchHourlyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(time.UTC)
	c.baseURL = srv.URL

	_, err := c.FetchHourly(context.Background(), 19.0760, 72.8777)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestThin(t *testing.T) {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	hourly := func(n int) []engine.AirSample {
		readings := make([]engine.AirSample, 0, n)
		for i := 0; i < n; i++ {
			readings = append(readings, engine.AirSample{
				Time: base.Add(time.Duration(i) * time.Hour),
				AQI:  float64(i),
			})
		}
		return readings
	}

	tests := []struct {
		name     string
		readings []engine.AirSample
		from     time.Time
		wantAQIs []float64
	}{
		{
			name:     "starts at the current hour",
			readings: hourly(24),
			from:     base.Add(5*time.Hour + 30*time.Minute),
			wantAQIs: []float64{5, 8, 11, 14, 17, 20, 23},
		},
		{
			name:     "caps at max entries",
			readings: hourly(48),
			from:     base,
			wantAQIs: []float64{0, 3, 6, 9, 12, 15, 18, 21},
		},
		{
			name:     "everything in the past",
			readings: hourly(4),
			from:     base.Add(10 * time.Hour),
			wantAQIs: nil,
		},
		{
			name:     "empty input",
			readings: nil,
			from:     base,
			wantAQIs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := thin(tt.readings, tt.from, sampleStep, MaxSamples)

			require.Len(t, got, len(tt.wantAQIs))
			for i, want := range tt.wantAQIs {
				assert.Equal(t, want, got[i].AQI)
			}
		})
	}
}

func TestFallback(t *testing.T) {
	now := time.Date(2025, 6, 2, 6, 45, 0, 0, time.UTC)

	readings := Fallback(now, 8)
	require.Len(t, readings, 8)

	assert.Equal(t, readings, Fallback(now, 8))
	assert.Equal(t, 80.0, readings[0].AQI)
	assert.Equal(t, 115.0, readings[7].AQI)
	assert.Equal(t, 6, readings[0].Time.Hour())
	assert.Equal(t, 0, readings[0].Time.Minute())
}
