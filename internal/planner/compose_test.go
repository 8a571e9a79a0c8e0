package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"playcast/internal/engine"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func flatSamples(base time.Time, n int, temp float64) []engine.Sample {
	samples := make([]engine.Sample, n)
	for i := range samples {
		samples[i] = engine.Sample{
			Time:     base.Add(time.Duration(i) * time.Hour),
			TempC:    temp,
			Humidity: 60,
		}
	}
	return samples
}

func flatAir(base time.Time, n int, aqi float64) []engine.AirSample {
	air := make([]engine.AirSample, n)
	for i := range air {
		air[i] = engine.AirSample{Time: base.Add(time.Duration(i) * time.Hour), AQI: aqi}
	}
	return air
}

func TestCompose(t *testing.T) {
	base := time.Date(2026, 3, 18, 6, 0, 0, 0, ist)
	slots := []engine.Slot{
		{Start: base, End: base.Add(2 * time.Hour), Score: 10},
		{Start: base.Add(3 * time.Hour), End: base.Add(5 * time.Hour), Score: 10},
	}

	got := Compose("cricket", "Mumbai", slots, flatSamples(base, 8, 25), flatAir(base, 8, 90), "")

	want := "🏏 Best time for cricket today in Mumbai:\n" +
		"- 06:00-08:00 (score: 10)\n" +
		"- 09:00-11:00 (score: 10)\n" +
		"Conditions: 25.0°C, AQI 90"
	assert.Equal(t, want, got)
}

func TestComposeAppendsMotivation(t *testing.T) {
	base := time.Date(2026, 3, 21, 16, 0, 0, 0, ist)
	slots := []engine.Slot{{Start: base, End: base.Add(2 * time.Hour), Score: 8}}

	got := Compose("cricket", "Mumbai", slots, flatSamples(base, 4, 25), flatAir(base, 4, 90), "Get out there!")

	assert.Contains(t, got, "- 16:00-18:00 (score: 8)")
	assert.True(t, strings.HasSuffix(got, "\n\n🎉 Get out there!"), "motivation should close the message")
}

func TestComposeNoSuitableSlots(t *testing.T) {
	base := time.Date(2026, 3, 18, 6, 0, 0, 0, ist)

	got := Compose("cricket", "Mumbai", nil, flatSamples(base, 8, 25), flatAir(base, 8, 90), "Get out there!")

	// The warning replaces the whole message; no conditions, no motivation.
	assert.Equal(t, "⚠️ Weather/AQI not suitable for playing cricket today in Mumbai. Consider indoor alternatives.", got)
}

func TestComposeAveragesWholeDay(t *testing.T) {
	base := time.Date(2026, 3, 18, 6, 0, 0, 0, ist)

	// Temperatures 20..34 average 27.0 even though only one window is shown.
	samples := make([]engine.Sample, 8)
	for i := range samples {
		samples[i] = engine.Sample{Time: base.Add(time.Duration(i) * time.Hour), TempC: 20 + 2*float64(i), Humidity: 60}
	}
	slots := []engine.Slot{{Start: base, End: base.Add(2 * time.Hour), Score: 10}}

	got := Compose("cricket", "Mumbai", slots, samples, flatAir(base, 8, 90), "")

	assert.Contains(t, got, "Conditions: 27.0°C, AQI 90")
}
