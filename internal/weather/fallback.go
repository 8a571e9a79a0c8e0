package weather

import (
	"time"

	"playcast/internal/engine"
)

// Fallback builds the deterministic synthetic forecast used when the live
// source is unavailable: n hourly samples starting at now's local hour, warm
// and dry, with temperature and humidity creeping up through the day.
func Fallback(now time.Time, n int) []engine.Sample {
	base := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())

	samples := make([]engine.Sample, 0, n)
	for i := 0; i < n; i++ {
		samples = append(samples, engine.Sample{
			Time:      base.Add(time.Duration(i) * time.Hour),
			TempC:     25 + float64(i*2),
			Humidity:  60 + float64(i*2),
			Raining:   false,
			WindSpeed: 5 + float64(i),
		})
	}

	return samples
}
