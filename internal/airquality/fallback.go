package airquality

import (
	"time"

	"playcast/internal/engine"
)

// Fallback builds the deterministic synthetic AQI series used when the live
// source is unavailable: n hourly readings climbing from a moderate 80.
func Fallback(now time.Time, n int) []engine.AirSample {
	base := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())

	readings := make([]engine.AirSample, 0, n)
	for i := 0; i < n; i++ {
		readings = append(readings, engine.AirSample{
			Time: base.Add(time.Duration(i) * time.Hour),
			AQI:  80 + float64(i*5),
		})
	}

	return readings
}
