package planner

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"playcast/internal/engine"
)

// Compose renders the chat message for a day's recommendation. With no
// selected windows it produces the indoor-alternatives notice instead. The
// conditions line averages over the whole sampled day, not just the selected
// windows. A non-empty motivation is appended as a trailing note.
func Compose(sport, city string, slots []engine.Slot, samples []engine.Sample, air []engine.AirSample, motivation string) string {
	if len(slots) == 0 {
		return fmt.Sprintf("⚠️ Weather/AQI not suitable for playing %s today in %s. Consider indoor alternatives.", sport, city)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏏 Best time for %s today in %s:\n", sport, city)
	for _, slot := range slots {
		fmt.Fprintf(&b, "- %s-%s (score: %d)\n", slot.Start.Format("15:04"), slot.End.Format("15:04"), slot.Score)
	}

	fmt.Fprintf(&b, "Conditions: %.1f°C, AQI %.0f", meanTemp(samples), meanAQI(air))

	if motivation != "" {
		fmt.Fprintf(&b, "\n\n🎉 %s", motivation)
	}

	return b.String()
}

func meanTemp(samples []engine.Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.TempC
	}
	return stat.Mean(values, nil)
}

func meanAQI(air []engine.AirSample) float64 {
	if len(air) == 0 {
		return 0
	}
	values := make([]float64, len(air))
	for i, a := range air {
		values[i] = a.AQI
	}
	return stat.Mean(values, nil)
}
