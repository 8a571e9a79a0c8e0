package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrInvalidSample = errors.New("invalid sample")

const (
	// DefaultMinScore is the lowest score a window may have and still be
	// recommended; the boundary itself passes.
	DefaultMinScore = 4

	// DefaultTopK caps how many windows a recommendation carries.
	DefaultTopK = 2
)

// ScoreSamples scores every valid sample against the ruleset and returns one
// candidate window per sample, in input order, neither filtered nor sorted.
// Samples that fail validation are skipped; each skip is described in the
// returned error slice and never aborts the rest of the sequence.
func ScoreSamples(rs Ruleset, samples []Sample, air []AirSample) ([]Slot, []error) {
	slots := make([]Slot, 0, len(samples))
	var skipped []error

	for i, s := range samples {
		if err := validateSample(s); err != nil {
			skipped = append(skipped, fmt.Errorf("sample %d: %w", i, err))
			continue
		}

		slot := Slot{
			Start:    s.Time,
			End:      s.Time.Add(rs.SlotDuration),
			TempC:    s.TempC,
			Humidity: s.Humidity,
		}

		// Align air quality by position; a shorter AQI sequence means the
		// reading is unknown for this window
		if i < len(air) {
			aqi := air[i].AQI
			slot.AQI = &aqi
		}

		slot.Score = scoreSample(rs, s, slot.AQI)
		slots = append(slots, slot)
	}

	return slots, skipped
}

// scoreSample applies each rule independently and sums the earned bonuses
func scoreSample(rs Ruleset, s Sample, aqi *float64) int {
	score := 0

	hour := s.Time.Hour()
	if (hour >= rs.MorningStart && hour <= rs.MorningEnd) ||
		(hour >= rs.EveningStart && hour <= rs.EveningEnd) {
		score += rs.TimeBonus
	}

	if s.TempC >= rs.TempMinC && s.TempC <= rs.TempMaxC {
		score += rs.TempBonus
	}

	if !s.Raining {
		score += rs.DryBonus
	}

	if aqi != nil && *aqi < rs.AQILimit {
		score += rs.AQIBonus
	}

	if s.Humidity < rs.HumidityLimit {
		score += rs.HumidityBonus
	}

	return score
}

// SelectBest keeps candidates scoring at least minScore, orders them by score
// descending, and truncates to topK. The sort is stable, so windows with
// equal scores keep their chronological order. An empty result is a normal
// outcome, not an error.
func SelectBest(slots []Slot, minScore, topK int) []Slot {
	if topK <= 0 {
		topK = DefaultTopK
	}

	selected := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Score >= minScore {
			selected = append(selected, s)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Score > selected[j].Score
	})

	if len(selected) > topK {
		selected = selected[:topK]
	}

	return selected
}

func validateSample(s Sample) error {
	if s.Time.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidSample)
	}
	if math.IsNaN(s.TempC) {
		return fmt.Errorf("%w: temperature is not a number", ErrInvalidSample)
	}
	if math.IsNaN(s.Humidity) || s.Humidity < 0 || s.Humidity > 100 {
		return fmt.Errorf("%w: humidity %.1f out of range", ErrInvalidSample, s.Humidity)
	}
	return nil
}
