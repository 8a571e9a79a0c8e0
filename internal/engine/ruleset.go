package engine

import (
	"strings"
	"time"
)

// SportCricket is the built-in sport every unknown sport falls back to.
const SportCricket = "cricket"

// Ruleset holds the scoring constants for one sport. Each rule is an
// independent bonus; a sample's score is the sum of the bonuses it earns.
type Ruleset struct {
	Sport string

	// Preferred hours of day, both ranges inclusive
	MorningStart int
	MorningEnd   int
	EveningStart int
	EveningEnd   int
	TimeBonus    int

	// Comfortable temperature band, inclusive
	TempMinC  float64
	TempMaxC  float64
	TempBonus int

	// Awarded when the sample reports no rain
	DryBonus int

	// Awarded when an aligned AQI reading exists and is below the limit
	AQILimit float64
	AQIBonus int

	// Awarded when humidity is strictly below the limit
	HumidityLimit float64
	HumidityBonus int

	// Length of the play window anchored at the sample time
	SlotDuration time.Duration
}

// MaxScore returns the highest score a sample can earn under this ruleset
func (r Ruleset) MaxScore() int {
	return r.TimeBonus + r.TempBonus + r.DryBonus + r.AQIBonus + r.HumidityBonus
}

var rulesets = map[string]Ruleset{
	SportCricket: {
		Sport:         SportCricket,
		MorningStart:  6,
		MorningEnd:    10,
		EveningStart:  16,
		EveningEnd:    19,
		TimeBonus:     3,
		TempMinC:      15,
		TempMaxC:      30,
		TempBonus:     2,
		DryBonus:      2,
		AQILimit:      100,
		AQIBonus:      2,
		HumidityLimit: 70,
		HumidityBonus: 1,
		SlotDuration:  2 * time.Hour,
	},
}

// RulesetFor returns the scoring ruleset for a sport. The second return
// value reports whether the sport was known; unknown sports receive the
// cricket ruleset so a recommendation is always possible. The returned
// ruleset keeps its own Sport name, so callers can see which rules applied.
func RulesetFor(sport string) (Ruleset, bool) {
	rs, ok := rulesets[strings.ToLower(strings.TrimSpace(sport))]
	if !ok {
		return rulesets[SportCricket], false
	}
	return rs, true
}

// Sports lists the sports with a registered ruleset
func Sports() []string {
	names := make([]string, 0, len(rulesets))
	for name := range rulesets {
		names = append(names, name)
	}
	return names
}
