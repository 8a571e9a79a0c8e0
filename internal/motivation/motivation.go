package motivation

import "playcast/internal/daytype"

const (
	weekendNote = "It's weekend! Perfect time to get active and play some sports! 🏃‍♂️"
	weekdayNote = "Stay active and healthy! 💪"
)

// Provider returns a short motivational note for a day kind
type Provider struct{}

// NewProvider creates a motivation provider
func NewProvider() Provider {
	return Provider{}
}

// Get returns the note matching the day kind
func (Provider) Get(kind daytype.Kind) string {
	if kind == daytype.Weekend {
		return weekendNote
	}
	return weekdayNote
}
