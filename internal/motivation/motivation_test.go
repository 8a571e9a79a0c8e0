package motivation

import (
	"testing"

	"playcast/internal/daytype"
)

func TestGet(t *testing.T) {
	p := NewProvider()

	weekend := p.Get(daytype.Weekend)
	if weekend != "It's weekend! Perfect time to get active and play some sports! 🏃‍♂️" {
		t.Errorf("weekend note = %q", weekend)
	}

	weekday := p.Get(daytype.Weekday)
	if weekday != "Stay active and healthy! 💪" {
		t.Errorf("weekday note = %q", weekday)
	}
}
