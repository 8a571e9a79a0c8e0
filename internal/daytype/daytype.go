package daytype

import "time"

// Kind classifies a calendar day for recommendation purposes
type Kind string

const (
	Weekday Kind = "weekday"
	Weekend Kind = "weekend"
)

// WeekendClassifier marks Saturday and Sunday as weekends and everything else
// as a weekday. Holiday calendars can be layered on by wrapping Classify.
type WeekendClassifier struct{}

// NewWeekendClassifier creates the default day classifier
func NewWeekendClassifier() WeekendClassifier {
	return WeekendClassifier{}
}

// Classify returns the kind of day the given time falls on
func (WeekendClassifier) Classify(t time.Time) Kind {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return Weekend
	default:
		return Weekday
	}
}
