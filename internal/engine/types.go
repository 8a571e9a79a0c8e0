package engine

import "time"

// Sample represents weather conditions for one forecast interval
type Sample struct {
	Time      time.Time
	TempC     float64
	Humidity  float64 // percentage 0-100
	Raining   bool
	WindSpeed float64 // meters per second
}

// AirSample represents an air quality reading at a point in time.
// Air samples align with weather samples by position: index i of an AQI
// sequence describes the same interval as index i of the weather sequence.
type AirSample struct {
	Time time.Time
	AQI  float64
}

// Slot represents a scored candidate play window
type Slot struct {
	Start    time.Time
	End      time.Time
	Score    int
	TempC    float64
	Humidity float64
	AQI      *float64 // nil when no air sample aligned with the window
}
