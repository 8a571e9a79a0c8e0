package location

import (
	"errors"
	"time"
)

// City is a resolved location with the coordinates and timezone the forecast
// sources need.
type City struct {
	Name     string
	Lat      float64
	Lon      float64
	Timezone *time.Location
}

// Default returns the built-in city used when nothing is configured
func Default() City {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	return City{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777, Timezone: loc}
}

// Resolver maps a user to their city. A single configured city serves every
// user.
type Resolver struct {
	city City
}

// NewResolver creates a resolver for the configured city
func NewResolver(city City) *Resolver {
	return &Resolver{city: city}
}

// Resolve returns the city for a user. It never fails hard: a misconfigured
// resolver still returns the built-in default, with a non-nil error the
// caller may log.
func (r *Resolver) Resolve(userID string) (City, error) {
	if r.city.Name == "" || r.city.Timezone == nil {
		return Default(), errors.New("no city configured, using built-in default")
	}
	return r.city, nil
}
