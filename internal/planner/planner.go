package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"playcast/internal/airquality"
	"playcast/internal/daytype"
	"playcast/internal/engine"
	"playcast/internal/location"
	"playcast/internal/metrics"
	"playcast/internal/notify"
	"playcast/internal/store"
	"playcast/internal/weather"
)

// Triggers recorded on runs
const (
	TriggerStartup   = "startup"
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

const (
	// cacheTTL is how long a cached forecast counts as fresh enough to skip
	// the live fetch entirely.
	cacheTTL = 30 * time.Minute

	// staleMax is how old a cached forecast may be and still beat synthetic
	// data when the live fetch fails.
	staleMax = 6 * time.Hour
)

// WeatherSource fetches hourly weather samples for a city
type WeatherSource interface {
	FetchHourly(ctx context.Context, city string) ([]engine.Sample, error)
}

// AQISource fetches hourly air quality samples for a position
type AQISource interface {
	FetchHourly(ctx context.Context, lat, lon float64) ([]engine.AirSample, error)
}

// CityResolver maps a user to the city their recommendation is computed for
type CityResolver interface {
	Resolve(userID string) (location.City, error)
}

// DayClassifier decides whether a day is a weekday or weekend
type DayClassifier interface {
	Classify(t time.Time) daytype.Kind
}

// MotivationProvider picks the note appended on non-weekdays
type MotivationProvider interface {
	Get(kind daytype.Kind) string
}

// Messenger delivers the composed recommendation text
type Messenger interface {
	Send(ctx context.Context, text string) error
}

// Config wires the planner's collaborators. Store may be nil to disable the
// forecast cache; everything else is required.
type Config struct {
	Weather    WeatherSource
	Air        AQISource
	Resolver   CityResolver
	Classifier DayClassifier
	Motivator  MotivationProvider
	Messenger  Messenger
	Store      *store.Store
	UserID     string
	Logger     zerolog.Logger
}

// Result is the outcome of one recommendation run
type Result struct {
	RunID         string
	Trigger       string
	Sport         string
	City          string
	DayKind       daytype.Kind
	Slots         []engine.Slot
	Message       string
	SampleCount   int
	WeatherSource string
	AQISource     string
	Delivered     bool
	StartedAt     time.Time
	Duration      time.Duration
}

// Planner runs the daily recommendation pipeline: resolve the city, gather
// forecasts, score and select windows, compose the message, deliver it.
type Planner struct {
	weather    WeatherSource
	air        AQISource
	resolver   CityResolver
	classifier DayClassifier
	motivator  MotivationProvider
	messenger  Messenger
	store      *store.Store
	userID     string
	log        zerolog.Logger

	cacheTTL time.Duration
	staleMax time.Duration

	now func() time.Time

	mu   sync.Mutex
	last *Result
}

// New validates the wiring and creates a Planner
func New(cfg Config) (*Planner, error) {
	if cfg.Weather == nil {
		return nil, errors.New("planner: weather source is required")
	}
	if cfg.Air == nil {
		return nil, errors.New("planner: air quality source is required")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("planner: city resolver is required")
	}
	if cfg.Classifier == nil {
		return nil, errors.New("planner: day classifier is required")
	}
	if cfg.Motivator == nil {
		return nil, errors.New("planner: motivation provider is required")
	}
	if cfg.Messenger == nil {
		return nil, errors.New("planner: messenger is required")
	}

	return &Planner{
		weather:    cfg.Weather,
		air:        cfg.Air,
		resolver:   cfg.Resolver,
		classifier: cfg.Classifier,
		motivator:  cfg.Motivator,
		messenger:  cfg.Messenger,
		store:      cfg.Store,
		userID:     cfg.UserID,
		log:        cfg.Logger,
		cacheTTL:   cacheTTL,
		staleMax:   staleMax,
		now:        time.Now,
	}, nil
}

// Run executes the full pipeline once, including delivery, and records the
// result as the latest run.
func (p *Planner) Run(ctx context.Context, sport, trigger string) (*Result, error) {
	result, err := p.compute(ctx, sport, trigger)
	if err != nil {
		metrics.RunsTotal.WithLabelValues(trigger, "error").Inc()
		return nil, err
	}

	log := p.log.With().Str("run_id", result.RunID).Str("trigger", trigger).Logger()
	p.deliver(ctx, log, result)

	result.Duration = p.now().Sub(result.StartedAt)
	metrics.RunDuration.Observe(result.Duration.Seconds())

	outcome := "ok"
	if len(result.Slots) == 0 {
		outcome = "empty"
	}
	metrics.RunsTotal.WithLabelValues(trigger, outcome).Inc()

	p.mu.Lock()
	p.last = result
	p.mu.Unlock()

	log.Info().
		Str("sport", result.Sport).
		Str("city", result.City).
		Int("slots", len(result.Slots)).
		Bool("delivered", result.Delivered).
		Str("weather_source", result.WeatherSource).
		Str("aqi_source", result.AQISource).
		Dur("duration", result.Duration).
		Msg("run complete")

	return result, nil
}

// Preview computes a recommendation without delivering it and without
// recording it as the latest run.
func (p *Planner) Preview(ctx context.Context, sport string) (*Result, error) {
	return p.compute(ctx, sport, "preview")
}

// LastResult returns the most recent completed run, or nil before the first
func (p *Planner) LastResult() *Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Planner) compute(ctx context.Context, sport, trigger string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	started := p.now()
	runID := uuid.New().String()

	rs, known := engine.RulesetFor(sport)
	log := p.log.With().Str("run_id", runID).Str("trigger", trigger).Str("sport", rs.Sport).Logger()
	if !known && sport != "" {
		log.Debug().Str("requested", sport).Msg("unknown sport, using cricket rules")
	}

	city, err := p.resolver.Resolve(p.userID)
	if err != nil {
		log.Warn().Err(err).Msg("city resolution degraded")
	}
	if city.Timezone == nil {
		city = location.Default()
	}
	now := started.In(city.Timezone)

	samples, weatherSrc := p.fetchWeather(ctx, log, city, now)
	air, aqiSrc := p.fetchAir(ctx, log, city, now)

	slots, skipped := engine.ScoreSamples(rs, samples, air)
	for _, serr := range skipped {
		log.Warn().Err(serr).Msg("skipping sample")
	}
	best := engine.SelectBest(slots, engine.DefaultMinScore, engine.DefaultTopK)

	kind := p.classifier.Classify(now)
	motivation := ""
	if kind != daytype.Weekday {
		motivation = p.motivator.Get(kind)
	}

	return &Result{
		RunID:         runID,
		Trigger:       trigger,
		Sport:         rs.Sport,
		City:          city.Name,
		DayKind:       kind,
		Slots:         best,
		Message:       Compose(rs.Sport, city.Name, best, samples, air, motivation),
		SampleCount:   len(samples),
		WeatherSource: weatherSrc,
		AQISource:     aqiSrc,
		StartedAt:     started,
	}, nil
}

// deliver sends the message and records the attempt. Delivery failures never
// fail the run; the recommendation is still computed and kept.
func (p *Planner) deliver(ctx context.Context, log zerolog.Logger, result *Result) {
	err := p.messenger.Send(ctx, result.Message)
	if err == nil {
		result.Delivered = true
		metrics.DeliveriesTotal.WithLabelValues("ok").Inc()
		return
	}

	if errors.Is(err, notify.ErrNotConfigured) {
		log.Warn().Msg("messenger not configured, logging recommendation instead")
		log.Info().Str("message", result.Message).Msg("recommendation")
		metrics.DeliveriesTotal.WithLabelValues("skipped").Inc()
		return
	}

	log.Error().Err(err).Msg("delivery failed")
	metrics.DeliveriesTotal.WithLabelValues("error").Inc()
}

// fetchWeather returns the day's weather samples and where they came from:
// a fresh cache entry, the live API, a stale cache entry, or the synthetic
// fallback. It always returns a usable sequence.
func (p *Planner) fetchWeather(ctx context.Context, log zerolog.Logger, city location.City, now time.Time) ([]engine.Sample, string) {
	if p.store != nil {
		if samples, err := p.store.LoadWeather(city.Name, p.cacheTTL); err == nil {
			log.Debug().Int("samples", len(samples)).Msg("weather served from cache")
			metrics.SourceResultsTotal.WithLabelValues("weather", "cache").Inc()
			return samples, "cache"
		}
	}

	samples, err := p.weather.FetchHourly(ctx, city.Name)
	if err == nil && len(samples) > 0 {
		if p.store != nil {
			if serr := p.store.SaveWeather(city.Name, samples); serr != nil {
				log.Warn().Err(serr).Msg("caching weather failed")
			}
		}
		metrics.SourceResultsTotal.WithLabelValues("weather", "live").Inc()
		return samples, "live"
	}
	if err != nil {
		log.Warn().Err(err).Msg("weather fetch failed")
	}

	if p.store != nil {
		if samples, serr := p.store.LoadWeather(city.Name, p.staleMax); serr == nil {
			log.Info().Int("samples", len(samples)).Msg("serving stale cached weather")
			metrics.SourceResultsTotal.WithLabelValues("weather", "stale").Inc()
			return samples, "stale"
		}
	}

	log.Info().Msg("using synthetic weather forecast")
	metrics.SourceResultsTotal.WithLabelValues("weather", "fallback").Inc()
	return weather.Fallback(now, weather.MaxSamples), "fallback"
}

// fetchAir mirrors fetchWeather for the air quality sequence
func (p *Planner) fetchAir(ctx context.Context, log zerolog.Logger, city location.City, now time.Time) ([]engine.AirSample, string) {
	if p.store != nil {
		if samples, err := p.store.LoadAir(city.Name, p.cacheTTL); err == nil {
			log.Debug().Int("samples", len(samples)).Msg("air quality served from cache")
			metrics.SourceResultsTotal.WithLabelValues("aqi", "cache").Inc()
			return samples, "cache"
		}
	}

	samples, err := p.air.FetchHourly(ctx, city.Lat, city.Lon)
	if err == nil && len(samples) > 0 {
		if p.store != nil {
			if serr := p.store.SaveAir(city.Name, samples); serr != nil {
				log.Warn().Err(serr).Msg("caching air quality failed")
			}
		}
		metrics.SourceResultsTotal.WithLabelValues("aqi", "live").Inc()
		return samples, "live"
	}
	if err != nil {
		log.Warn().Err(err).Msg("air quality fetch failed")
	}

	if p.store != nil {
		if samples, serr := p.store.LoadAir(city.Name, p.staleMax); serr == nil {
			log.Info().Int("samples", len(samples)).Msg("serving stale cached air quality")
			metrics.SourceResultsTotal.WithLabelValues("aqi", "stale").Inc()
			return samples, "stale"
		}
	}

	log.Info().Msg("using synthetic air quality forecast")
	metrics.SourceResultsTotal.WithLabelValues("aqi", "fallback").Inc()
	return airquality.Fallback(now, airquality.MaxSamples), "fallback"
}
