package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"playcast/internal/planner"
)

const (
	// runTimeout bounds a scheduled recommendation run end to end.
	runTimeout = 2 * time.Minute

	// HeartbeatSchedule is how often the liveness line is logged.
	HeartbeatSchedule = "@every 1h"
)

// RecommendationJob computes and delivers the daily recommendation
type RecommendationJob struct {
	planner *planner.Planner
	sport   string
}

// NewRecommendationJob creates the daily job for the default sport
func NewRecommendationJob(p *planner.Planner, sport string) *RecommendationJob {
	return &RecommendationJob{planner: p, sport: sport}
}

// Name implements Job
func (j *RecommendationJob) Name() string { return "daily-recommendation" }

// Run implements Job
func (j *RecommendationJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	_, err := j.planner.Run(ctx, j.sport, planner.TriggerScheduled)
	return err
}

// HeartbeatJob logs a periodic liveness line with uptime and a summary of the
// most recent run
type HeartbeatJob struct {
	planner *planner.Planner
	started time.Time
	log     zerolog.Logger
}

// NewHeartbeatJob creates the hourly health check
func NewHeartbeatJob(p *planner.Planner, log zerolog.Logger) *HeartbeatJob {
	return &HeartbeatJob{
		planner: p,
		started: time.Now(),
		log:     log.With().Str("component", "heartbeat").Logger(),
	}
}

// Name implements Job
func (j *HeartbeatJob) Name() string { return "heartbeat" }

// Run implements Job
func (j *HeartbeatJob) Run() error {
	ev := j.log.Info().Dur("uptime", time.Since(j.started))

	if last := j.planner.LastResult(); last != nil {
		ev = ev.
			Time("last_run", last.StartedAt).
			Int("last_slots", len(last.Slots)).
			Bool("last_delivered", last.Delivered)
	}

	ev.Msg("Service healthy")
	return nil
}
