package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	j.runs++
	return j.err
}

func TestAddJobValidatesSchedule(t *testing.T) {
	s := New(zerolog.Nop(), time.UTC)

	require.NoError(t, s.AddJob("0 6 * * *", &countingJob{}))
	require.NoError(t, s.AddJob("@every 1h", &countingJob{}))

	err := s.AddJob("not a schedule", &countingJob{})
	require.Error(t, err)
}

func TestRunNow(t *testing.T) {
	s := New(zerolog.Nop(), time.UTC)
	job := &countingJob{}

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, job.runs)

	job.err = errors.New("boom")
	err := s.RunNow(job)
	assert.Error(t, err)
	assert.Equal(t, 2, job.runs)
}
