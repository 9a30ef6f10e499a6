package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsJobImmediately(t *testing.T) {
	var runs atomic.Int32

	s := NewScheduler()
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, 10*time.Millisecond, "job should fire once on start")
}

func TestSchedulerStopWaitsForJobs(t *testing.T) {
	var runs atomic.Int32

	s := NewScheduler()
	s.AddJob("ticker", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	s.AddJob("failing", 10*time.Millisecond, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.Start()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop returns")
}
