package cron

import (
	"context"
	"time"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/punch"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
)

// PunchJobs contains punch-related cron jobs
type PunchJobs struct {
	punchService punch.PunchService
	clock        clock.Clock
}

func NewPunchJobs(punchService punch.PunchService, clk clock.Clock) *PunchJobs {
	return &PunchJobs{
		punchService: punchService,
		clock:        clk,
	}
}

// RegisterJobs registers all punch-related cron jobs
func (j *PunchJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_unclosed_shifts", 1*time.Hour, j.SweepUnclosedShifts)
}

// SweepUnclosedShifts notifies employees who forgot to check out the day
// before. It runs hourly but only acts during the 08:00 local hour so each
// employee gets at most one notice per day.
func (j *PunchJobs) SweepUnclosedShifts(ctx context.Context) error {
	snap := j.clock.Now()

	hour, err := parseHour(snap.TimeOfDay)
	if err != nil {
		return err
	}
	if hour != 8 {
		return nil
	}

	return j.punchService.SweepUnclosed(ctx)
}

func parseHour(timeOfDay string) (int, error) {
	t, err := time.Parse(clock.TimeOfDayLayout, timeOfDay)
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}
