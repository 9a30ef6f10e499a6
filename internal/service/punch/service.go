package punch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/employee"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/punch"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/shift"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/email"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/keylock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/sse"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/validator"
)

type punchService struct {
	employeeRepo     employee.EmployeeRepository
	clock            clock.Clock
	hub              *sse.Hub
	emailService     email.EmailService
	toleranceMinutes int

	// shared with the employee service so punches and admin shift edits
	// for the same person cannot lose each other's update
	locks *keylock.KeyLock
}

func NewPunchService(
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	hub *sse.Hub,
	emailService email.EmailService,
	toleranceMinutes int,
	locks *keylock.KeyLock,
) punch.PunchService {
	return &punchService{
		employeeRepo:     employeeRepo,
		clock:            clk,
		hub:              hub,
		emailService:     emailService,
		toleranceMinutes: toleranceMinutes,
		locks:            locks,
	}
}

// checkTolerance rejects a submitted punch time that drifts too far from the
// server clock. The comparison wraps at midnight so 11:59 PM against 12:01 AM
// counts as two minutes, not nearly a day.
func (s *punchService) checkTolerance(submitted string, snap clock.Snapshot) error {
	if !validator.IsValidClockTime(submitted) {
		return punch.ErrInvalidTimeFormat
	}
	sub, err := shift.ParseClockTime(submitted)
	if err != nil {
		return punch.ErrInvalidTimeFormat
	}
	now, err := shift.ParseClockTime(snap.TimeOfDay)
	if err != nil {
		return fmt.Errorf("server clock produced an unparseable time %q: %w", snap.TimeOfDay, err)
	}

	diff := sub - now
	if diff < 0 {
		diff = -diff
	}
	if wrapped := 24*60 - diff; wrapped < diff {
		diff = wrapped
	}

	if diff > s.toleranceMinutes {
		return &punch.ToleranceError{Submitted: submitted, RequiredTime: snap.TimeOfDay}
	}
	return nil
}

func (s *punchService) CheckIn(ctx context.Context, req punch.CheckInRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	snap := s.clock.Now()
	if err := s.checkTolerance(req.Time, snap); err != nil {
		return punch.PunchResponse{}, err
	}

	unlock := s.locks.Acquire(req.EmployeeID)
	defer unlock()

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	emp.EnsureLedger()

	rec := shift.Record{CheckIn: req.Time}

	switch emp.LedgerShape() {
	case shift.ShapeMulti:
		// Hourly employees may work several shifts a day, but only one at
		// a time.
		if entry, ok := emp.Ledger.Get(snap.DateKey); ok && entry.OpenIndex() >= 0 {
			return punch.PunchResponse{}, punch.ErrAlreadyCheckedIn
		}
		emp.Ledger.AppendOrCreate(snap.DateKey, rec)
	default:
		if len(emp.Ledger.ListUnclosed()) > 0 {
			return punch.PunchResponse{}, punch.ErrAlreadyCheckedIn
		}
		if _, ok := emp.Ledger.Get(snap.DateKey); ok {
			return punch.PunchResponse{}, punch.ErrAlreadyCheckedIn
		}
		emp.Ledger.Set(snap.DateKey, rec)
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return punch.PunchResponse{}, fmt.Errorf("%w: %s", employee.ErrPersistenceFailure, err)
	}

	s.hub.Publish(sse.TopicEmployees, map[string]interface{}{
		"employee_id": emp.ID,
		"action":      "check_in",
		"date_key":    snap.DateKey,
	})

	slog.Info("Employee checked in", "employee_id", emp.ID, "date_key", snap.DateKey, "time", req.Time)

	return punch.PunchResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		DateKey:      snap.DateKey,
		Time:         req.Time,
		Message:      fmt.Sprintf("Checked in at %s", req.Time),
	}, nil
}

func (s *punchService) CheckOut(ctx context.Context, req punch.CheckOutRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	snap := s.clock.Now()
	if err := s.checkTolerance(req.Time, snap); err != nil {
		return punch.PunchResponse{}, err
	}

	unlock := s.locks.Acquire(req.EmployeeID)
	defer unlock()

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return punch.PunchResponse{}, err
	}
	emp.EnsureLedger()

	entry, ok := emp.Ledger.Get(req.DateKey)
	if !ok {
		return punch.PunchResponse{}, punch.ErrNoOpenShiftForDate
	}

	idx := entry.OpenIndex()
	if idx < 0 {
		recs := entry.Records()
		if len(recs) == 0 {
			return punch.PunchResponse{}, punch.ErrNoOpenShiftForDate
		}
		last := recs[len(recs)-1]
		if last.Closed() && last.EditedAt != nil {
			// An administrator already completed this shift; the employee's
			// punch must not overwrite it.
			hours := last.Hours()
			return punch.PunchResponse{
				EmployeeID:   emp.ID,
				EmployeeName: emp.Name,
				DateKey:      req.DateKey,
				Time:         last.CheckOut,
				Message:      "This shift was already completed by an administrator",
				HoursWorked:  &hours,
			}, nil
		}
		return punch.PunchResponse{}, punch.ErrAlreadyCheckedOut
	}

	rec := entry.Records()[idx]
	rec.CheckOut = req.Time
	if req.DateKey != snap.DateKey {
		stamp := fmt.Sprintf("auto-completed on %s", snap.DateKey)
		rec.EditedAt = &stamp
	}
	if err := rec.Recompute(); err != nil {
		return punch.PunchResponse{}, punch.ErrInvalidTimeFormat
	}

	if err := emp.Ledger.Update(req.DateKey, idx, rec); err != nil {
		return punch.PunchResponse{}, punch.ErrNoOpenShiftForDate
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return punch.PunchResponse{}, fmt.Errorf("%w: %s", employee.ErrPersistenceFailure, err)
	}

	s.hub.Publish(sse.TopicEmployees, map[string]interface{}{
		"employee_id": emp.ID,
		"action":      "check_out",
		"date_key":    req.DateKey,
	})

	slog.Info("Employee checked out",
		"employee_id", emp.ID,
		"date_key", req.DateKey,
		"time", req.Time,
		"hours", rec.Hours(),
	)

	hours := rec.Hours()
	return punch.PunchResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		DateKey:      req.DateKey,
		Time:         req.Time,
		Message:      fmt.Sprintf("Checked out at %s", req.Time),
		HoursWorked:  &hours,
	}, nil
}

func (s *punchService) ListUnclosedShifts(ctx context.Context, employeeID string) ([]punch.UnclosedShift, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	snap := s.clock.Now()

	open := emp.Ledger.ListUnclosed()
	shifts := make([]punch.UnclosedShift, 0, len(open))
	for _, u := range open {
		elapsed, err := shift.HoursBetween(u.Record.CheckIn, snap.TimeOfDay)
		if err != nil {
			elapsed = 0
		}
		shifts = append(shifts, punch.UnclosedShift{
			DateKey:      u.DateKey,
			CheckIn:      u.Record.CheckIn,
			HoursElapsed: elapsed,
		})
	}
	return shifts, nil
}

func (s *punchService) SweepUnclosed(ctx context.Context) error {
	snap := s.clock.Now()

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	notified := 0
	for _, emp := range employees {
		for _, u := range emp.Ledger.ListUnclosed() {
			if u.DateKey == snap.DateKey {
				continue // still today's shift, nothing stale yet
			}
			if emp.Email == nil {
				slog.Warn("Unclosed shift but no email on file",
					"employee_id", emp.ID, "date_key", u.DateKey)
				continue
			}
			if err := s.emailService.SendUnclosedShiftNotice(*emp.Email, emp.Name, u.DateKey, u.Record.CheckIn); err != nil {
				slog.Error("Failed to send unclosed shift notice",
					"employee_id", emp.ID, "date_key", u.DateKey, "error", err)
				continue
			}
			notified++
		}
	}

	slog.Info("Unclosed shift sweep completed", "notified", notified)
	return nil
}
