package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/employee"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/shift"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/keylock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/sse"
)

const badgeIDAttempts = 20

type employeeService struct {
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
	hub          *sse.Hub

	// shared with the punch service; shift edits must not race punches
	// for the same employee
	locks *keylock.KeyLock
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	hub *sse.Hub,
	locks *keylock.KeyLock,
) employee.EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		clock:        clk,
		hub:          hub,
		locks:        locks,
	}
}

// generateBadgeID picks a random 6-digit badge number not already in use.
func (s *employeeService) generateBadgeID(ctx context.Context) (string, error) {
	for i := 0; i < badgeIDAttempts; i++ {
		id := fmt.Sprintf("%06d", rand.IntN(900000)+100000)
		_, err := s.employeeRepo.GetByID(ctx, id)
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("could not find a free badge ID after %d attempts", badgeIDAttempts)
}

func (s *employeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	id := req.ID
	if id == "" {
		var err error
		id, err = s.generateBadgeID(ctx)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	emp := employee.Employee{
		ID:        id,
		Name:      req.Name,
		Role:      req.Role,
		Details:   req.Details,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		PayType:   employee.PayType(req.PayType),
		Ledger:    shift.Ledger{},
	}
	if req.PayAmount != nil {
		amt, err := decimal.NewFromString(*req.PayAmount)
		if err != nil {
			return employee.EmployeeResponse{}, employee.ErrInvalidPayPolicy
		}
		emp.PayAmount = &amt
	}

	if err := s.employeeRepo.Create(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.hub.Publish(sse.TopicEmployees, map[string]interface{}{
		"employee_id": emp.ID,
		"action":      "created",
	})

	slog.Info("Employee created", "employee_id", emp.ID, "name", emp.Name)

	return toResponse(emp), nil
}

func (s *employeeService) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Role != nil {
		emp.Role = *req.Role
	}
	if req.Details != nil {
		emp.Details = *req.Details
	}
	if req.Email != nil {
		if *req.Email == "" {
			emp.Email = nil
		} else {
			emp.Email = req.Email
		}
	}
	if req.AvatarURL != nil {
		emp.AvatarURL = req.AvatarURL
	}
	if req.PayType != nil {
		emp.PayType = employee.PayType(*req.PayType)
		if emp.PayType == employee.PayTypeNone {
			emp.PayAmount = nil
		}
	}
	if req.PayAmount != nil {
		amt, err := decimal.NewFromString(*req.PayAmount)
		if err != nil {
			return employee.EmployeeResponse{}, employee.ErrInvalidPayPolicy
		}
		emp.PayAmount = &amt
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.hub.Publish(sse.TopicEmployees, map[string]interface{}{
		"employee_id": emp.ID,
		"action":      "updated",
	})

	return toResponse(emp), nil
}

func (s *employeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Publish(sse.TopicEmployees, map[string]interface{}{
		"employee_id": id,
		"action":      "deleted",
	})

	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

func (s *employeeService) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *employeeService) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].Name < responses[j].Name })
	return responses, nil
}

func (s *employeeService) History(ctx context.Context, id string) ([]employee.ShiftResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(emp.Ledger))
	for key := range emp.Ledger {
		keys = append(keys, key)
	}
	// newest date first; unparseable keys sink to the end
	sort.Slice(keys, func(i, j int) bool {
		ti, erri := clock.ParseDateKey(keys[i])
		tj, errj := clock.ParseDateKey(keys[j])
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return ti.After(tj)
	})

	var history []employee.ShiftResponse
	for _, key := range keys {
		entry, _ := emp.Ledger.Get(key)
		for i, rec := range entry.Records() {
			history = append(history, employee.ShiftResponse{
				DateKey:     key,
				Index:       i,
				CheckIn:     rec.CheckIn,
				CheckOut:    rec.CheckOut,
				WorkedHours: rec.WorkedHours,
				EditedAt:    rec.EditedAt,
			})
		}
	}
	return history, nil
}

func (s *employeeService) EditShift(ctx context.Context, req employee.EditShiftRequest) (employee.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ShiftResponse{}, err
	}

	unlock := s.locks.Acquire(req.EmployeeID)
	defer unlock()

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return employee.ShiftResponse{}, err
	}

	entry, ok := emp.Ledger.Get(req.DateKey)
	if !ok {
		return employee.ShiftResponse{}, employee.ErrNoSuchShift
	}
	recs := entry.Records()
	if req.Index >= len(recs) {
		return employee.ShiftResponse{}, employee.ErrNoSuchShift
	}
	rec := recs[req.Index]

	// Only blank halves of the punch pair may be filled; recorded punches
	// are immutable.
	if req.CheckIn != nil && rec.CheckIn != "" {
		return employee.ShiftResponse{}, employee.ErrSlotNotEditable
	}
	if req.CheckOut != nil && rec.CheckOut != "" {
		return employee.ShiftResponse{}, employee.ErrSlotNotEditable
	}

	if req.CheckIn != nil {
		rec.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		rec.CheckOut = *req.CheckOut
	}

	snap := s.clock.Now()
	stamp := fmt.Sprintf("%s, %s", snap.DateKey, snap.TimeOfDay)
	rec.EditedAt = &stamp

	if err := rec.Recompute(); err != nil {
		return employee.ShiftResponse{}, fmt.Errorf("failed to compute worked hours: %w", err)
	}

	if err := emp.Ledger.Update(req.DateKey, req.Index, rec); err != nil {
		return employee.ShiftResponse{}, employee.ErrNoSuchShift
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.ShiftResponse{}, err
	}

	s.hub.Publish(sse.TopicEmployees, map[string]interface{}{
		"employee_id": emp.ID,
		"action":      "shift_edited",
		"date_key":    req.DateKey,
	})

	slog.Info("Shift edited", "employee_id", emp.ID, "date_key", req.DateKey, "index", req.Index)

	return employee.ShiftResponse{
		DateKey:     req.DateKey,
		Index:       req.Index,
		CheckIn:     rec.CheckIn,
		CheckOut:    rec.CheckOut,
		WorkedHours: rec.WorkedHours,
		EditedAt:    rec.EditedAt,
	}, nil
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:        emp.ID,
		Name:      emp.Name,
		Role:      emp.Role,
		Details:   emp.Details,
		Email:     emp.Email,
		AvatarURL: emp.AvatarURL,
		PayType:   string(emp.PayType),
		OpenShift: len(emp.Ledger.ListUnclosed()) > 0,
	}
	if emp.PayAmount != nil {
		amt := emp.PayAmount.String()
		resp.PayAmount = &amt
	}
	return resp
}
