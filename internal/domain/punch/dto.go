package punch

import (
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	Time       string `json:"time"` // 12-hour clock string from the kiosk
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string `json:"employee_id"`
	DateKey    string `json:"date_key"` // the shift's date, not necessarily today
	Time       string `json:"time"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidDateKey(r.DateKey) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_key",
			Message: "date_key must be DD-MM-YYYY",
		})
	}

	if validator.IsEmpty(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchResponse struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	DateKey      string   `json:"date_key"`
	Time         string   `json:"time"`
	Message      string   `json:"message"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
}

// UnclosedShift is an open record surfaced so a returning employee's next
// check-out can target the right day instead of assuming "today".
type UnclosedShift struct {
	DateKey      string  `json:"date_key"`
	CheckIn      string  `json:"check_in"`
	HoursElapsed float64 `json:"hours_elapsed"`
}
