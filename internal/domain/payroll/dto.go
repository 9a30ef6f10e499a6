package payroll

import (
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/validator"
)

// Period filters ledger entries for a report. Year is required; Month and
// Week narrow further. Week numbers use the simple (non ISO-8601) formula the
// historical reports were built on.
type Period struct {
	Year  int
	Month *int
	Week  *int
}

func (p Period) Validate() error {
	var errs validator.ValidationErrors

	if p.Year < 2000 || p.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required",
		})
	}

	if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be 1-12",
		})
	}

	if p.Week != nil && (*p.Week < 1 || *p.Week > 54) {
		errs = append(errs, validator.ValidationError{
			Field:   "week",
			Message: "week must be 1-54",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DayEntry is one closed shift in the per-date breakdown.
type DayEntry struct {
	Date     string `json:"date"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Hours    string `json:"hours"`
	DailyPay string `json:"daily_pay"`
}

// EmployeePay is one employee's row in a payroll report.
type EmployeePay struct {
	EmployeeID string     `json:"employee_id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	PayType    string     `json:"pay_type"`
	PayAmount  string     `json:"pay_amount"`
	TotalHours string     `json:"total_hours"`
	DaysWorked int        `json:"days_worked"`
	TotalPay   string     `json:"total_pay"`
	Breakdown  []DayEntry `json:"breakdown"` // newest date first
}

// Report aggregates the rows with the summary line the admin screen shows.
type Report struct {
	Year       int           `json:"year"`
	Month      *int          `json:"month,omitempty"`
	Week       *int          `json:"week,omitempty"`
	Employees  []EmployeePay `json:"employees"`
	TotalHours string        `json:"total_hours"`
	TotalPay   string        `json:"total_pay"`
}
