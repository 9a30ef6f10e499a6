package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/employee"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/payroll"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/shift"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
)

var (
	weeklyWorkDays  = decimal.NewFromInt(5)
	monthlyWorkDays = decimal.NewFromInt(22)
)

type payrollService struct {
	employeeRepo employee.EmployeeRepository
}

func NewPayrollService(employeeRepo employee.EmployeeRepository) payroll.PayrollService {
	return &payrollService{employeeRepo: employeeRepo}
}

// WeekOf computes the week number the historical reports used: week 1 starts
// on January 1st and weeks break on Sundays.
func WeekOf(t time.Time) int {
	jan1Weekday := int(time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()).Weekday())
	return (t.YearDay() + jan1Weekday + 6) / 7
}

func (s *payrollService) ComputePay(ctx context.Context, employeeID string, period payroll.Period) (payroll.Report, error) {
	if err := period.Validate(); err != nil {
		return payroll.Report{}, err
	}

	var employees []employee.Employee
	if employeeID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return payroll.Report{}, err
		}
		employees = []employee.Employee{emp}
	} else {
		var err error
		employees, err = s.employeeRepo.List(ctx)
		if err != nil {
			return payroll.Report{}, err
		}
	}

	report := payroll.Report{
		Year:      period.Year,
		Month:     period.Month,
		Week:      period.Week,
		Employees: []payroll.EmployeePay{},
	}

	grandHours := 0.0
	grandPay := decimal.Zero

	for _, emp := range employees {
		// Pay is only computable with a complete pay policy.
		if emp.PayType == employee.PayTypeNone || emp.PayAmount == nil {
			continue
		}

		row, ok := s.computeRow(emp, period)
		if !ok {
			continue
		}

		report.Employees = append(report.Employees, row.pay)
		grandHours += row.hours
		grandPay = grandPay.Add(row.total)
	}

	sort.Slice(report.Employees, func(i, j int) bool {
		return report.Employees[i].Name < report.Employees[j].Name
	})

	report.TotalHours = fmt.Sprintf("%.2f", grandHours)
	report.TotalPay = grandPay.StringFixed(2)
	return report, nil
}

type payRow struct {
	pay   payroll.EmployeePay
	hours float64
	total decimal.Decimal
}

// computeRow folds one employee's ledger over the period. The second return
// is false for hourly employees with no closed shifts in the period; they
// have nothing to be paid for, while weekly and monthly employees draw their
// flat amount regardless of recorded hours.
func (s *payrollService) computeRow(emp employee.Employee, period payroll.Period) (payRow, bool) {
	rate := *emp.PayAmount

	totalHours := 0.0
	uniqueDates := make(map[string]struct{})
	var breakdown []payroll.DayEntry

	emp.Ledger.Iterate(func(dateKey string, index int, rec shift.Record) bool {
		day, err := clock.ParseDateKey(dateKey)
		if err != nil {
			return true
		}
		if day.Year() != period.Year {
			return true
		}
		if period.Month != nil && int(day.Month()) != *period.Month {
			return true
		}
		if period.Week != nil && WeekOf(day) != *period.Week {
			return true
		}
		if !rec.Closed() {
			return true
		}

		hours := rec.Hours()
		totalHours += hours
		uniqueDates[dateKey] = struct{}{}

		var dailyPay decimal.Decimal
		switch emp.PayType {
		case employee.PayTypeHourly:
			dailyPay = rate.Mul(decimal.NewFromFloat(hours))
		case employee.PayTypeWeekly:
			dailyPay = rate.Div(weeklyWorkDays)
		case employee.PayTypeMonthly:
			dailyPay = rate.Div(monthlyWorkDays)
		}

		breakdown = append(breakdown, payroll.DayEntry{
			Date:     dateKey,
			CheckIn:  rec.CheckIn,
			CheckOut: rec.CheckOut,
			Hours:    fmt.Sprintf("%.2f", hours),
			DailyPay: dailyPay.StringFixed(2),
		})
		return true
	})

	if emp.PayType == employee.PayTypeHourly && len(uniqueDates) == 0 && totalHours == 0 {
		return payRow{}, false
	}

	// newest date first
	sort.SliceStable(breakdown, func(i, j int) bool {
		ti, erri := clock.ParseDateKey(breakdown[i].Date)
		tj, errj := clock.ParseDateKey(breakdown[j].Date)
		if erri != nil || errj != nil {
			return false
		}
		return ti.After(tj)
	})

	var totalPay decimal.Decimal
	switch emp.PayType {
	case employee.PayTypeHourly:
		totalPay = rate.Mul(decimal.NewFromFloat(totalHours))
	default:
		// flat draw, not scaled to the filtered sub-period
		totalPay = rate
	}

	return payRow{
		pay: payroll.EmployeePay{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			Role:       emp.Role,
			PayType:    string(emp.PayType),
			PayAmount:  rate.String(),
			TotalHours: fmt.Sprintf("%.2f", totalHours),
			DaysWorked: len(uniqueDates),
			TotalPay:   totalPay.StringFixed(2),
			Breakdown:  breakdown,
		},
		hours: totalHours,
		total: totalPay,
	}, true
}
