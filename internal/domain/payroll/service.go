package payroll

import "context"

// PayrollService folds ledger entries over a period into hours and pay.
// Reads only; it never mutates the ledger.
type PayrollService interface {
	// ComputePay builds the report for one employee (by ID) or, with an
	// empty ID, for everyone with a pay policy. Hourly employees with no
	// hours in the period are excluded from the result set.
	ComputePay(ctx context.Context, employeeID string, period Period) (Report, error)
}
