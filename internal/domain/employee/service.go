package employee

import "context"

// EmployeeService defines the admin-facing employee operations.
type EmployeeService interface {
	// Create registers a new employee, generating a badge ID when none given.
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Update mutates profile and pay policy fields.
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete removes an employee and their attendance history.
	Delete(ctx context.Context, id string) error

	// Get returns one employee.
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// List returns all employees.
	List(ctx context.Context) ([]EmployeeResponse, error)

	// History returns an employee's shift records, newest date first.
	History(ctx context.Context, id string) ([]ShiftResponse, error)

	// EditShift fills a blank punch slot retroactively. Admin edits stamp
	// the record's edit marker and win over later employee punches.
	EditShift(ctx context.Context, req EditShiftRequest) (ShiftResponse, error)
}
