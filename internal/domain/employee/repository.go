package employee

import "context"

// EmployeeRepository defines data access for employee records. The ledger
// travels with the employee: punches are whole-record read-modify-write, as
// the low punch frequency allows (serialization happens in the services).
type EmployeeRepository interface {
	// List returns all employees.
	List(ctx context.Context) ([]Employee, error)

	// GetByID retrieves one employee, ErrEmployeeNotFound when absent.
	GetByID(ctx context.Context, id string) (Employee, error)

	// Create inserts a new employee, ErrEmployeeIDExists on duplicate ID.
	Create(ctx context.Context, emp Employee) error

	// Update replaces an existing employee record, ledger included.
	Update(ctx context.Context, emp Employee) error

	// Delete removes an employee and their ledger.
	Delete(ctx context.Context, id string) error
}
