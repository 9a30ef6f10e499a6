package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/employee"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/shift"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/database"
)

type EmployeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// EnsureSchema creates the employees table when it does not exist yet. The
// punch ledger is stored as a JSONB column in the same shape as the JSON
// data file, so the two stores stay interchangeable.
func (e *EmployeeRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS employees (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			email TEXT,
			avatar_url TEXT,
			pay_type TEXT NOT NULL DEFAULT '',
			pay_amount NUMERIC,
			ledger JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := e.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create employees table: %w", err)
	}
	return nil
}

func (e *EmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	query := `
		SELECT id, name, role, details, email, avatar_url, pay_type, pay_amount, ledger
		FROM employees
		ORDER BY name
	`

	rows, err := e.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (e *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `
		SELECT id, name, role, details, email, avatar_url, pay_type, pay_amount, ledger
		FROM employees
		WHERE id = $1
	`

	row := e.db.QueryRow(ctx, query, id)
	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}

func (e *EmployeeRepository) Create(ctx context.Context, emp employee.Employee) error {
	ledger, err := marshalLedger(emp.Ledger)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO employees (id, name, role, details, email, avatar_url, pay_type, pay_amount, ledger)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := e.db.Exec(ctx, query,
		emp.ID, emp.Name, emp.Role, emp.Details, emp.Email, emp.AvatarURL,
		string(emp.PayType), emp.PayAmount, ledger,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee %s: %w", emp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeIDExists
	}
	return nil
}

func (e *EmployeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	ledger, err := marshalLedger(emp.Ledger)
	if err != nil {
		return err
	}

	query := `
		UPDATE employees
		SET name = $2, role = $3, details = $4, email = $5, avatar_url = $6,
			pay_type = $7, pay_amount = $8, ledger = $9, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := e.db.Exec(ctx, query,
		emp.ID, emp.Name, emp.Role, emp.Details, emp.Email, emp.AvatarURL,
		string(emp.PayType), emp.PayAmount, ledger,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee %s: %w", emp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (e *EmployeeRepository) Delete(ctx context.Context, id string) error {
	tag, err := e.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func marshalLedger(ledger shift.Ledger) ([]byte, error) {
	if ledger == nil {
		ledger = shift.Ledger{}
	}
	data, err := json.Marshal(ledger)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var payType string
	var ledger []byte

	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Role, &emp.Details, &emp.Email, &emp.AvatarURL,
		&payType, &emp.PayAmount, &ledger,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.PayType = employee.PayType(payType)
	if err := json.Unmarshal(ledger, &emp.Ledger); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode ledger for %s: %w", emp.ID, err)
	}
	return emp, nil
}
