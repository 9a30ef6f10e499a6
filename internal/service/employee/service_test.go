package employee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointage-hq/pointage-backend-go/internal/domain/employee"
	"github.com/pointage-hq/pointage-backend-go/internal/domain/shift"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/clock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/keylock"
	"github.com/pointage-hq/pointage-backend-go/internal/pkg/sse"
)

type fixedClock struct {
	snap clock.Snapshot
}

func (f *fixedClock) Now() clock.Snapshot { return f.snap }

type memoryRepo struct {
	employees map[string]employee.Employee
}

func newMemoryRepo(emps ...employee.Employee) *memoryRepo {
	r := &memoryRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		r.employees[e.ID] = e
	}
	return r
}

func (r *memoryRepo) List(ctx context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memoryRepo) Create(ctx context.Context, emp employee.Employee) error {
	if _, ok := r.employees[emp.ID]; ok {
		return employee.ErrEmployeeIDExists
	}
	r.employees[emp.ID] = emp
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, emp employee.Employee) error {
	if _, ok := r.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.employees[emp.ID] = emp
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	delete(r.employees, id)
	return nil
}

func newService(repo employee.EmployeeRepository) employee.EmployeeService {
	clk := &fixedClock{snap: clock.Snapshot{
		DateKey:   "07-12-2025",
		TimeOfDay: "3:10 PM",
		Timezone:  clock.DefaultTimezone,
	}}
	return NewEmployeeService(repo, clk, sse.NewHub(), keylock.New())
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a six digit badge ID when none given", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := newService(repo)

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Marie Joseph", Role: "Cashier"})
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, resp.ID)
		assert.False(t, resp.OpenShift)
	})

	t.Run("keeps a caller supplied badge ID", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := newService(repo)

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{ID: "4839", Name: "Marie Joseph", Role: "Cashier"})
		require.NoError(t, err)
		assert.Equal(t, "4839", resp.ID)
	})

	t.Run("duplicate badge ID", func(t *testing.T) {
		repo := newMemoryRepo(employee.Employee{ID: "4839", Name: "Marie Joseph"})
		svc := newService(repo)

		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{ID: "4839", Name: "Jean Baptiste", Role: "Guard"})
		assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)
	})

	t.Run("pay type without amount is rejected", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := newService(repo)

		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Marie Joseph", Role: "Cashier", PayType: "hourly"})
		assert.Error(t, err)
	})

	t.Run("stores the pay amount as a decimal string", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := newService(repo)

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			Name:      "Marie Joseph",
			Role:      "Cashier",
			PayType:   "hourly",
			PayAmount: strPtr("15.50"),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.PayAmount)
		assert.Equal(t, "15.5", *resp.PayAmount)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only the provided fields", func(t *testing.T) {
		repo := newMemoryRepo(employee.Employee{ID: "4839", Name: "Marie Joseph", Role: "Cashier"})
		svc := newService(repo)

		resp, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "4839", Role: strPtr("Manager")})
		require.NoError(t, err)
		assert.Equal(t, "Marie Joseph", resp.Name)
		assert.Equal(t, "Manager", resp.Role)
	})

	t.Run("clearing the pay type drops the amount", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := newService(repo)
		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			ID: "4839", Name: "Marie Joseph", Role: "Cashier",
			PayType: "weekly", PayAmount: strPtr("400"),
		})
		require.NoError(t, err)

		resp, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "4839", PayType: strPtr("")})
		require.NoError(t, err)
		assert.Empty(t, resp.PayType)
		assert.Nil(t, resp.PayAmount)
	})

	t.Run("unknown employee", func(t *testing.T) {
		repo := newMemoryRepo()
		svc := newService(repo)

		_, err := svc.Update(ctx, employee.UpdateEmployeeRequest{ID: "0000", Name: strPtr("Nobody")})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryRepo(employee.Employee{ID: "4839", Name: "Marie Joseph"})
	svc := newService(repo)

	require.NoError(t, svc.Delete(ctx, "4839"))
	assert.ErrorIs(t, svc.Delete(ctx, "4839"), employee.ErrEmployeeNotFound)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	emp := employee.Employee{ID: "4839", Name: "Marie Joseph", Ledger: shift.Ledger{}}
	emp.Ledger.Set("05-12-2025", shift.Record{CheckIn: "9:00 AM", CheckOut: "5:00 PM"})
	emp.Ledger.Set("07-12-2025", shift.Record{CheckIn: "9:00 AM"})
	emp.Ledger.Set("28-11-2025", shift.Record{CheckIn: "8:00 AM", CheckOut: "4:00 PM"})
	repo := newMemoryRepo(emp)
	svc := newService(repo)

	history, err := svc.History(ctx, "4839")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "07-12-2025", history[0].DateKey)
	assert.Equal(t, "05-12-2025", history[1].DateKey)
	assert.Equal(t, "28-11-2025", history[2].DateKey)
}

func TestEditShift(t *testing.T) {
	ctx := context.Background()

	t.Run("fills a blank check-out and stamps the edit", func(t *testing.T) {
		emp := employee.Employee{ID: "4839", Name: "Marie Joseph", Ledger: shift.Ledger{}}
		emp.Ledger.Set("05-12-2025", shift.Record{CheckIn: "9:00 AM"})
		repo := newMemoryRepo(emp)
		svc := newService(repo)

		resp, err := svc.EditShift(ctx, employee.EditShiftRequest{
			EmployeeID: "4839",
			DateKey:    "05-12-2025",
			CheckOut:   strPtr("5:00 PM"),
		})
		require.NoError(t, err)
		assert.Equal(t, "5:00 PM", resp.CheckOut)
		require.NotNil(t, resp.WorkedHours)
		assert.Equal(t, 8.0, *resp.WorkedHours)
		require.NotNil(t, resp.EditedAt)
		assert.Equal(t, "07-12-2025, 3:10 PM", *resp.EditedAt)
	})

	t.Run("recorded punches are immutable", func(t *testing.T) {
		emp := employee.Employee{ID: "4839", Name: "Marie Joseph", Ledger: shift.Ledger{}}
		emp.Ledger.Set("05-12-2025", shift.Record{CheckIn: "9:00 AM"})
		repo := newMemoryRepo(emp)
		svc := newService(repo)

		_, err := svc.EditShift(ctx, employee.EditShiftRequest{
			EmployeeID: "4839",
			DateKey:    "05-12-2025",
			CheckIn:    strPtr("8:00 AM"),
		})
		assert.ErrorIs(t, err, employee.ErrSlotNotEditable)
	})

	t.Run("no record at that date", func(t *testing.T) {
		repo := newMemoryRepo(employee.Employee{ID: "4839", Name: "Marie Joseph", Ledger: shift.Ledger{}})
		svc := newService(repo)

		_, err := svc.EditShift(ctx, employee.EditShiftRequest{
			EmployeeID: "4839",
			DateKey:    "05-12-2025",
			CheckOut:   strPtr("5:00 PM"),
		})
		assert.ErrorIs(t, err, employee.ErrNoSuchShift)
	})

	t.Run("index beyond the hourly day", func(t *testing.T) {
		emp := employee.Employee{ID: "4839", Name: "Marie Joseph", PayType: employee.PayTypeHourly, Ledger: shift.Ledger{}}
		emp.Ledger.AppendOrCreate("05-12-2025", shift.Record{CheckIn: "9:00 AM"})
		repo := newMemoryRepo(emp)
		svc := newService(repo)

		_, err := svc.EditShift(ctx, employee.EditShiftRequest{
			EmployeeID: "4839",
			DateKey:    "05-12-2025",
			Index:      3,
			CheckOut:   strPtr("5:00 PM"),
		})
		assert.ErrorIs(t, err, employee.ErrNoSuchShift)
	})

	t.Run("waits for the employee's ledger lock", func(t *testing.T) {
		emp := employee.Employee{ID: "4839", Name: "Marie Joseph", Ledger: shift.Ledger{}}
		emp.Ledger.Set("05-12-2025", shift.Record{CheckIn: "9:00 AM"})
		repo := newMemoryRepo(emp)

		clk := &fixedClock{snap: clock.Snapshot{
			DateKey:   "07-12-2025",
			TimeOfDay: "3:10 PM",
			Timezone:  clock.DefaultTimezone,
		}}
		locks := keylock.New()
		svc := NewEmployeeService(repo, clk, sse.NewHub(), locks)

		// Hold the lock a concurrent punch would hold; the edit must not
		// read or write the ledger until it is released.
		unlock := locks.Acquire("4839")

		done := make(chan error, 1)
		go func() {
			_, err := svc.EditShift(ctx, employee.EditShiftRequest{
				EmployeeID: "4839",
				DateKey:    "05-12-2025",
				CheckOut:   strPtr("5:00 PM"),
			})
			done <- err
		}()

		select {
		case <-done:
			t.Fatal("edit proceeded while the ledger was locked")
		case <-time.After(50 * time.Millisecond):
		}

		unlock()
		require.NoError(t, <-done)
	})
}
