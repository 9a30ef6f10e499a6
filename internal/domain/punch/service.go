package punch

import "context"

// PunchService is the check-in/check-out reconciler. All punch times are
// validated against the server clock; mutations for one employee are
// serialized so two racing punches cannot lose an update.
type PunchService interface {
	// CheckIn opens a shift at today's date key.
	CheckIn(ctx context.Context, req CheckInRequest) (PunchResponse, error)

	// CheckOut closes the open shift at the given date key and computes
	// worked hours, wrapping once past midnight when the clock-out reads
	// earlier than the clock-in.
	CheckOut(ctx context.Context, req CheckOutRequest) (PunchResponse, error)

	// ListUnclosedShifts returns every open record for the employee across
	// all date keys, oldest first.
	ListUnclosedShifts(ctx context.Context, employeeID string) ([]UnclosedShift, error)

	// SweepUnclosed notifies employees who still have an open shift from a
	// prior day. Run periodically by the scheduler.
	SweepUnclosed(ctx context.Context) error
}
