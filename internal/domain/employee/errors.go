package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeIDExists = errors.New("employee with this ID already exists")
	ErrInvalidPayPolicy = errors.New("pay amount is required for this pay type")

	// Shift edit errors
	ErrNoSuchShift     = errors.New("no shift record at that date")
	ErrSlotNotEditable = errors.New("only blank punch slots can be edited")

	// ErrPersistenceFailure wraps store read/write failures. It is the one
	// class callers may treat as transient; the punch must be resubmitted.
	ErrPersistenceFailure = errors.New("persistence failure")
)
