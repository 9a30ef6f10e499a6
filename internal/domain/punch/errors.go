package punch

import (
	"errors"
	"fmt"
)

// Punch domain errors
var (
	ErrInvalidTimeFormat  = errors.New("time must be a 12-hour clock string like 8:05 AM")
	ErrTimeOutOfTolerance = errors.New("submitted time is too far from the server time")
	ErrAlreadyCheckedIn   = errors.New("you have already checked in")
	ErrNoOpenShiftForDate = errors.New("no open shift found for that date")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out")
)

// ToleranceError carries the authoritative server time alongside
// ErrTimeOutOfTolerance so clients can show the user what to resubmit.
type ToleranceError struct {
	Submitted    string
	RequiredTime string
}

func (e *ToleranceError) Error() string {
	return fmt.Sprintf("submitted time %s is too far from the server time %s", e.Submitted, e.RequiredTime)
}

func (e *ToleranceError) Unwrap() error {
	return ErrTimeOutOfTolerance
}
