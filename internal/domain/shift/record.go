package shift

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is a single punch pair. Field names on the wire match the historical
// employees.json files (French) so existing data loads unchanged.
type Record struct {
	CheckIn     string   `json:"entrer"`
	CheckOut    string   `json:"sorti"`
	WorkedHours *float64 `json:"heureTravailer,omitempty"`
	EditedAt    *string  `json:"modifiedOn,omitempty"`
}

// Open reports whether the shift has a check-in but no check-out yet.
func (r Record) Open() bool {
	return strings.TrimSpace(r.CheckIn) != "" && strings.TrimSpace(r.CheckOut) == ""
}

// Closed reports whether both punch times are recorded.
func (r Record) Closed() bool {
	return strings.TrimSpace(r.CheckIn) != "" && strings.TrimSpace(r.CheckOut) != ""
}

// Recompute refreshes WorkedHours from the punch times. It clears the value
// when either time is missing; WorkedHours is never settable on its own.
func (r *Record) Recompute() error {
	if !r.Closed() {
		r.WorkedHours = nil
		return nil
	}
	h, err := HoursBetween(r.CheckIn, r.CheckOut)
	if err != nil {
		return err
	}
	r.WorkedHours = &h
	return nil
}

// Hours returns the stored duration, recomputing from the punch times when the
// stored value is absent. Malformed records yield zero hours rather than an
// error so one bad row cannot sink a whole report.
func (r Record) Hours() float64 {
	if r.WorkedHours != nil {
		return *r.WorkedHours
	}
	if !r.Closed() {
		return 0
	}
	h, err := HoursBetween(r.CheckIn, r.CheckOut)
	if err != nil {
		return 0
	}
	return h
}

// ParseClockTime converts a 12-hour wall-clock string ("8:05 AM") to the
// minute of day, 0..1439.
func ParseClockTime(s string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	meridiem := strings.ToUpper(fields[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}

	hm := strings.Split(fields[0], ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	hours, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	if hours < 1 || hours > 12 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}

	if meridiem == "AM" {
		if hours == 12 {
			hours = 0
		}
	} else if hours != 12 {
		hours += 12
	}
	return hours*60 + minutes, nil
}

// HoursBetween computes worked hours from check-in to check-out. A check-out
// that reads earlier than the check-in is taken to have wrapped once past
// midnight, so the result is always in [0, 24). Rounded to 2 decimals.
func HoursBetween(checkIn, checkOut string) (float64, error) {
	in, err := ParseClockTime(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClockTime(checkOut)
	if err != nil {
		return 0, err
	}

	diff := out - in
	if diff < 0 {
		diff += 24 * 60
	}
	return RoundHours(float64(diff) / 60), nil
}

// RoundHours rounds to 2 decimal places, matching the historical records.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
