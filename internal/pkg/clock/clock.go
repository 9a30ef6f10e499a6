package clock

import (
	"fmt"
	"time"
)

// DefaultTimezone is the zone every punch and date key is computed in.
// Punches from different devices must agree on "today", so the zone is a
// deployment-wide constant rather than a per-client setting.
const DefaultTimezone = "America/Port-au-Prince"

// DateKeyLayout is the ledger key format (DD-MM-YYYY).
const DateKeyLayout = "02-01-2006"

// TimeOfDayLayout is the 12-hour wall-clock format used on punches ("8:05 AM").
const TimeOfDayLayout = "3:04 PM"

// Snapshot is one authoritative reading of the wall clock.
type Snapshot struct {
	UnixMilli int64  `json:"ts"`
	DateKey   string `json:"date"`
	TimeOfDay string `json:"hour"`
	Timezone  string `json:"tz"`
}

// Clock supplies the authoritative current instant formatted for the fixed
// zone. All punch validation and date-keying goes through it, never through
// the caller's local clock.
type Clock interface {
	Now() Snapshot
}

type systemClock struct {
	loc *time.Location
}

// New returns a Clock fixed to the named zone.
func New(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &systemClock{loc: loc}, nil
}

func (c *systemClock) Now() Snapshot {
	return At(time.Now(), c.loc)
}

// At formats an arbitrary instant the same way Now does. Exposed so tests and
// the migration tool can derive date keys without a live clock.
func At(t time.Time, loc *time.Location) Snapshot {
	local := t.In(loc)
	return Snapshot{
		UnixMilli: t.UnixMilli(),
		DateKey:   local.Format(DateKeyLayout),
		TimeOfDay: local.Format(TimeOfDayLayout),
		Timezone:  loc.String(),
	}
}

// ParseDateKey parses a DD-MM-YYYY ledger key into a calendar date.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}
