package etp

import (
	"fmt"
	"time"
)

// TimestepLayout is the fixed wire format for timestep timestamps: UTC
// date+time to minute precision, e.g. "202407151230".
const TimestepLayout = "200601021504"

// ParseTimestep parses a timestep string in TimestepLayout as UTC.
func ParseTimestep(ts string) (time.Time, error) {
	t, err := time.Parse(TimestepLayout, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestep %q: %w", ts, err)
	}
	return t.UTC(), nil
}

// isDaylight classifies an hour of day as daylight. The window is strict on
// both sides: hours 6 and 18 count as night, 7 through 17 as day. The
// Priestley-Taylor soil heat flux coefficients switch on this boolean.
func isDaylight(hour int) bool {
	return hour > 6 && hour < 18
}
