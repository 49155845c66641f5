package duration

import (
	"strings"
	"time"
)

// clock is a wall-clock time of day with no date or zone attached.
type clock struct {
	hour   int
	minute int
}

func (c clock) before(other clock) bool {
	if c.hour != other.hour {
		return c.hour < other.hour
	}
	return c.minute < other.minute
}

// onDate pins the clock to a calendar date in UTC.
func (c clock) onDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.hour, c.minute, 0, 0, time.UTC)
}

var clockLayouts = []string{"15:04", "3:04 PM", "3:04PM"}

// parseClock accepts 24-hour ("08:00", "14:30") and 12-hour ("2:30 PM")
// wall-clock strings.
func parseClock(value string) (clock, bool) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return clock{}, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return clock{hour: t.Hour(), minute: t.Minute()}, true
		}
	}
	return clock{}, false
}

const maxResolveIterations = 5

// resolveInstant finds the absolute instant whose wall clock in loc reads as
// the given clock on the given calendar date, by bounded fixed-point
// iteration: guess the instant by treating the wall-clock fields as UTC,
// render the guess back into loc, then shift the guess by the residual
// between desired and rendered fields. Standard offsets, including the
// half-hour and 45-minute zones, converge well inside five rounds.
//
// Exactly at a DST transition the iteration may settle on either side of the
// gap; that ambiguity is inherited behavior and deliberately left alone.
func resolveInstant(c clock, date time.Time, loc *time.Location) time.Time {
	desired := time.Date(date.Year(), date.Month(), date.Day(), c.hour, c.minute, 0, 0, time.UTC)
	guess := desired

	for i := 0; i < maxResolveIterations; i++ {
		r := guess.In(loc)
		rendered := time.Date(r.Year(), r.Month(), r.Day(), r.Hour(), r.Minute(), r.Second(), 0, time.UTC)
		residual := desired.Sub(rendered)
		if residual > -time.Second && residual < time.Second {
			break
		}
		guess = guess.Add(residual)
	}
	return guess
}
