package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestResolveInstant_WholeHourOffset(t *testing.T) {
	loc := mustZone(t, "America/New_York")
	date := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)

	got := resolveInstant(clock{hour: 9, minute: 30}, date, loc)

	rendered := got.In(loc)
	require.Equal(t, 9, rendered.Hour())
	require.Equal(t, 30, rendered.Minute())
	require.Equal(t, 15, rendered.Day())
}

func TestResolveInstant_HalfHourOffset(t *testing.T) {
	loc := mustZone(t, "Asia/Kolkata")
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	got := resolveInstant(clock{hour: 6, minute: 15}, date, loc)

	require.Equal(t, time.Date(2026, time.March, 10, 0, 45, 0, 0, time.UTC), got)
}

func TestResolveInstant_QuarterToOffset(t *testing.T) {
	// Kathmandu sits at UTC+5:45, the awkwardest standard offset.
	loc := mustZone(t, "Asia/Kathmandu")
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	got := resolveInstant(clock{hour: 10, minute: 0}, date, loc)

	require.Equal(t, time.Date(2026, time.March, 10, 4, 15, 0, 0, time.UTC), got)
}

func TestResolveInstant_NegativeOffsetCrossesDate(t *testing.T) {
	// Late evening in Los Angeles is the next calendar day in UTC.
	loc := mustZone(t, "America/Los_Angeles")
	date := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)

	got := resolveInstant(clock{hour: 22, minute: 0}, date, loc)

	require.Equal(t, time.Date(2026, time.July, 16, 5, 0, 0, 0, time.UTC), got)
}

func TestResolveInstant_UTC(t *testing.T) {
	date := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	got := resolveInstant(clock{hour: 12, minute: 34}, date, time.UTC)

	require.Equal(t, time.Date(2026, time.January, 2, 12, 34, 0, 0, time.UTC), got)
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"08:00", 8, 0, true},
		{"14:30", 14, 30, true},
		{"2:30 PM", 14, 30, true},
		{"2:30pm", 14, 30, true},
		{"12:00 AM", 0, 0, true},
		{" 23:59 ", 23, 59, true},
		{"", 0, 0, false},
		{"25:00", 0, 0, false},
		{"noonish", 0, 0, false},
	}
	for _, tc := range cases {
		c, ok := parseClock(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			require.Equal(t, tc.hour, c.hour, "input %q", tc.in)
			require.Equal(t, tc.minute, c.minute, "input %q", tc.in)
		}
	}
}

func TestClockBefore(t *testing.T) {
	require.True(t, clock{8, 0}.before(clock{9, 0}))
	require.True(t, clock{8, 0}.before(clock{8, 1}))
	require.False(t, clock{8, 0}.before(clock{8, 0}))
	require.False(t, clock{21, 0}.before(clock{9, 0}))
}
