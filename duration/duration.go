// Package duration computes elapsed travel time across multi-leg itineraries.
// All functions are pure and never fail outright: the calculators either
// report an answer in minutes or report that none could be derived, and the
// caller decides what an unknown duration means for the search result.
package duration

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kmorales/wayfarer/iata"
)

// Segment is one flown hop within a flight option.
type Segment struct {
	DepartureTime    string `json:"departureTime"`
	ArrivalTime      string `json:"arrivalTime"`
	DepartureAirport string `json:"departureAirport,omitempty"`
	ArrivalAirport   string `json:"arrivalAirport,omitempty"`
	Duration         string `json:"duration,omitempty"`
	Overnight        bool   `json:"overnight,omitempty"`
}

// Layover is the ground gap between two consecutive segments.
type Layover struct {
	Duration  string `json:"duration,omitempty"`
	Overnight bool   `json:"overnight,omitempty"`
}

// MaxReasonableMinutes bounds any computed duration. 48 hours covers every
// itinerary the provider returns; anything outside the bound is a wrong
// answer from bad inputs, not a long trip.
const MaxReasonableMinutes = 2880

func inRange(minutes int) bool {
	return minutes >= 0 && minutes <= MaxReasonableMinutes
}

// TotalDuration computes the elapsed minutes from the first departure to the
// last arrival of an itinerary. It tries, in order: timezone-aware instants
// (when every airport in the itinerary has a known zone), naive local-clock
// subtraction with day-rollover detection, and finally the duration-field
// sum. ok is false only when the itinerary is empty or no attempt produced a
// value in [0, MaxReasonableMinutes].
func TotalDuration(segments []Segment, layovers []Layover, baseDate time.Time) (int, bool) {
	if len(segments) == 0 {
		return 0, false
	}

	if zones, ok := segmentZones(segments); ok {
		if minutes, ok := walkItinerary(segments, layovers, baseDate, zones); ok && inRange(minutes) {
			return minutes, true
		}
	}

	if minutes, ok := walkItinerary(segments, layovers, baseDate, nil); ok && inRange(minutes) {
		return minutes, true
	}

	if minutes := TotalDurationBySum(segments, layovers); inRange(minutes) {
		return minutes, true
	}
	return 0, false
}

// TotalDurationBySum adds up the duration fields of every segment and
// layover. Unparseable fields contribute zero, so the result is always a
// number.
func TotalDurationBySum(segments []Segment, layovers []Layover) int {
	total := 0
	for _, seg := range segments {
		total += ParseDurationField(seg.Duration)
	}
	for _, lay := range layovers {
		total += ParseDurationField(lay.Duration)
	}
	return total
}

// LayoverDuration computes the ground time between an arrival and the next
// departure at a single airport. Both clocks share one zone, so there is no
// cross-zone ambiguity; a departure clock earlier than the arrival clock
// means the departure is on the next calendar day.
func LayoverDuration(arrival, departure string, baseDate time.Time, airport string) int {
	arrClock, okA := parseClock(arrival)
	depClock, okD := parseClock(departure)
	if !okA || !okD {
		return 0
	}

	var loc *time.Location
	if airport != "" {
		if tz, ok := iata.TimeZone(airport); ok {
			if l, err := time.LoadLocation(tz); err == nil {
				loc = l
			}
		}
	}

	depDate := baseDate
	if depClock.before(arrClock) {
		depDate = depDate.AddDate(0, 0, 1)
	}

	var arrAt, depAt time.Time
	if loc != nil {
		arrAt = resolveInstant(arrClock, baseDate, loc)
		depAt = resolveInstant(depClock, depDate, loc)
	} else {
		arrAt = arrClock.onDate(baseDate)
		depAt = depClock.onDate(depDate)
	}

	minutes := int(depAt.Sub(arrAt) / time.Minute)
	if !inRange(minutes) {
		// Zone data produced nonsense (usually a DST edge); redo naively.
		minutes = int(depClock.onDate(depDate).Sub(arrClock.onDate(baseDate)) / time.Minute)
		if !inRange(minutes) {
			return 0
		}
	}
	return minutes
}

// AllLayoverDurations returns one duration per gap between consecutive
// segments. Explicitly supplied layovers win; otherwise each gap is derived
// from the surrounding segment clocks at the connection airport.
func AllLayoverDurations(segments []Segment, layovers []Layover, baseDate time.Time) []int {
	if len(layovers) > 0 {
		out := make([]int, len(layovers))
		for i, lay := range layovers {
			out[i] = ParseDurationField(lay.Duration)
		}
		return out
	}
	if len(segments) < 2 {
		return nil
	}
	out := make([]int, 0, len(segments)-1)
	for i := 0; i < len(segments)-1; i++ {
		out = append(out, LayoverDuration(
			segments[i].ArrivalTime,
			segments[i+1].DepartureTime,
			baseDate,
			segments[i].ArrivalAirport,
		))
	}
	return out
}

// segmentZones resolves the departure and arrival zone of every segment.
// ok is false unless the whole itinerary is covered.
func segmentZones(segments []Segment) ([]segmentZone, bool) {
	zones := make([]segmentZone, len(segments))
	for i, seg := range segments {
		dep, ok := airportLocation(seg.DepartureAirport)
		if !ok {
			return nil, false
		}
		arr, ok := airportLocation(seg.ArrivalAirport)
		if !ok {
			return nil, false
		}
		zones[i] = segmentZone{dep: dep, arr: arr}
	}
	return zones, true
}

type segmentZone struct {
	dep *time.Location
	arr *time.Location
}

func airportLocation(code string) (*time.Location, bool) {
	if code == "" {
		return nil, false
	}
	tz, ok := iata.TimeZone(code)
	if !ok {
		return nil, false
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// walkItinerary advances a calendar-day cursor across the itinerary and
// returns the minutes between the first departure and last arrival instants.
// With zones == nil every clock is interpreted naively in UTC. Day rollovers
// come from either an explicit overnight flag or an arrival/departure clock
// running backwards.
func walkItinerary(segments []Segment, layovers []Layover, baseDate time.Time, zones []segmentZone) (int, bool) {
	cursor := baseDate
	var first, last time.Time

	for i, seg := range segments {
		depClock, ok := parseClock(seg.DepartureTime)
		if !ok {
			return 0, false
		}
		arrClock, ok := parseClock(seg.ArrivalTime)
		if !ok {
			return 0, false
		}

		dep := instantAt(depClock, cursor, zones, i, false)
		if i == 0 {
			first = dep
		}

		if arrClock.before(depClock) || seg.Overnight {
			cursor = cursor.AddDate(0, 0, 1)
		}
		arr := instantAt(arrClock, cursor, zones, i, true)
		last = arr

		if i == len(segments)-1 {
			break
		}

		advanced := false
		if i < len(layovers) && layovers[i].Overnight {
			cursor = cursor.AddDate(0, 0, 1)
			advanced = true
		}
		nextDep, ok := parseClock(segments[i+1].DepartureTime)
		if !ok {
			return 0, false
		}
		if !advanced && nextDep.before(arrClock) {
			cursor = cursor.AddDate(0, 0, 1)
		}
	}

	return int(last.Sub(first) / time.Minute), true
}

func instantAt(c clock, date time.Time, zones []segmentZone, i int, arrival bool) time.Time {
	if zones == nil {
		return c.onDate(date)
	}
	loc := zones[i].dep
	if arrival {
		loc = zones[i].arr
	}
	return resolveInstant(c, date, loc)
}

var (
	isoDurationRe = regexp.MustCompile(`(?i)^PT(?:(\d+)H)?(?:(\d+)M)?$`)
	textHoursRe   = regexp.MustCompile(`(?i)(\d+)\s*h(?:r|our)?s?`)
	textMinutesRe = regexp.MustCompile(`(?i)(\d+)\s*m(?:in(?:ute)?s?)?`)
	bareIntegerRe = regexp.MustCompile(`^\d+$`)
)

// ParseDurationField turns a provider duration value into minutes. Accepted
// forms, in order of precedence: ISO-8601 ("PT7H30M"), textual ("7h 30m",
// "7 hours 30 minutes"), and a bare integer minute count. Anything else is
// zero.
func ParseDurationField(value string) int {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}

	if m := isoDurationRe.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(zeroIfEmpty(m[1]))
		minutes, _ := strconv.Atoi(zeroIfEmpty(m[2]))
		return hours*60 + minutes
	}

	hasHours := textHoursRe.MatchString(s)
	hasMinutes := strings.ContainsAny(strings.ToLower(s), "m") && textMinutesRe.MatchString(s)
	if hasHours || hasMinutes {
		total := 0
		if m := textHoursRe.FindStringSubmatch(s); m != nil {
			h, _ := strconv.Atoi(m[1])
			total += h * 60
		}
		if hasMinutes {
			if m := textMinutesRe.FindStringSubmatch(s); m != nil {
				mins, _ := strconv.Atoi(m[1])
				total += mins
			}
		}
		return total
	}

	if bareIntegerRe.MatchString(s) {
		minutes, _ := strconv.Atoi(s)
		return minutes
	}
	return 0
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
