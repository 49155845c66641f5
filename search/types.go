// Package search orchestrates flight searches against an external provider:
// per-leg session state, response caching, in-flight request dedup, bounded
// retries, and cancellation discipline.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/kmorales/wayfarer/duration"
)

// CabinClass is the booking class requested from the provider.
type CabinClass string

const (
	Economy        CabinClass = "economy"
	PremiumEconomy CabinClass = "premium_economy"
	Business       CabinClass = "business"
	First          CabinClass = "first"
)

// ParseCabinClass maps a user-supplied class name onto a known cabin,
// defaulting to economy.
func ParseCabinClass(s string) CabinClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "premium_economy", "premium":
		return PremiumEconomy
	case "business":
		return Business
	case "first":
		return First
	default:
		return Economy
	}
}

// StopsFilter restricts how many stops an itinerary may have.
type StopsFilter string

const (
	AnyStops StopsFilter = "any"
	Nonstop  StopsFilter = "nonstop"
	OneStop  StopsFilter = "one_stop"
	TwoStops StopsFilter = "two_stops"
)

// ParseStops maps a user-supplied stops filter, defaulting to any.
func ParseStops(s string) StopsFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nonstop", "direct":
		return Nonstop
	case "one_stop":
		return OneStop
	case "two_stops":
		return TwoStops
	default:
		return AnyStops
	}
}

// PassengerCount is the traveler breakdown for a search.
type PassengerCount struct {
	Adults      int `json:"adults"`
	Children    int `json:"children"`
	InfantsLap  int `json:"infantsLap"`
	InfantsSeat int `json:"infantsSeat"`
}

// Total returns the seat-independent headcount.
func (p PassengerCount) Total() int {
	return p.Adults + p.Children + p.InfantsLap + p.InfantsSeat
}

// SearchKey identifies one directional search. Structural equality makes it
// usable as both the cache key and the dedup key.
type SearchKey struct {
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD
	Cabin       CabinClass
	Passengers  int
	Stops       StopsFilter
}

func (k SearchKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s:%d:%s", k.Origin, k.Destination, k.Date, k.Cabin, k.Passengers, k.Stops)
}

// Well-known leg identifiers.
const (
	LegOutbound = "outbound"
	LegReturn   = "return"
)

// SegmentLegID names the nth multi-city leg (1-based).
func SegmentLegID(n int) string {
	return fmt.Sprintf("segment-%d", n)
}

// LegSearchRequest identifies one directional search inside a composite
// itinerary.
type LegSearchRequest struct {
	LegID       string    `json:"legId"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Date        time.Time `json:"date"`
}

// RawFlight is one flight option as returned by the provider, before
// validation and scoring.
type RawFlight struct {
	ID           string             `json:"id"`
	Airline      string             `json:"airline"`
	FlightNumber string             `json:"flightNumber"`
	Price        float64            `json:"price"`
	Currency     string             `json:"currency"`
	Segments     []duration.Segment `json:"segments"`
	Layovers     []duration.Layover `json:"layovers,omitempty"`
}

// EnrichedFlight is a validated flight with its computed total duration.
// TotalMinutes is nil when no duration could be derived.
type EnrichedFlight struct {
	RawFlight
	TotalMinutes *int `json:"totalDurationMinutes"`
}

// ScoredFlight is a ranked flight ready to surface.
type ScoredFlight struct {
	EnrichedFlight
	Score float64 `json:"score"`
}

// LegState is the user-visible lifecycle of one leg.
type LegState string

const (
	LegIdle    LegState = "idle"
	LegLoading LegState = "loading"
	LegSuccess LegState = "success"
	LegError   LegState = "error"
)

// LegResult is the per-leg outcome surface. It is owned exclusively by the
// Coordinator: replaced wholesale when a new session starts, updated in
// place as results arrive, and never written after its session is cancelled.
type LegResult struct {
	LegID     string         `json:"legId"`
	Flights   []ScoredFlight `json:"flights"`
	IsLoading bool           `json:"isLoading"`
	Err       string         `json:"error,omitempty"`
}

// State derives the leg's position in the Idle -> Loading -> Success/Error
// machine from its fields.
func (r LegResult) State() LegState {
	switch {
	case r.IsLoading:
		return LegLoading
	case r.Err != "":
		return LegError
	case len(r.Flights) > 0:
		return LegSuccess
	default:
		return LegIdle
	}
}

// Preferences influence ranking only. Policy lives in the Scorer.
type Preferences struct {
	PreferNonstop bool    `json:"preferNonstop"`
	MaxPrice      float64 `json:"maxPrice,omitempty"`
}
